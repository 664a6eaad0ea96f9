// services/session_service.go - In-memory timed game sessions
package services

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/superbmt/zap-zap-game/models"
)

// SessionStatus is the lifecycle state of a game session. There is no way
// back to active; a new session must be started instead.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionEnded     SessionStatus = "ended"
	SessionAbandoned SessionStatus = "abandoned"
)

var (
	ErrSessionNotFound = errors.New("game session not found")
	ErrSessionInactive = errors.New("game session is not active")
	ErrInvalidConfig   = errors.New("invalid difficulty or time limit")
)

// SessionSnapshot is the client-visible state of a session. The current
// question's answer is never part of it.
type SessionSnapshot struct {
	ID                string             `json:"id"`
	ProfileID         string             `json:"profile_id"`
	Difficulty        models.Difficulty  `json:"difficulty"`
	TimeLimit         int                `json:"time_limit"`
	Prompt            string             `json:"prompt"`
	Score             int                `json:"score"`
	QuestionsAnswered int                `json:"questions_answered"`
	Streak            int                `json:"streak"`
	BestStreak        int                `json:"best_streak"`
	TimeRemaining     int                `json:"time_remaining"`
	Status            SessionStatus      `json:"status"`
	Result            *models.GameResult `json:"result,omitempty"`
}

// AnswerOutcome reports what happened to one submitted answer. Accepted is
// false when the input sanitized to nothing or the session was no longer
// active; nothing changes in that case.
type AnswerOutcome struct {
	Accepted      bool            `json:"accepted"`
	Correct       bool            `json:"correct"`
	CorrectAnswer int             `json:"correct_answer,omitempty"`
	Session       SessionSnapshot `json:"session"`
}

// SessionEvent is pushed to websocket subscribers on every countdown tick
// and on session end.
type SessionEvent struct {
	Type    string          `json:"type"` // tick, finished, abandoned
	Session SessionSnapshot `json:"session"`
}

// GameSession tracks a single timed play-through.
type GameSession struct {
	id         string
	profileID  string
	difficulty models.Difficulty
	timeLimit  int

	mu                sync.Mutex
	question          models.Question
	score             int
	questionsAnswered int
	streak            int
	bestStreak        int
	timeRemaining     int
	status            SessionStatus
	endedAt           time.Time
	result            *models.GameResult

	stop         chan struct{}
	stopOnce     sync.Once
	listeners    map[int]chan SessionEvent
	nextListener int
}

// SessionService owns all live sessions and their countdown timers.
type SessionService struct {
	profiles *ProfileService

	// TickInterval is one countdown unit. Tests shorten it; production
	// leaves the 1-second default.
	TickInterval time.Duration

	mu       sync.RWMutex
	sessions map[string]*GameSession
}

func NewSessionService(profiles *ProfileService) *SessionService {
	return &SessionService{
		profiles:     profiles,
		TickInterval: time.Second,
		sessions:     make(map[string]*GameSession),
	}
}

// Start creates a session, generates its first question, and starts the
// countdown.
func (s *SessionService) Start(profileID string, difficulty models.Difficulty, timeLimit int) (SessionSnapshot, error) {
	if !difficulty.Valid() || !models.ValidTimeLimit(timeLimit) {
		return SessionSnapshot{}, ErrInvalidConfig
	}

	sess := &GameSession{
		id:            uuid.NewString(),
		profileID:     profileID,
		difficulty:    difficulty,
		timeLimit:     timeLimit,
		question:      GenerateQuestion(difficulty),
		timeRemaining: timeLimit,
		status:        SessionActive,
		stop:          make(chan struct{}),
		listeners:     make(map[int]chan SessionEvent),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	go s.run(sess)
	return s.snapshotOf(sess), nil
}

// Snapshot returns the current state of a session.
func (s *SessionService) Snapshot(id string) (SessionSnapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return SessionSnapshot{}, err
	}
	return s.snapshotOf(sess), nil
}

// SubmitAnswer checks a raw answer against the current question. Input is
// sanitized to digits; empty input and inactive sessions are no-ops. Every
// accepted answer advances to a fresh question immediately.
func (s *SessionService) SubmitAnswer(id, raw string) (AnswerOutcome, error) {
	sess, err := s.get(id)
	if err != nil {
		return AnswerOutcome{}, err
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	sess.mu.Lock()
	if sess.status != SessionActive || digits == "" {
		out := AnswerOutcome{Session: sess.snapshotLocked()}
		sess.mu.Unlock()
		return out, nil
	}

	value, convErr := strconv.Atoi(digits)
	correct := convErr == nil && value == sess.question.Answer
	correctAnswer := sess.question.Answer

	sess.questionsAnswered++
	if correct {
		sess.score++
		sess.streak++
		if sess.streak > sess.bestStreak {
			sess.bestStreak = sess.streak
		}
	} else {
		sess.streak = 0
	}
	sess.question = GenerateQuestion(sess.difficulty)

	out := AnswerOutcome{
		Accepted:      true,
		Correct:       correct,
		CorrectAnswer: correctAnswer,
		Session:       sess.snapshotLocked(),
	}
	sess.mu.Unlock()
	return out, nil
}

// Finish ends a session early and records its result, same as a natural
// timeout.
func (s *SessionService) Finish(id string) (SessionSnapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return SessionSnapshot{}, err
	}

	sess.mu.Lock()
	if sess.status != SessionActive {
		snap := sess.snapshotLocked()
		sess.mu.Unlock()
		return snap, ErrSessionInactive
	}
	result := sess.finishLocked()
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	sess.signalStop()
	s.record(sess.profileID, result)
	sess.broadcast(SessionEvent{Type: "finished", Session: snap})
	sess.closeListeners()
	return snap, nil
}

// Abandon stops the countdown without producing a result; nothing is
// recorded against the profile or the score log.
func (s *SessionService) Abandon(id string) error {
	sess, err := s.get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	if sess.status != SessionActive {
		sess.mu.Unlock()
		return ErrSessionInactive
	}
	sess.status = SessionAbandoned
	sess.endedAt = time.Now()
	snap := sess.snapshotLocked()
	sess.mu.Unlock()

	sess.signalStop()
	sess.broadcast(SessionEvent{Type: "abandoned", Session: snap})
	sess.closeListeners()
	return nil
}

// Subscribe registers a listener for a session's events. The channel is
// closed once the session ends, so subscribers can range over it; the
// returned cancel func must still be called when the subscriber goes away.
func (s *SessionService) Subscribe(id string) (<-chan SessionEvent, func(), error) {
	sess, err := s.get(id)
	if err != nil {
		return nil, nil, err
	}

	sess.mu.Lock()
	if sess.status != SessionActive {
		sess.mu.Unlock()
		ch := make(chan SessionEvent)
		close(ch)
		return ch, func() {}, nil
	}
	ch := make(chan SessionEvent, 16)
	idx := sess.nextListener
	sess.nextListener++
	sess.listeners[idx] = ch
	sess.mu.Unlock()

	cancel := func() {
		sess.mu.Lock()
		delete(sess.listeners, idx)
		sess.mu.Unlock()
	}
	return ch, cancel, nil
}

// SweepEnded drops ended and abandoned sessions older than retention from
// the registry and returns how many were removed.
func (s *SessionService) SweepEnded(retention time.Duration) int {
	cutoff := time.Now().Add(-retention)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		stale := sess.status != SessionActive && sess.endedAt.Before(cutoff)
		sess.mu.Unlock()
		if stale {
			sess.closeListeners()
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *SessionService) get(id string) (*GameSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// run drives the countdown until the session ends or is abandoned. The
// ticker is always stopped on the way out so nothing fires after teardown.
func (s *SessionService) run(sess *GameSession) {
	ticker := time.NewTicker(s.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.stop:
			return
		case <-ticker.C:
			if s.tick(sess) {
				return
			}
		}
	}
}

// tick advances the countdown by one unit and ends the session when it
// reaches zero. It reports whether the countdown is over.
func (s *SessionService) tick(sess *GameSession) bool {
	sess.mu.Lock()
	if sess.status != SessionActive {
		sess.mu.Unlock()
		return true
	}

	sess.timeRemaining--
	if sess.timeRemaining <= 0 {
		sess.timeRemaining = 0
		result := sess.finishLocked()
		snap := sess.snapshotLocked()
		sess.mu.Unlock()

		sess.signalStop()
		s.record(sess.profileID, result)
		sess.broadcast(SessionEvent{Type: "finished", Session: snap})
		sess.closeListeners()
		return true
	}

	snap := sess.snapshotLocked()
	sess.mu.Unlock()
	sess.broadcast(SessionEvent{Type: "tick", Session: snap})
	return false
}

// record forwards a finished session's result to the profile store. A
// missing or empty profile leaves the stores untouched.
func (s *SessionService) record(profileID string, result models.GameResult) {
	if profileID == "" {
		return
	}
	if _, err := s.profiles.RecordResult(profileID, result); err != nil {
		log.Printf("Failed to record game result for profile %s: %v", profileID, err)
	}
}

func (s *SessionService) snapshotOf(sess *GameSession) SessionSnapshot {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshotLocked()
}

// finishLocked transitions the session to ended and builds its result.
// Callers must hold sess.mu and must only call this while active.
func (sess *GameSession) finishLocked() models.GameResult {
	sess.status = SessionEnded
	sess.endedAt = time.Now()
	result := models.GameResult{
		Score:             sess.score,
		QuestionsAnswered: sess.questionsAnswered,
		TimeLimit:         sess.timeLimit,
		Difficulty:        sess.difficulty,
		Accuracy:          models.Accuracy(sess.score, sess.questionsAnswered),
		Streak:            sess.bestStreak,
	}
	sess.result = &result
	return result
}

func (sess *GameSession) snapshotLocked() SessionSnapshot {
	return SessionSnapshot{
		ID:                sess.id,
		ProfileID:         sess.profileID,
		Difficulty:        sess.difficulty,
		TimeLimit:         sess.timeLimit,
		Prompt:            sess.question.Prompt,
		Score:             sess.score,
		QuestionsAnswered: sess.questionsAnswered,
		Streak:            sess.streak,
		BestStreak:        sess.bestStreak,
		TimeRemaining:     sess.timeRemaining,
		Status:            sess.status,
		Result:            sess.result,
	}
}

func (sess *GameSession) signalStop() {
	sess.stopOnce.Do(func() {
		close(sess.stop)
	})
}

func (sess *GameSession) broadcast(ev SessionEvent) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	for _, ch := range sess.listeners {
		select {
		case ch <- ev:
		default: // drop for slow subscribers rather than stall the timer
		}
	}
}

// closeListeners closes and removes every subscriber channel so range loops
// over them terminate even if the terminal event was dropped.
func (sess *GameSession) closeListeners() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	for idx, ch := range sess.listeners {
		close(ch)
		delete(sess.listeners, idx)
	}
}
