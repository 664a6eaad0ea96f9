package services

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/superbmt/zap-zap-game/models"
)

// currentAnswer peeks at the live session's question, which is never exposed
// through snapshots.
func currentAnswer(t *testing.T, svc *SessionService, id string) int {
	t.Helper()
	sess, err := svc.get(id)
	if err != nil {
		t.Fatalf("session %s not found: %v", id, err)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.question.Answer
}

func startSession(t *testing.T, env *testEnv, profileID string) SessionSnapshot {
	t.Helper()
	snap, err := env.sessions.Start(profileID, models.DifficultyEasy, 60)
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	return snap
}

func TestStartRejectsInvalidConfig(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.TickInterval = time.Hour

	if _, err := env.sessions.Start("", models.Difficulty("nightmare"), 30); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for bad difficulty, got %v", err)
	}
	if _, err := env.sessions.Start("", models.DifficultyEasy, 20); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for bad time limit, got %v", err)
	}
}

func TestSubmitAnswerScoringAndStreaks(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.TickInterval = time.Hour

	snap := startSession(t, env, "")

	// Three correct answers build a streak.
	for i := 0; i < 3; i++ {
		ans := currentAnswer(t, env.sessions, snap.ID)
		out, err := env.sessions.SubmitAnswer(snap.ID, strconv.Itoa(ans))
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
		if !out.Accepted || !out.Correct {
			t.Fatalf("expected correct answer to be accepted, got %+v", out)
		}
		if out.CorrectAnswer != ans {
			t.Fatalf("expected correct_answer %d, got %d", ans, out.CorrectAnswer)
		}
	}

	// A wrong answer resets the streak but keeps the best.
	ans := currentAnswer(t, env.sessions, snap.ID)
	out, err := env.sessions.SubmitAnswer(snap.ID, strconv.Itoa(ans+1))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !out.Accepted || out.Correct {
		t.Fatalf("expected wrong answer to be accepted but incorrect, got %+v", out)
	}

	ans = currentAnswer(t, env.sessions, snap.ID)
	out, err = env.sessions.SubmitAnswer(snap.ID, strconv.Itoa(ans))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	s := out.Session
	if s.Score != 4 || s.QuestionsAnswered != 5 {
		t.Fatalf("expected score 4 over 5 answered, got %d over %d", s.Score, s.QuestionsAnswered)
	}
	if s.Streak != 1 || s.BestStreak != 3 {
		t.Fatalf("expected streak 1 / best 3, got %d / %d", s.Streak, s.BestStreak)
	}
}

func TestSubmitAnswerSanitizesInput(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.TickInterval = time.Hour

	snap := startSession(t, env, "")
	ans := currentAnswer(t, env.sessions, snap.ID)

	out, err := env.sessions.SubmitAnswer(snap.ID, " a"+strconv.Itoa(ans)+"!\n")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !out.Accepted || !out.Correct {
		t.Fatalf("expected sanitized answer to score, got %+v", out)
	}
}

func TestSubmitAnswerEmptyInputIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.TickInterval = time.Hour

	snap := startSession(t, env, "")

	for _, raw := range []string{"", "   ", "abc!?"} {
		out, err := env.sessions.SubmitAnswer(snap.ID, raw)
		if err != nil {
			t.Fatalf("submit %q failed: %v", raw, err)
		}
		if out.Accepted {
			t.Fatalf("expected %q to be ignored", raw)
		}
		if out.Session.QuestionsAnswered != 0 || out.Session.Streak != 0 {
			t.Fatalf("no-op submit mutated session: %+v", out.Session)
		}
	}
}

func TestSubmitAnswerUnknownSession(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.sessions.SubmitAnswer("no-such-session", "42"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestFinishRecordsResultAndStats(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.TickInterval = time.Hour

	profile := mustCreateProfile(t, env, "Amy")
	snap, err := env.sessions.Start(profile.ID, models.DifficultyEasy, 30)
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	// 4 correct, 1 wrong.
	for i := 0; i < 4; i++ {
		ans := currentAnswer(t, env.sessions, snap.ID)
		if _, err := env.sessions.SubmitAnswer(snap.ID, strconv.Itoa(ans)); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}
	ans := currentAnswer(t, env.sessions, snap.ID)
	if _, err := env.sessions.SubmitAnswer(snap.ID, strconv.Itoa(ans+1)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	final, err := env.sessions.Finish(snap.ID)
	if err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	if final.Status != SessionEnded {
		t.Fatalf("expected ended status, got %s", final.Status)
	}
	if final.Result == nil {
		t.Fatal("expected a result on the final snapshot")
	}
	if final.Result.Score != 4 || final.Result.Accuracy != 80.0 || final.Result.Streak != 4 {
		t.Fatalf("unexpected result: %+v", final.Result)
	}

	updated, err := env.profiles.Get(profile.ID)
	if err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}
	if updated.GamesPlayed != 1 || updated.BestScore != 4 || updated.LongestStreak != 4 {
		t.Fatalf("profile stats not updated: %+v", updated)
	}
	if updated.LastPlayed == nil {
		t.Fatal("expected last_played to be set")
	}

	entries, err := env.scores.All()
	if err != nil {
		t.Fatalf("failed to load score log: %v", err)
	}
	if len(entries) != 1 || entries[0].ProfileID != profile.ID {
		t.Fatalf("expected one score entry for the profile, got %+v", entries)
	}

	// Finishing again is rejected but still returns the snapshot.
	again, err := env.sessions.Finish(snap.ID)
	if !errors.Is(err, ErrSessionInactive) {
		t.Fatalf("expected ErrSessionInactive, got %v", err)
	}
	if again.Status != SessionEnded {
		t.Fatalf("expected ended status on repeat finish, got %s", again.Status)
	}
}

func TestAbandonRecordsNothing(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.TickInterval = time.Hour

	profile := mustCreateProfile(t, env, "Ben")
	snap, err := env.sessions.Start(profile.ID, models.DifficultyMedium, 45)
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	ans := currentAnswer(t, env.sessions, snap.ID)
	if _, err := env.sessions.SubmitAnswer(snap.ID, strconv.Itoa(ans)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := env.sessions.Abandon(snap.ID); err != nil {
		t.Fatalf("abandon failed: %v", err)
	}

	updated, err := env.profiles.Get(profile.ID)
	if err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}
	if updated.GamesPlayed != 0 || updated.TotalScore != 0 {
		t.Fatalf("abandoned session touched profile stats: %+v", updated)
	}
	entries, err := env.scores.All()
	if err != nil {
		t.Fatalf("failed to load score log: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("abandoned session appended to the score log: %+v", entries)
	}

	// Ended sessions stay ended.
	if _, err := env.sessions.Finish(snap.ID); !errors.Is(err, ErrSessionInactive) {
		t.Fatalf("expected ErrSessionInactive after abandon, got %v", err)
	}
	out, err := env.sessions.SubmitAnswer(snap.ID, "7")
	if err != nil {
		t.Fatalf("submit after abandon errored: %v", err)
	}
	if out.Accepted {
		t.Fatal("submit after abandon should be a no-op")
	}
}

func TestCountdownEndsSession(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.TickInterval = 2 * time.Millisecond

	profile := mustCreateProfile(t, env, "Cleo")
	snap, err := env.sessions.Start(profile.ID, models.DifficultyEasy, 15)
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		cur, err := env.sessions.Snapshot(snap.ID)
		if err != nil {
			t.Fatalf("snapshot failed: %v", err)
		}
		if cur.Status == SessionEnded {
			if cur.TimeRemaining != 0 {
				t.Fatalf("ended session still has %d remaining", cur.TimeRemaining)
			}
			if cur.Result == nil {
				t.Fatal("expected a result after timeout")
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("session did not end within the deadline")
		}
		time.Sleep(time.Millisecond)
	}

	updated, err := env.profiles.Get(profile.ID)
	if err != nil {
		t.Fatalf("failed to reload profile: %v", err)
	}
	if updated.GamesPlayed != 1 {
		t.Fatalf("timeout did not record the game, profile: %+v", updated)
	}
}

func TestSubscribeReceivesFinishEvent(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.TickInterval = time.Hour

	snap := startSession(t, env, "")
	events, cancel, err := env.sessions.Subscribe(snap.ID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	if _, err := env.sessions.Finish(snap.ID); err != nil {
		t.Fatalf("finish failed: %v", err)
	}

	select {
	case ev := <-events:
		if ev.Type != "finished" {
			t.Fatalf("expected finished event, got %q", ev.Type)
		}
		if ev.Session.Status != SessionEnded {
			t.Fatalf("event carries status %s", ev.Session.Status)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestSubscriberChannelClosesOnFinish(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.TickInterval = time.Hour

	snap := startSession(t, env, "")
	events, cancel, err := env.sessions.Subscribe(snap.ID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	if _, err := env.sessions.Finish(snap.ID); err != nil {
		t.Fatalf("finish failed: %v", err)
	}

	// Drain whatever was buffered; the channel must close so range loops
	// over it terminate.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscriber channel never closed after finish")
		}
	}
}

func TestSubscriberChannelClosesOnAbandon(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.TickInterval = time.Hour

	snap := startSession(t, env, "")
	events, cancel, err := env.sessions.Subscribe(snap.ID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	if err := env.sessions.Abandon(snap.ID); err != nil {
		t.Fatalf("abandon failed: %v", err)
	}

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscriber channel never closed after abandon")
		}
	}
}

func TestSubscribeToEndedSessionIsClosed(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.TickInterval = time.Hour

	snap := startSession(t, env, "")
	if _, err := env.sessions.Finish(snap.ID); err != nil {
		t.Fatalf("finish failed: %v", err)
	}

	events, cancel, err := env.sessions.Subscribe(snap.ID)
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	defer cancel()

	select {
	case _, ok := <-events:
		if ok {
			t.Fatal("expected no events on an ended session")
		}
	case <-time.After(time.Second):
		t.Fatal("channel for an ended session should already be closed")
	}
}

func TestSweepEndedRemovesFinishedSessions(t *testing.T) {
	env := newTestEnv(t)
	env.sessions.TickInterval = time.Hour

	active := startSession(t, env, "")
	done := startSession(t, env, "")
	if _, err := env.sessions.Finish(done.ID); err != nil {
		t.Fatalf("finish failed: %v", err)
	}

	if removed := env.sessions.SweepEnded(0); removed != 1 {
		t.Fatalf("expected 1 session swept, got %d", removed)
	}
	if _, err := env.sessions.Snapshot(done.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected swept session to be gone, got %v", err)
	}
	if _, err := env.sessions.Snapshot(active.ID); err != nil {
		t.Fatalf("active session should survive the sweep: %v", err)
	}
}
