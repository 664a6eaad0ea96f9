// services/leaderboard_service.go - Ranked standings derived from the score
// log
package services

import (
	"math"
	"sort"

	"github.com/superbmt/zap-zap-game/models"
)

// DefaultLeaderboardLimit is the number of entries per category cell when
// the caller does not ask for a specific limit.
const DefaultLeaderboardLimit = 10

// RankedEntry combines a profile with its aggregates inside one leaderboard
// category.
type RankedEntry struct {
	models.Profile
	TopScore        int               `json:"top_score"`
	TopAccuracy     float64           `json:"top_accuracy"`
	GamesInCategory int               `json:"games_in_category"`
	AverageScore    int               `json:"average_score"`
	Difficulty      models.Difficulty `json:"difficulty"`
	TimeLimit       int               `json:"time_limit,omitempty"`
}

// LeaderboardService derives rankings from the profile store and score log.
type LeaderboardService struct {
	profiles *ProfileService
	scores   *ScoreService
}

func NewLeaderboardService(profiles *ProfileService, scores *ScoreService) *LeaderboardService {
	return &LeaderboardService{profiles: profiles, scores: scores}
}

// Rankings returns the nested leaderboards, one cell per
// (difficulty, time limit) pair. Profiles with no entry in a cell do not
// appear in that cell.
func (s *LeaderboardService) Rankings(limit int) (map[models.Difficulty]map[int][]RankedEntry, error) {
	profiles, entries, err := s.load()
	if err != nil {
		return nil, err
	}

	boards := make(map[models.Difficulty]map[int][]RankedEntry, len(models.Difficulties))
	for _, difficulty := range models.Difficulties {
		boards[difficulty] = make(map[int][]RankedEntry, len(models.TimeLimits))
		for _, timeLimit := range models.TimeLimits {
			var cell []models.ScoreEntry
			for _, e := range entries {
				if e.Difficulty == difficulty && e.TimeLimit == timeLimit {
					cell = append(cell, e)
				}
			}
			ranked := rankCell(profiles, cell, limit)
			for i := range ranked {
				ranked[i].Difficulty = difficulty
				ranked[i].TimeLimit = timeLimit
			}
			boards[difficulty][timeLimit] = ranked
		}
	}
	return boards, nil
}

// RankingsByDifficulty is the single-dimension variant that combines all
// time limits, kept for older category consumers.
func (s *LeaderboardService) RankingsByDifficulty(limit int) (map[models.Difficulty][]RankedEntry, error) {
	profiles, entries, err := s.load()
	if err != nil {
		return nil, err
	}

	boards := make(map[models.Difficulty][]RankedEntry, len(models.Difficulties))
	for _, difficulty := range models.Difficulties {
		var cell []models.ScoreEntry
		for _, e := range entries {
			if e.Difficulty == difficulty {
				cell = append(cell, e)
			}
		}
		ranked := rankCell(profiles, cell, limit)
		for i := range ranked {
			ranked[i].Difficulty = difficulty
		}
		boards[difficulty] = ranked
	}
	return boards, nil
}

// Combined flattens the per-difficulty boards into a single list, kept only
// for legacy consumers that predate category leaderboards.
func (s *LeaderboardService) Combined(limit int) ([]RankedEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	boards, err := s.RankingsByDifficulty(limit)
	if err != nil {
		return nil, err
	}

	combined := make([]RankedEntry, 0, limit)
	for _, difficulty := range models.Difficulties {
		combined = append(combined, boards[difficulty]...)
	}
	if len(combined) > limit {
		combined = combined[:limit]
	}
	return combined, nil
}

func (s *LeaderboardService) load() ([]models.Profile, []models.ScoreEntry, error) {
	profiles, err := s.profiles.List()
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.scores.All()
	if err != nil {
		return nil, nil, err
	}
	return profiles, entries, nil
}

// rankCell groups one cell's score entries by profile, aggregates them, and
// sorts by top score, then average score, then profile id so ties order
// deterministically.
func rankCell(profiles []models.Profile, cell []models.ScoreEntry, limit int) []RankedEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	byProfile := make(map[string][]models.ScoreEntry)
	for _, e := range cell {
		byProfile[e.ProfileID] = append(byProfile[e.ProfileID], e)
	}

	ranked := make([]RankedEntry, 0, len(byProfile))
	for _, profile := range profiles {
		scores := byProfile[profile.ID]
		if len(scores) == 0 {
			continue
		}

		topScore := 0
		topAccuracy := 0.0
		sum := 0
		for i, sc := range scores {
			if i == 0 || sc.Score > topScore {
				topScore = sc.Score
			}
			if sc.Accuracy > topAccuracy {
				topAccuracy = sc.Accuracy
			}
			sum += sc.Score
		}

		ranked = append(ranked, RankedEntry{
			Profile:         profile,
			TopScore:        topScore,
			TopAccuracy:     topAccuracy,
			GamesInCategory: len(scores),
			AverageScore:    int(math.Round(float64(sum) / float64(len(scores)))),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TopScore != ranked[j].TopScore {
			return ranked[i].TopScore > ranked[j].TopScore
		}
		if ranked[i].AverageScore != ranked[j].AverageScore {
			return ranked[i].AverageScore > ranked[j].AverageScore
		}
		return ranked[i].ID < ranked[j].ID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
