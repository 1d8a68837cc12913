package service

import (
	"context"
	"fmt"
	"sort"

	"runboard/internal/domain/model"
	"runboard/internal/domain/repository"
)

type LeaderboardService struct {
	userRepo repository.UserRepository
}

func NewLeaderboardService(userRepo repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{userRepo: userRepo}
}

// Leaderboard is recomputed from the store on every call.
func (s *LeaderboardService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	users, err := s.userRepo.ListWithApprovedRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}
	return RankUsers(users), nil
}

// RankUsers orders users by their hardest approved challenge, then by number
// of approved runs. Users without approved runs are left out. The league is
// the one of the user's first approved run, not of the hardest one.
func RankUsers(users []model.User) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, 0, len(users))
	for _, user := range users {
		var (
			count         int
			maxDifficulty int
			league        string
		)
		for _, run := range user.Runs {
			if run.Status != model.RunStatusApproved {
				continue
			}
			if count == 0 {
				league = run.Challenge.League
				maxDifficulty = run.Challenge.Difficulty
			} else if run.Challenge.Difficulty > maxDifficulty {
				maxDifficulty = run.Challenge.Difficulty
			}
			count++
		}
		if count == 0 {
			continue
		}
		entries = append(entries, model.LeaderboardEntry{
			Username:      user.Username,
			MaxDifficulty: maxDifficulty,
			League:        league,
			RunsCount:     count,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].MaxDifficulty != entries[j].MaxDifficulty {
			return entries[i].MaxDifficulty > entries[j].MaxDifficulty
		}
		return entries[i].RunsCount > entries[j].RunsCount
	})
	return entries
}
