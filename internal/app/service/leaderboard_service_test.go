package service

import (
	"context"
	"testing"

	"runboard/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runsAt(status model.RunStatus, league string, difficulties ...int) []model.Run {
	runs := make([]model.Run, 0, len(difficulties))
	for _, d := range difficulties {
		runs = append(runs, model.Run{Status: status, Challenge: model.Challenge{Difficulty: d, League: league}})
	}
	return runs
}

func TestRankUsersMaxDifficultyAndExclusion(t *testing.T) {
	users := []model.User{
		{Username: "idle", Runs: runsAt(model.RunStatusPending, "gold", 9)},
		{Username: "climber", Runs: runsAt(model.RunStatusApproved, "silver", 3, 7, 5)},
	}

	entries := RankUsers(users)

	require.Len(t, entries, 1)
	assert.Equal(t, model.LeaderboardEntry{Username: "climber", MaxDifficulty: 7, League: "silver", RunsCount: 3}, entries[0])
}

func TestRankUsersTieBreaksOnRunsCount(t *testing.T) {
	users := []model.User{
		{Username: "three", Runs: runsAt(model.RunStatusApproved, "a", 7, 1, 2)},
		{Username: "five", Runs: runsAt(model.RunStatusApproved, "a", 7, 1, 2, 3, 4)},
		{Username: "low", Runs: runsAt(model.RunStatusApproved, "a", 2)},
	}

	entries := RankUsers(users)

	require.Len(t, entries, 3)
	assert.Equal(t, "five", entries[0].Username)
	assert.Equal(t, "three", entries[1].Username)
	assert.Equal(t, "low", entries[2].Username)
}

func TestRankUsersLeagueFromFirstApprovedRun(t *testing.T) {
	runs := []model.Run{
		{Status: model.RunStatusPending, Challenge: model.Challenge{Difficulty: 10, League: "pending-league"}},
		{Status: model.RunStatusApproved, Challenge: model.Challenge{Difficulty: 2, League: "bronze"}},
		{Status: model.RunStatusApproved, Challenge: model.Challenge{Difficulty: 8, League: "diamond"}},
	}

	entries := RankUsers([]model.User{{Username: "u", Runs: runs}})

	require.Len(t, entries, 1)
	assert.Equal(t, "bronze", entries[0].League)
	assert.Equal(t, 8, entries[0].MaxDifficulty)
	assert.Equal(t, 2, entries[0].RunsCount)
}

func TestRankUsersStableOnFullTie(t *testing.T) {
	users := []model.User{
		{Username: "first", Runs: runsAt(model.RunStatusApproved, "a", 4)},
		{Username: "second", Runs: runsAt(model.RunStatusApproved, "a", 4)},
	}

	entries := RankUsers(users)

	assert.Equal(t, "first", entries[0].Username)
	assert.Equal(t, "second", entries[1].Username)
}

func TestLeaderboardFromStore(t *testing.T) {
	f := newFixture(t)
	easy := f.challenge(t, "Easy Jump", 3, "bronze")
	hard := f.challenge(t, "Hard Jump", 7, "gold")
	mid := f.challenge(t, "Mid Jump", 5, "silver")

	alice := f.user(t, "alice", model.RoleUser)
	bob := f.user(t, "bob", model.RoleUser)
	f.user(t, "carol", model.RoleUser)

	f.run(t, alice, easy, model.RunStatusApproved)
	f.run(t, alice, hard, model.RunStatusApproved)
	f.run(t, alice, mid, model.RunStatusApproved)
	f.run(t, bob, hard, model.RunStatusPending)
	f.run(t, bob, mid, model.RunStatusApproved)

	entries, err := NewLeaderboardService(f.users).Leaderboard(context.Background())
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, model.LeaderboardEntry{Username: "alice", MaxDifficulty: 7, League: "bronze", RunsCount: 3}, entries[0])
	assert.Equal(t, model.LeaderboardEntry{Username: "bob", MaxDifficulty: 5, League: "silver", RunsCount: 1}, entries[1])
}
