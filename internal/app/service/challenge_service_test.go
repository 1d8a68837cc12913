package service

import (
	"context"
	"testing"

	"runboard/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeCatalog(t *testing.T) {
	f := newFixture(t)
	catalog := NewChallengeService(f.challenges)
	ctx := context.Background()

	hard, err := catalog.CreateChallenge(ctx, CreateChallengeRequest{Name: "Hard Mode Glitchless", Difficulty: 9, League: "gold"})
	require.NoError(t, err)
	assert.Equal(t, "hard-mode-glitchless", hard.Slug)

	_, err = catalog.CreateChallenge(ctx, CreateChallengeRequest{Name: "Easy Start", Difficulty: 1, League: "bronze"})
	require.NoError(t, err)

	_, err = catalog.CreateChallenge(ctx, CreateChallengeRequest{Name: "hard mode glitchless", Difficulty: 2, League: "x"})
	requireKind(t, err, common.ErrConflict)

	_, err = catalog.CreateChallenge(ctx, CreateChallengeRequest{Name: "!!!", Difficulty: 2, League: "x"})
	requireKind(t, err, common.ErrValidation)

	list, err := catalog.ListChallenges(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Easy Start", list[0].Name)

	found, err := catalog.GetChallengeBySlug(ctx, "hard-mode-glitchless")
	require.NoError(t, err)
	assert.Equal(t, hard.ID, found.ID)

	_, err = catalog.GetChallengeBySlug(ctx, "missing")
	requireKind(t, err, common.ErrNotFound)
}
