package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/museforge-api/internal/metrics"
	"github.com/Conceptual-Machines/museforge-api/internal/models"
)

func TestFallbackGenerator_ServesOfflineOnFailure(t *testing.T) {
	recorder := metrics.NewRecorder(nil, nil)
	primary := &failingGenerator{err: ErrGenerationFailed}
	gen := NewFallbackGenerator(primary, newTestLocal(recorder), recorder)
	ctx := context.Background()
	sc := models.SuggestionContext{Prompt: "midnight rooftop rave"}

	genres, err := gen.SuggestGenres(ctx, sc)
	require.NoError(t, err)
	assert.Equal(t, []string{"vaporwave", "future bass", "uk garage", "lofi house"}, genres.Genres)

	_, err = gen.EnhancePrompt(ctx, sc)
	require.NoError(t, err)
	_, err = gen.SuggestArtists(ctx, sc)
	require.NoError(t, err)
	_, err = gen.SuggestLanguages(ctx, sc)
	require.NoError(t, err)
	_, err = gen.EnhanceLyrics(ctx, sc)
	require.NoError(t, err)

	plan, err := gen.GenerateMusicPlan(ctx, &models.PlanRequest{}, 0.5)
	require.NoError(t, err)
	report, err := gen.AuditMusicPlan(ctx, plan, &models.PlanRequest{})
	require.NoError(t, err)
	assert.True(t, report.Passed)
	_, err = gen.GenerateCreativeAssets(ctx, plan, nil, "")
	require.NoError(t, err)

	assert.Equal(t, int64(8), recorder.Snapshot().Fallbacks)
	assert.Equal(t, "failing+local", gen.Name())
}

func TestFallbackGenerator_PrimarySuccessWins(t *testing.T) {
	recorder := metrics.NewRecorder(nil, nil)
	primary := NewRemoteGenerator(respondWith(`{"prompt":"from the model"}`), "m", 0.9, nil, recorder)
	gen := NewFallbackGenerator(primary, newTestLocal(recorder), recorder)

	resp, err := gen.EnhancePrompt(context.Background(), models.SuggestionContext{})
	require.NoError(t, err)
	assert.Equal(t, "from the model", resp.Prompt)
	assert.Equal(t, int64(0), recorder.Snapshot().Fallbacks)
}

func TestFallbackGenerator_CancelledContextIsNotMasked(t *testing.T) {
	recorder := metrics.NewRecorder(nil, nil)
	gen := NewFallbackGenerator(&failingGenerator{err: context.Canceled}, newTestLocal(recorder), recorder)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.SuggestGenres(ctx, models.SuggestionContext{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, int64(0), recorder.Snapshot().Fallbacks)
}
