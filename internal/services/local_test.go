package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/museforge-api/internal/metrics"
	"github.com/Conceptual-Machines/museforge-api/internal/models"
	"github.com/Conceptual-Machines/museforge-api/internal/musegen"
)

func TestLocalGenerator_Suggestions(t *testing.T) {
	recorder := metrics.NewRecorder(nil, nil)
	gen := newTestLocal(recorder)
	ctx := context.Background()
	sc := models.SuggestionContext{Prompt: "midnight rooftop rave"}

	genres, err := gen.SuggestGenres(ctx, sc)
	require.NoError(t, err)
	assert.Equal(t, []string{"vaporwave", "future bass", "uk garage", "lofi house"}, genres.Genres)

	prompt, err := gen.EnhancePrompt(ctx, sc)
	require.NoError(t, err)
	assert.NotEmpty(t, prompt.Prompt)

	artists, err := gen.SuggestArtists(ctx, sc)
	require.NoError(t, err)
	assert.NotEmpty(t, artists.Artists)

	languages, err := gen.SuggestLanguages(ctx, sc)
	require.NoError(t, err)
	assert.Len(t, languages.Languages, 3)

	lyrics, err := gen.EnhanceLyrics(ctx, sc)
	require.NoError(t, err)
	assert.NotEmpty(t, lyrics.Lyrics)

	snap := recorder.Snapshot()
	assert.Equal(t, int64(1), snap.Synthesis["genres"])
	assert.Equal(t, int64(1), snap.Generations[OpSuggestGenres])
	assert.Equal(t, int64(5), snap.Synthesis["prompt"]+snap.Synthesis["genres"]+snap.Synthesis["artists"]+snap.Synthesis["languages"]+snap.Synthesis["lyrics"])
}

func TestLocalGenerator_NoveltyAcrossCalls(t *testing.T) {
	gen := newTestLocal(nil)
	ctx := context.Background()
	sc := models.SuggestionContext{Prompt: "midnight rooftop rave"}

	first, err := gen.SuggestGenres(ctx, sc)
	require.NoError(t, err)
	second, err := gen.SuggestGenres(ctx, sc)
	require.NoError(t, err)

	assert.NotEqual(t, first.Genres, second.Genres)
	assert.Equal(t, []string{"progressive house", "afrobeats", "ambient techno", "chillwave"}, second.Genres)
}

func TestLocalGenerator_PlanAuditAssets(t *testing.T) {
	gen := newTestLocal(nil)
	ctx := context.Background()
	req := &models.PlanRequest{Genres: []string{"techno"}, Lyrics: "city lights"}

	plan, err := gen.GenerateMusicPlan(ctx, req, 0.42)
	require.NoError(t, err)
	assert.Equal(t, "techno", plan.Genre)
	assert.Equal(t, 0.42, plan.RandomSeed)
	require.NoError(t, plan.Validate())

	report, err := gen.AuditMusicPlan(ctx, plan, req)
	require.NoError(t, err)
	assert.True(t, report.Passed)
	assert.Equal(t, musegen.AuditPassedFeedback, report.Feedback)

	assets, err := gen.GenerateCreativeAssets(ctx, plan, []models.VideoStyle{models.VideoOfficial}, "city lights")
	require.NoError(t, err)
	assert.Equal(t, []models.LyricLine{{Time: "0s-20s", Line: "city lights"}}, assets.LyricsAlignment)
	assert.Contains(t, assets.VideoStoryboard, models.VideoOfficial)
	assert.Equal(t, "local", gen.Name())
}
