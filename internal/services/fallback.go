package services

import (
	"context"

	"github.com/Conceptual-Machines/museforge-api/internal/logger"
	"github.com/Conceptual-Machines/museforge-api/internal/metrics"
	"github.com/Conceptual-Machines/museforge-api/internal/models"
)

// FallbackGenerator answers from the primary strategy and serves the offline result
// whenever the primary fails. Only a cancelled caller context is passed through.
type FallbackGenerator struct {
	primary  Generator
	offline  Generator
	recorder *metrics.Recorder
}

var _ Generator = (*FallbackGenerator)(nil)

func NewFallbackGenerator(primary, offline Generator, recorder *metrics.Recorder) *FallbackGenerator {
	return &FallbackGenerator{primary: primary, offline: offline, recorder: recorder}
}

func (f *FallbackGenerator) Name() string {
	return f.primary.Name() + "+" + f.offline.Name()
}

// withFallback tries primary first and then offline
func withFallback[T any](ctx context.Context, f *FallbackGenerator, operation string, primary, offline func() (T, error)) (T, error) {
	result, err := primary()
	if err == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		return result, err
	}

	logger.Warn("Primary generator failed, serving offline result", logger.Fields{
		"strategy":  f.primary.Name(),
		"operation": operation,
		"error":     err.Error(),
	})
	f.recorder.RecordFallback()
	return offline()
}

func (f *FallbackGenerator) EnhancePrompt(ctx context.Context, sc models.SuggestionContext) (*models.PromptResponse, error) {
	return withFallback(ctx, f, OpEnhancePrompt,
		func() (*models.PromptResponse, error) { return f.primary.EnhancePrompt(ctx, sc) },
		func() (*models.PromptResponse, error) { return f.offline.EnhancePrompt(ctx, sc) })
}

func (f *FallbackGenerator) SuggestGenres(ctx context.Context, sc models.SuggestionContext) (*models.GenresResponse, error) {
	return withFallback(ctx, f, OpSuggestGenres,
		func() (*models.GenresResponse, error) { return f.primary.SuggestGenres(ctx, sc) },
		func() (*models.GenresResponse, error) { return f.offline.SuggestGenres(ctx, sc) })
}

func (f *FallbackGenerator) SuggestArtists(ctx context.Context, sc models.SuggestionContext) (*models.ArtistsResponse, error) {
	return withFallback(ctx, f, OpSuggestArtists,
		func() (*models.ArtistsResponse, error) { return f.primary.SuggestArtists(ctx, sc) },
		func() (*models.ArtistsResponse, error) { return f.offline.SuggestArtists(ctx, sc) })
}

func (f *FallbackGenerator) SuggestLanguages(ctx context.Context, sc models.SuggestionContext) (*models.LanguagesResponse, error) {
	return withFallback(ctx, f, OpSuggestLanguages,
		func() (*models.LanguagesResponse, error) { return f.primary.SuggestLanguages(ctx, sc) },
		func() (*models.LanguagesResponse, error) { return f.offline.SuggestLanguages(ctx, sc) })
}

func (f *FallbackGenerator) EnhanceLyrics(ctx context.Context, sc models.SuggestionContext) (*models.LyricsResponse, error) {
	return withFallback(ctx, f, OpEnhanceLyrics,
		func() (*models.LyricsResponse, error) { return f.primary.EnhanceLyrics(ctx, sc) },
		func() (*models.LyricsResponse, error) { return f.offline.EnhanceLyrics(ctx, sc) })
}

func (f *FallbackGenerator) GenerateMusicPlan(ctx context.Context, req *models.PlanRequest, creativitySeed float64) (*models.MusicPlan, error) {
	return withFallback(ctx, f, OpGeneratePlan,
		func() (*models.MusicPlan, error) { return f.primary.GenerateMusicPlan(ctx, req, creativitySeed) },
		func() (*models.MusicPlan, error) { return f.offline.GenerateMusicPlan(ctx, req, creativitySeed) })
}

func (f *FallbackGenerator) AuditMusicPlan(ctx context.Context, plan *models.MusicPlan, req *models.PlanRequest) (*models.AuditReport, error) {
	return withFallback(ctx, f, OpAuditPlan,
		func() (*models.AuditReport, error) { return f.primary.AuditMusicPlan(ctx, plan, req) },
		func() (*models.AuditReport, error) { return f.offline.AuditMusicPlan(ctx, plan, req) })
}

func (f *FallbackGenerator) GenerateCreativeAssets(ctx context.Context, plan *models.MusicPlan, styles []models.VideoStyle, lyrics string) (*models.CreativeAssets, error) {
	return withFallback(ctx, f, OpCreativeAssets,
		func() (*models.CreativeAssets, error) {
			return f.primary.GenerateCreativeAssets(ctx, plan, styles, lyrics)
		},
		func() (*models.CreativeAssets, error) {
			return f.offline.GenerateCreativeAssets(ctx, plan, styles, lyrics)
		})
}
