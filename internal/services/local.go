package services

import (
	"context"
	"time"

	"github.com/Conceptual-Machines/museforge-api/internal/metrics"
	"github.com/Conceptual-Machines/museforge-api/internal/models"
	"github.com/Conceptual-Machines/museforge-api/internal/musegen"
)

const strategyLocal = "local"

// LocalGenerator serves everything from the offline synthesizer. It never fails.
type LocalGenerator struct {
	synth    *musegen.Synthesizer
	recorder *metrics.Recorder
}

var _ Generator = (*LocalGenerator)(nil)

func NewLocalGenerator(synth *musegen.Synthesizer, recorder *metrics.Recorder) *LocalGenerator {
	return &LocalGenerator{synth: synth, recorder: recorder}
}

func (g *LocalGenerator) Name() string { return strategyLocal }

func (g *LocalGenerator) EnhancePrompt(ctx context.Context, sc models.SuggestionContext) (*models.PromptResponse, error) {
	defer recordGeneration(ctx, g.recorder, strategyLocal, OpEnhancePrompt, time.Now(), nil)
	return &models.PromptResponse{Prompt: g.synth.EnhancePrompt(sc)}, nil
}

func (g *LocalGenerator) SuggestGenres(ctx context.Context, sc models.SuggestionContext) (*models.GenresResponse, error) {
	defer recordGeneration(ctx, g.recorder, strategyLocal, OpSuggestGenres, time.Now(), nil)
	return &models.GenresResponse{Genres: g.synth.SuggestGenres(sc)}, nil
}

func (g *LocalGenerator) SuggestArtists(ctx context.Context, sc models.SuggestionContext) (*models.ArtistsResponse, error) {
	defer recordGeneration(ctx, g.recorder, strategyLocal, OpSuggestArtists, time.Now(), nil)
	return &models.ArtistsResponse{Artists: g.synth.SuggestArtists(sc)}, nil
}

func (g *LocalGenerator) SuggestLanguages(ctx context.Context, sc models.SuggestionContext) (*models.LanguagesResponse, error) {
	defer recordGeneration(ctx, g.recorder, strategyLocal, OpSuggestLanguages, time.Now(), nil)
	return &models.LanguagesResponse{Languages: g.synth.SuggestLanguages(sc)}, nil
}

func (g *LocalGenerator) EnhanceLyrics(ctx context.Context, sc models.SuggestionContext) (*models.LyricsResponse, error) {
	defer recordGeneration(ctx, g.recorder, strategyLocal, OpEnhanceLyrics, time.Now(), nil)
	return &models.LyricsResponse{Lyrics: g.synth.EnhanceLyrics(sc)}, nil
}

func (g *LocalGenerator) GenerateMusicPlan(ctx context.Context, req *models.PlanRequest, creativitySeed float64) (*models.MusicPlan, error) {
	defer recordGeneration(ctx, g.recorder, strategyLocal, OpGeneratePlan, time.Now(), nil)
	plan := g.synth.MusicPlan(req, creativitySeed)
	return &plan, nil
}

func (g *LocalGenerator) AuditMusicPlan(ctx context.Context, plan *models.MusicPlan, req *models.PlanRequest) (*models.AuditReport, error) {
	defer recordGeneration(ctx, g.recorder, strategyLocal, OpAuditPlan, time.Now(), nil)
	report := g.synth.Audit(plan, req)
	return &report, nil
}

func (g *LocalGenerator) GenerateCreativeAssets(ctx context.Context, plan *models.MusicPlan, styles []models.VideoStyle, lyrics string) (*models.CreativeAssets, error) {
	defer recordGeneration(ctx, g.recorder, strategyLocal, OpCreativeAssets, time.Now(), nil)
	assets := g.synth.CreativeAssets(plan, styles, lyrics)
	return &assets, nil
}
