package services

import (
	"context"
	"errors"
	"time"

	"github.com/Conceptual-Machines/museforge-api/internal/metrics"
	"github.com/Conceptual-Machines/museforge-api/internal/models"
)

var (
	// ErrGenerationFailed wraps every failure of the remote or forwarding path
	ErrGenerationFailed = errors.New("AI generation failed")

	// ErrNotConfigured is returned when the chosen strategy lacks its settings
	ErrNotConfigured = errors.New("generation strategy not configured")
)

// Operation names. Each one is also the forwarding path under /api/.
const (
	OpEnhancePrompt    = "enhance-prompt"
	OpSuggestGenres    = "suggest-genres"
	OpSuggestArtists   = "suggest-artists"
	OpSuggestLanguages = "suggest-languages"
	OpEnhanceLyrics    = "enhance-lyrics"
	OpGeneratePlan     = "generate-plan"
	OpAuditPlan        = "audit-plan"
	OpCreativeAssets   = "creative-assets"
)

// Generator produces every artifact of the service. Local, remote and forwarding
// strategies are interchangeable behind it and return the same shapes.
type Generator interface {
	Name() string

	EnhancePrompt(ctx context.Context, sc models.SuggestionContext) (*models.PromptResponse, error)
	SuggestGenres(ctx context.Context, sc models.SuggestionContext) (*models.GenresResponse, error)
	SuggestArtists(ctx context.Context, sc models.SuggestionContext) (*models.ArtistsResponse, error)
	SuggestLanguages(ctx context.Context, sc models.SuggestionContext) (*models.LanguagesResponse, error)
	EnhanceLyrics(ctx context.Context, sc models.SuggestionContext) (*models.LyricsResponse, error)

	GenerateMusicPlan(ctx context.Context, req *models.PlanRequest, creativitySeed float64) (*models.MusicPlan, error)
	AuditMusicPlan(ctx context.Context, plan *models.MusicPlan, req *models.PlanRequest) (*models.AuditReport, error)
	GenerateCreativeAssets(ctx context.Context, plan *models.MusicPlan, styles []models.VideoStyle, lyrics string) (*models.CreativeAssets, error)
}

func recordGeneration(ctx context.Context, recorder *metrics.Recorder, strategy, operation string, start time.Time, err error) {
	recorder.RecordGeneration(ctx, strategy, operation, time.Since(start), err == nil)
}
