package services

import (
	"context"
	"time"

	"github.com/Conceptual-Machines/museforge-api/internal/llm"
	"github.com/Conceptual-Machines/museforge-api/internal/metrics"
	"github.com/Conceptual-Machines/museforge-api/internal/models"
	"github.com/Conceptual-Machines/museforge-api/internal/musegen"
)

const fixedMillis = 1700000000000

func fixedClock() time.Time {
	return time.UnixMilli(fixedMillis)
}

func newTestLocal(recorder *metrics.Recorder) *LocalGenerator {
	synth := musegen.NewSynthesizer(nil,
		musegen.WithClock(fixedClock),
		musegen.WithObserver(func(kind musegen.Kind, attempts int, d time.Duration) {
			recorder.RecordSynthesis(string(kind), attempts, d)
		}),
	)
	return NewLocalGenerator(synth, recorder)
}

// MockProvider is a test implementation of llm.Provider
type MockProvider struct {
	name         string
	generateFunc func(ctx context.Context, request *llm.GenerationRequest) (*llm.GenerationResponse, error)
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Generate(ctx context.Context, request *llm.GenerationRequest) (*llm.GenerationResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, request)
	}
	return &llm.GenerationResponse{}, nil
}

// failingGenerator fails every call with err
type failingGenerator struct {
	err error
}

func (f *failingGenerator) Name() string { return "failing" }

func (f *failingGenerator) EnhancePrompt(context.Context, models.SuggestionContext) (*models.PromptResponse, error) {
	return nil, f.err
}

func (f *failingGenerator) SuggestGenres(context.Context, models.SuggestionContext) (*models.GenresResponse, error) {
	return nil, f.err
}

func (f *failingGenerator) SuggestArtists(context.Context, models.SuggestionContext) (*models.ArtistsResponse, error) {
	return nil, f.err
}

func (f *failingGenerator) SuggestLanguages(context.Context, models.SuggestionContext) (*models.LanguagesResponse, error) {
	return nil, f.err
}

func (f *failingGenerator) EnhanceLyrics(context.Context, models.SuggestionContext) (*models.LyricsResponse, error) {
	return nil, f.err
}

func (f *failingGenerator) GenerateMusicPlan(context.Context, *models.PlanRequest, float64) (*models.MusicPlan, error) {
	return nil, f.err
}

func (f *failingGenerator) AuditMusicPlan(context.Context, *models.MusicPlan, *models.PlanRequest) (*models.AuditReport, error) {
	return nil, f.err
}

func (f *failingGenerator) GenerateCreativeAssets(context.Context, *models.MusicPlan, []models.VideoStyle, string) (*models.CreativeAssets, error) {
	return nil, f.err
}
