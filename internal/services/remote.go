package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Conceptual-Machines/museforge-api/internal/llm"
	"github.com/Conceptual-Machines/museforge-api/internal/logger"
	"github.com/Conceptual-Machines/museforge-api/internal/metrics"
	"github.com/Conceptual-Machines/museforge-api/internal/models"
	"github.com/Conceptual-Machines/museforge-api/internal/observability"
	"github.com/Conceptual-Machines/museforge-api/internal/prompt"
)

const strategyRemote = "remote"

// RemoteGenerator asks an LLM provider for every artifact, using structured output
type RemoteGenerator struct {
	provider    llm.Provider
	builder     *prompt.Builder
	model       string
	temperature float64
	reasoning   string
	langfuse    *observability.LangfuseClient
	recorder    *metrics.Recorder
}

var _ Generator = (*RemoteGenerator)(nil)

// NewRemoteGenerator creates a generator backed by provider. A nil langfuse client
// falls back to the global one.
func NewRemoteGenerator(
	provider llm.Provider,
	model string,
	temperature float64,
	langfuse *observability.LangfuseClient,
	recorder *metrics.Recorder,
) *RemoteGenerator {
	if langfuse == nil {
		langfuse = observability.GetClient()
	}
	return &RemoteGenerator{
		provider:    provider,
		builder:     prompt.NewPromptBuilder(),
		model:       model,
		temperature: temperature,
		langfuse:    langfuse,
		recorder:    recorder,
	}
}

// WithReasoningMode sets the reasoning effort sent to models that accept one
func (g *RemoteGenerator) WithReasoningMode(mode string) *RemoteGenerator {
	g.reasoning = mode
	return g
}

func (g *RemoteGenerator) Name() string { return strategyRemote }

// call runs one structured-output request and decodes it into out
func (g *RemoteGenerator) call(ctx context.Context, operation string, p prompt.Prompt, schema *llm.OutputSchema, out any) (err error) {
	start := time.Now()
	defer func() { recordGeneration(ctx, g.recorder, strategyRemote, operation, start, err) }()

	trace := g.langfuse.StartTrace(ctx, operation, map[string]interface{}{
		"provider": g.provider.Name(),
		"model":    g.model,
	})
	defer trace.Finish()
	generation := trace.Generation(g.provider.Name()+"."+operation, nil)
	defer generation.Finish()

	temperature := g.temperature
	resp, err := g.provider.Generate(ctx, &llm.GenerationRequest{
		Model:         g.model,
		SystemPrompt:  p.System,
		UserPrompt:    p.User,
		Temperature:   &temperature,
		ReasoningMode: g.reasoning,
		OutputSchema:  schema,
	})
	if err == nil {
		err = resp.Decode(out)
	}

	if resp != nil {
		generation.LogResponse(g.model, map[string]string{"system": p.System, "user": p.User}, resp, map[string]interface{}{
			"operation": operation,
		})
		g.recorder.RecordTokenUsage(ctx, g.model, resp.Usage.InputTokens, resp.Usage.OutputTokens, resp.Usage.TotalTokens)
		logger.LogGenerationRequest(ctx, g.provider.Name(), g.model, time.Since(start), logger.Fields{
			"input_tokens":  resp.Usage.InputTokens,
			"output_tokens": resp.Usage.OutputTokens,
			"total_tokens":  resp.Usage.TotalTokens,
		}, logger.Fields{"operation": operation})
	}

	if err != nil {
		generation.SetLevel("ERROR")
		logger.Error("Remote generation failed", err, logger.Fields{
			"provider":  g.provider.Name(),
			"model":     g.model,
			"operation": operation,
		})
		return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return nil
}

func (g *RemoteGenerator) EnhancePrompt(ctx context.Context, sc models.SuggestionContext) (*models.PromptResponse, error) {
	var out models.PromptResponse
	if err := g.call(ctx, OpEnhancePrompt, g.builder.EnhancePrompt(sc), llm.PromptSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *RemoteGenerator) SuggestGenres(ctx context.Context, sc models.SuggestionContext) (*models.GenresResponse, error) {
	out := models.GenresResponse{Genres: []string{}}
	if err := g.call(ctx, OpSuggestGenres, g.builder.SuggestGenres(sc), llm.GenresSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *RemoteGenerator) SuggestArtists(ctx context.Context, sc models.SuggestionContext) (*models.ArtistsResponse, error) {
	out := models.ArtistsResponse{Artists: []string{}}
	if err := g.call(ctx, OpSuggestArtists, g.builder.SuggestArtists(sc), llm.ArtistsSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *RemoteGenerator) SuggestLanguages(ctx context.Context, sc models.SuggestionContext) (*models.LanguagesResponse, error) {
	out := models.LanguagesResponse{Languages: []string{}}
	if err := g.call(ctx, OpSuggestLanguages, g.builder.SuggestLanguages(sc), llm.LanguagesSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *RemoteGenerator) EnhanceLyrics(ctx context.Context, sc models.SuggestionContext) (*models.LyricsResponse, error) {
	var out models.LyricsResponse
	if err := g.call(ctx, OpEnhanceLyrics, g.builder.EnhanceLyrics(sc), llm.LyricsSchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateMusicPlan asks the composer for a plan and rejects plans that fail validation.
// Notation the theory parser does not recognise is logged and kept.
func (g *RemoteGenerator) GenerateMusicPlan(ctx context.Context, req *models.PlanRequest, creativitySeed float64) (*models.MusicPlan, error) {
	p, err := g.builder.MusicPlan(req, creativitySeed)
	if err != nil {
		return nil, err
	}
	var plan models.MusicPlan
	if err := g.call(ctx, OpGeneratePlan, p, llm.MusicPlanSchema, &plan); err != nil {
		return nil, err
	}
	if err := plan.Validate(); err != nil {
		logger.Warn("Model returned an invalid music plan", logger.Fields{
			"model": g.model,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	for _, issue := range plan.NotationIssues() {
		logger.Warn("Unrecognised notation in music plan", logger.Fields{
			"model": g.model,
			"issue": issue.Error(),
		})
	}
	return &plan, nil
}

func (g *RemoteGenerator) AuditMusicPlan(ctx context.Context, plan *models.MusicPlan, req *models.PlanRequest) (*models.AuditReport, error) {
	p, err := g.builder.Audit(plan, req)
	if err != nil {
		return nil, err
	}
	var report models.AuditReport
	if err := g.call(ctx, OpAuditPlan, p, llm.AuditSchema, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// GenerateCreativeAssets drops storyboard keys the model left null or empty
func (g *RemoteGenerator) GenerateCreativeAssets(ctx context.Context, plan *models.MusicPlan, styles []models.VideoStyle, lyrics string) (*models.CreativeAssets, error) {
	p, err := g.builder.CreativeAssets(plan, styles, lyrics)
	if err != nil {
		return nil, err
	}
	var assets models.CreativeAssets
	if err := g.call(ctx, OpCreativeAssets, p, llm.CreativeAssetsSchema, &assets); err != nil {
		return nil, err
	}
	if assets.LyricsAlignment == nil {
		assets.LyricsAlignment = []models.LyricLine{}
	}
	storyboard := make(map[models.VideoStyle]string, len(assets.VideoStoryboard))
	for style, sentence := range assets.VideoStoryboard {
		if sentence != "" {
			storyboard[style] = sentence
		}
	}
	assets.VideoStoryboard = storyboard
	return &assets, nil
}
