package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Conceptual-Machines/museforge-api/internal/logger"
	"github.com/Conceptual-Machines/museforge-api/internal/metrics"
	"github.com/Conceptual-Machines/museforge-api/internal/models"
	"golang.org/x/time/rate"
)

const (
	strategyForward = "forward"

	maxForwardResponseBytes = 4 << 20
	errorExcerptBytes       = 512
)

// ForwardError is an upstream answer outside the 2xx range
type ForwardError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *ForwardError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("forward %s: status %d", e.Path, e.StatusCode)
	}
	return fmt.Sprintf("forward %s: status %d: %s", e.Path, e.StatusCode, e.Body)
}

// ForwardingGenerator proxies every call to another MuseForge-compatible API.
// No local logic runs in this mode; the upstream JSON is decoded as-is.
type ForwardingGenerator struct {
	baseURL  string
	client   *http.Client
	limiter  *rate.Limiter
	recorder *metrics.Recorder
}

var _ Generator = (*ForwardingGenerator)(nil)

// NewForwardingGenerator creates a proxy to baseURL. A non-positive rate disables pacing.
func NewForwardingGenerator(baseURL string, client *http.Client, ratePerSecond float64, recorder *metrics.Recorder) *ForwardingGenerator {
	if client == nil {
		client = http.DefaultClient
	}
	limit := rate.Inf
	burst := 1
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
		burst = max(1, int(ratePerSecond))
	}
	return &ForwardingGenerator{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   client,
		limiter:  rate.NewLimiter(limit, burst),
		recorder: recorder,
	}
}

func (g *ForwardingGenerator) Name() string { return strategyForward }

// post sends body to /api/<operation> and decodes the response into out
func (g *ForwardingGenerator) post(ctx context.Context, operation string, body, out any) (err error) {
	start := time.Now()
	path := "/api/" + operation
	defer func() {
		recordGeneration(ctx, g.recorder, strategyForward, operation, start, err)
		if err != nil {
			logger.Error("Forwarded request failed", err, logger.Fields{"path": path})
			err = fmt.Errorf("%w: %w", ErrGenerationFailed, err)
		}
	}()

	if err := g.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("forward %s: %w", path, err)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("forward %s: encode request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("forward %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("forward %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxForwardResponseBytes))
	if err != nil {
		return fmt.Errorf("forward %s: read response: %w", path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		excerpt := strings.TrimSpace(string(data))
		if len(excerpt) > errorExcerptBytes {
			excerpt = excerpt[:errorExcerptBytes] + "..."
		}
		return &ForwardError{Path: path, StatusCode: resp.StatusCode, Body: excerpt}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("forward %s: decode response: %w", path, err)
	}
	return nil
}

func (g *ForwardingGenerator) EnhancePrompt(ctx context.Context, sc models.SuggestionContext) (*models.PromptResponse, error) {
	var out models.PromptResponse
	if err := g.post(ctx, OpEnhancePrompt, models.SuggestionRequest{Context: sc}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ForwardingGenerator) SuggestGenres(ctx context.Context, sc models.SuggestionContext) (*models.GenresResponse, error) {
	var out models.GenresResponse
	if err := g.post(ctx, OpSuggestGenres, models.SuggestionRequest{Context: sc}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ForwardingGenerator) SuggestArtists(ctx context.Context, sc models.SuggestionContext) (*models.ArtistsResponse, error) {
	var out models.ArtistsResponse
	if err := g.post(ctx, OpSuggestArtists, models.SuggestionRequest{Context: sc}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ForwardingGenerator) SuggestLanguages(ctx context.Context, sc models.SuggestionContext) (*models.LanguagesResponse, error) {
	var out models.LanguagesResponse
	if err := g.post(ctx, OpSuggestLanguages, models.SuggestionRequest{Context: sc}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ForwardingGenerator) EnhanceLyrics(ctx context.Context, sc models.SuggestionContext) (*models.LyricsResponse, error) {
	var out models.LyricsResponse
	if err := g.post(ctx, OpEnhanceLyrics, models.SuggestionRequest{Context: sc}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ForwardingGenerator) GenerateMusicPlan(ctx context.Context, req *models.PlanRequest, creativitySeed float64) (*models.MusicPlan, error) {
	body := models.GeneratePlanRequest{CreativitySeed: &creativitySeed}
	if req != nil {
		body.Context = *req
	}
	var out models.MusicPlan
	if err := g.post(ctx, OpGeneratePlan, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ForwardingGenerator) AuditMusicPlan(ctx context.Context, plan *models.MusicPlan, req *models.PlanRequest) (*models.AuditReport, error) {
	var body models.AuditPlanRequest
	if plan != nil {
		body.Plan = *plan
	}
	if req != nil {
		body.Context = *req
	}
	var out models.AuditReport
	if err := g.post(ctx, OpAuditPlan, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *ForwardingGenerator) GenerateCreativeAssets(ctx context.Context, plan *models.MusicPlan, styles []models.VideoStyle, lyrics string) (*models.CreativeAssets, error) {
	body := models.CreativeAssetsRequest{VideoStyles: styles, Lyrics: lyrics}
	if plan != nil {
		body.Plan = *plan
	}
	var out models.CreativeAssets
	if err := g.post(ctx, OpCreativeAssets, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
