package services

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Conceptual-Machines/museforge-api/internal/config"
	"github.com/Conceptual-Machines/museforge-api/internal/llm"
	"github.com/Conceptual-Machines/museforge-api/internal/logger"
	"github.com/Conceptual-Machines/museforge-api/internal/metrics"
	"github.com/Conceptual-Machines/museforge-api/internal/musegen"
	"github.com/Conceptual-Machines/museforge-api/internal/observability"
)

// Dependencies are the shared collaborators handed to every strategy.
// Zero values are valid: no metrics, the global Langfuse client, time.Now.
type Dependencies struct {
	Recorder   *metrics.Recorder
	Langfuse   *observability.LangfuseClient
	HTTPClient *http.Client
	Clock      func() time.Time
}

// NewGenerator picks the generation strategy once, from configuration
func NewGenerator(ctx context.Context, cfg *config.Config, deps Dependencies) (Generator, error) {
	pools, err := loadPools(cfg.PoolsFile)
	if err != nil {
		return nil, err
	}

	opts := []musegen.Option{
		musegen.WithObserver(func(kind musegen.Kind, attempts int, duration time.Duration) {
			deps.Recorder.RecordSynthesis(string(kind), attempts, duration)
		}),
	}
	if deps.Clock != nil {
		opts = append(opts, musegen.WithClock(deps.Clock))
	}
	local := NewLocalGenerator(musegen.NewSynthesizer(pools, opts...), deps.Recorder)

	mode := cfg.ResolveMode()
	var primary Generator
	switch mode {
	case config.ModeLocal:
		logger.Info("Generation strategy selected", logger.Fields{"strategy": strategyLocal})
		return local, nil

	case config.ModeRemote:
		factory := llm.NewProviderFactory(cfg.OpenAIAPIKey, cfg.GeminiAPIKey)
		provider, err := factory.GetProvider(ctx, cfg.ModelName(), cfg.LLMProvider)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotConfigured, err)
		}
		primary = NewRemoteGenerator(provider, cfg.ModelName(), cfg.Temperature, deps.Langfuse, deps.Recorder).
			WithReasoningMode(cfg.ReasoningMode)

	case config.ModeForward:
		if cfg.APIBaseURL == "" {
			return nil, fmt.Errorf("%w: forward mode requires API_BASE_URL", ErrNotConfigured)
		}
		client := deps.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: cfg.ForwardTimeout}
		}
		primary = NewForwardingGenerator(cfg.APIBaseURL, client, cfg.ForwardRatePerSecond, deps.Recorder)

	default:
		return nil, fmt.Errorf("%w: unknown generation mode %q", ErrNotConfigured, mode)
	}

	logger.Info("Generation strategy selected", logger.Fields{
		"strategy": primary.Name(),
		"fallback": cfg.FallbackToOffline,
	})
	if cfg.FallbackToOffline {
		return NewFallbackGenerator(primary, local, deps.Recorder), nil
	}
	return primary, nil
}

func loadPools(path string) (*musegen.Pools, error) {
	if path == "" {
		return musegen.DefaultPools(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pools file: %w", err)
	}
	defer f.Close()

	pools, err := musegen.LoadPools(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load pools file %s: %w", path, err)
	}
	return pools, nil
}
