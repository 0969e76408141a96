package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/museforge-api/internal/config"
	"github.com/Conceptual-Machines/museforge-api/internal/llm"
	"github.com/Conceptual-Machines/museforge-api/internal/models"
)

func TestNewGenerator_Strategies(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantName string
	}{
		{
			name:     "explicit local",
			cfg:      config.Config{GenerationMode: config.ModeLocal, APIBaseURL: "http://upstream"},
			wantName: "local",
		},
		{
			name:     "auto without keys is local",
			cfg:      config.Config{GenerationMode: config.ModeAuto},
			wantName: "local",
		},
		{
			name:     "auto with base url forwards with fallback",
			cfg:      config.Config{GenerationMode: config.ModeAuto, APIBaseURL: "http://upstream", FallbackToOffline: true},
			wantName: "forward+local",
		},
		{
			name:     "forward without fallback",
			cfg:      config.Config{GenerationMode: config.ModeForward, APIBaseURL: "http://upstream"},
			wantName: "forward",
		},
		{
			name:     "remote gemini with fallback",
			cfg:      config.Config{GenerationMode: config.ModeRemote, LLMProvider: config.ProviderGemini, GeminiAPIKey: "test-key", FallbackToOffline: true},
			wantName: "remote+local",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGenerator(context.Background(), &tt.cfg, Dependencies{Clock: fixedClock})
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, gen.Name())
		})
	}
}

func TestNewGenerator_ProviderFollowsModel(t *testing.T) {
	tests := []struct {
		name         string
		cfg          config.Config
		wantProvider string
	}{
		{
			name:         "gpt model without explicit provider",
			cfg:          config.Config{GenerationMode: config.ModeRemote, Model: "gpt-5-mini", OpenAIAPIKey: "test-key", ReasoningMode: "medium"},
			wantProvider: "openai",
		},
		{
			name:         "gemini model without explicit provider",
			cfg:          config.Config{GenerationMode: config.ModeRemote, Model: "gemini-2.5-pro", GeminiAPIKey: "test-key", ReasoningMode: "medium"},
			wantProvider: "gemini",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGenerator(context.Background(), &tt.cfg, Dependencies{Clock: fixedClock})
			require.NoError(t, err)

			remote, ok := gen.(*RemoteGenerator)
			require.True(t, ok)
			assert.Equal(t, tt.wantProvider, remote.provider.Name())
			assert.Equal(t, tt.cfg.Model, remote.model)
			assert.Equal(t, "medium", remote.reasoning)
		})
	}
}

func TestNewGenerator_NotConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"remote without key", config.Config{GenerationMode: config.ModeRemote, LLMProvider: config.ProviderOpenAI}},
		{"forward without base url", config.Config{GenerationMode: config.ModeForward}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerator(context.Background(), &tt.cfg, Dependencies{})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNotConfigured)
		})
	}

	_, err := NewGenerator(context.Background(), &config.Config{GenerationMode: config.ModeRemote, LLMProvider: config.ProviderOpenAI}, Dependencies{})
	assert.ErrorIs(t, err, llm.ErrProviderNotConfigured)
}

func TestNewGenerator_PoolsFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "pools.yaml")
	require.NoError(t, os.WriteFile(good, []byte("genres:\n  - polka\n  - zouk\n"), 0o600))

	gen, err := NewGenerator(context.Background(), &config.Config{GenerationMode: config.ModeLocal, PoolsFile: good}, Dependencies{Clock: fixedClock})
	require.NoError(t, err)

	resp, err := gen.SuggestGenres(context.Background(), models.SuggestionContext{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"polka", "zouk"}, resp.Genres)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("unknown_pool:\n  - x\n"), 0o600))
	_, err = NewGenerator(context.Background(), &config.Config{GenerationMode: config.ModeLocal, PoolsFile: bad}, Dependencies{})
	assert.Error(t, err)

	_, err = NewGenerator(context.Background(), &config.Config{GenerationMode: config.ModeLocal, PoolsFile: filepath.Join(dir, "missing.yaml")}, Dependencies{})
	assert.Error(t, err)
}
