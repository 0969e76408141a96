package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/museforge-api/internal/config"
	"github.com/Conceptual-Machines/museforge-api/internal/metrics"
	"github.com/Conceptual-Machines/museforge-api/internal/models"
	"github.com/Conceptual-Machines/museforge-api/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		GenerationMode: config.ModeLocal,
		AllowedOrigins: []string{"*"},
		AuthMode:       "none",
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) (*gin.Engine, *metrics.Recorder) {
	t.Helper()
	recorder := metrics.NewRecorder(nil, nil)
	gen, err := services.NewGenerator(context.Background(), cfg, services.Dependencies{
		Recorder: recorder,
		Clock:    func() time.Time { return time.UnixMilli(1700000000000) },
	})
	require.NoError(t, err)
	return SetupRouter(cfg, gen, recorder, "test"), recorder
}

func doJSON(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	w := doJSON(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","strategy":"local"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSuggestionEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())
	body := `{"context":{"prompt":"midnight rooftop rave"}}`

	tests := []struct {
		path string
		key  string
	}{
		{"/api/enhance-prompt", "prompt"},
		{"/api/suggest-genres", "genres"},
		{"/api/suggest-artists", "artists"},
		{"/api/suggest-languages", "languages"},
		{"/api/enhance-lyrics", "lyrics"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, tt.path, body)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var resp map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Len(t, resp, 1)
			assert.Contains(t, resp, tt.key)
		})
	}
}

func TestSuggestGenresNovelty(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())
	body := `{"context":{"prompt":"midnight rooftop rave","genres":[],"artists":[],"lyrics":""}}`

	first := doJSON(router, http.MethodPost, "/api/suggest-genres", body)
	second := doJSON(router, http.MethodPost, "/api/suggest-genres", body)

	assert.JSONEq(t, `{"genres":["vaporwave","future bass","uk garage","lofi house"]}`, first.Body.String())
	assert.JSONEq(t, `{"genres":["progressive house","afrobeats","ambient techno","chillwave"]}`, second.Body.String())
}

func TestSuggestAllEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	w := doJSON(router, http.MethodPost, "/api/suggest-all", `{"context":{"genres":["techno"]}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SuggestAllResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Prompt)
	assert.NotEmpty(t, resp.Genres)
	assert.NotEmpty(t, resp.Artists)
	assert.NotEmpty(t, resp.Languages)
	assert.NotEmpty(t, resp.Lyrics)
}

func TestPlanEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	w := doJSON(router, http.MethodPost, "/api/generate-plan",
		`{"context":{"genres":["techno"],"lyrics":"city lights","videoStyles":["lyrical"]},"creativitySeed":0.42}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var plan models.MusicPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Equal(t, "techno", plan.Genre)
	assert.Equal(t, 0.42, plan.RandomSeed)
	require.NoError(t, plan.Validate())

	planJSON := w.Body.String()

	w = doJSON(router, http.MethodPost, "/api/audit-plan", fmt.Sprintf(`{"plan":%s,"context":{"lyrics":"city lights"}}`, planJSON))
	require.Equal(t, http.StatusOK, w.Code)
	var report models.AuditReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.True(t, report.Passed)

	w = doJSON(router, http.MethodPost, "/api/creative-assets",
		fmt.Sprintf(`{"plan":%s,"videoStyles":["lyrical","abstract"],"lyrics":"city lights"}`, planJSON))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"lyricsAlignment":[{"time":"0s-20s","line":"city lights"}],
		"videoStoryboard":{"lyrical":"Placeholder storyboard for lyrical.","abstract":"Placeholder storyboard for abstract."}
	}`, w.Body.String())
}

func TestGeneratePlanPicksSeedWhenMissing(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	w := doJSON(router, http.MethodPost, "/api/generate-plan", `{"context":{}}`)
	require.Equal(t, http.StatusOK, w.Code)

	var plan models.MusicPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.GreaterOrEqual(t, plan.RandomSeed, 0.0)
	assert.Less(t, plan.RandomSeed, 1.0)
}

func TestBadRequests(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	tests := []struct {
		name string
		path string
		body string
	}{
		{"malformed json", "/api/suggest-genres", `{"context":`},
		{"wrong field type", "/api/enhance-prompt", `{"context":{"genres":"techno"}}`},
		{"unknown video style", "/api/generate-plan", `{"context":{"videoStyles":["hologram"]}}`},
		{"unknown asset style", "/api/creative-assets", `{"plan":{},"videoStyles":["hologram"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(router, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
			assert.Equal(t, w.Header().Get("X-Request-ID"), resp["request_id"])
		})
	}
}

func TestGenerationFailureMapping(t *testing.T) {
	cfg := testConfig()
	recorder := metrics.NewRecorder(nil, nil)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"generation failure is 502", fmt.Errorf("%w: quota exceeded", services.ErrGenerationFailed), http.StatusBadGateway, "AI generation failed: quota exceeded"},
		{"other failure is 500", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := SetupRouter(cfg, &erroringGenerator{err: tt.err}, recorder, "test")

			w := doJSON(router, http.MethodPost, "/api/enhance-prompt", `{"context":{}}`)
			assert.Equal(t, tt.wantStatus, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp["error"])
			assert.NotEmpty(t, resp["request_id"])
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, testConfig())

	doJSON(router, http.MethodPost, "/api/suggest-genres", `{"context":{}}`)
	w := doJSON(router, http.MethodGet, "/api/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Version string           `json:"version"`
		API     map[string]any   `json:"api"`
		Usage   metrics.Snapshot `json:"usage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "test", resp.Version)
	assert.Equal(t, "local", resp.API["strategy"])
	assert.Equal(t, int64(1), resp.Usage.Synthesis["genres"])
	assert.Equal(t, int64(1), resp.Usage.Requests)
}

func TestGatewayMode(t *testing.T) {
	cfg := testConfig()
	cfg.AuthMode = "gateway"
	router, _ := newTestRouter(t, cfg)

	w := doJSON(router, http.MethodPost, "/api/suggest-genres", `{"context":{}}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/suggest-genres", bytes.NewBufferString(`{"context":{}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "user-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// health stays public
	w = doJSON(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerSecond = 0.001
	cfg.RateLimitBurst = 1
	router, _ := newTestRouter(t, cfg)

	first := doJSON(router, http.MethodPost, "/api/suggest-genres", `{"context":{}}`)
	second := doJSON(router, http.MethodPost, "/api/suggest-genres", `{"context":{}}`)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

// erroringGenerator fails every call with err
type erroringGenerator struct {
	services.LocalGenerator
	err error
}

func (g *erroringGenerator) Name() string { return "erroring" }

func (g *erroringGenerator) EnhancePrompt(context.Context, models.SuggestionContext) (*models.PromptResponse, error) {
	return nil, g.err
}
