package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/museforge-api/internal/models"
)

type recordedRequest struct {
	method string
	path   string
	body   map[string]json.RawMessage
}

func newUpstream(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var body map[string]json.RawMessage
		assert.NoError(t, json.Unmarshal(data, &body))

		mu.Lock()
		requests = append(requests, recordedRequest{method: r.Method, path: r.URL.Path, body: body})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestForwardingGenerator_SuggestionPaths(t *testing.T) {
	ctx := context.Background()
	sc := models.SuggestionContext{Prompt: "salt air", Genres: []string{"balearic"}}

	tests := []struct {
		name     string
		path     string
		response string
		call     func(g *ForwardingGenerator) (any, error)
		want     any
	}{
		{
			name:     "enhance prompt",
			path:     "/api/enhance-prompt",
			response: `{"prompt":"sun-bleached balearic drift"}`,
			call:     func(g *ForwardingGenerator) (any, error) { return g.EnhancePrompt(ctx, sc) },
			want:     &models.PromptResponse{Prompt: "sun-bleached balearic drift"},
		},
		{
			name:     "genres",
			path:     "/api/suggest-genres",
			response: `{"genres":["balearic","downtempo"]}`,
			call:     func(g *ForwardingGenerator) (any, error) { return g.SuggestGenres(ctx, sc) },
			want:     &models.GenresResponse{Genres: []string{"balearic", "downtempo"}},
		},
		{
			name:     "artists",
			path:     "/api/suggest-artists",
			response: `{"artists":["José Padilla"]}`,
			call:     func(g *ForwardingGenerator) (any, error) { return g.SuggestArtists(ctx, sc) },
			want:     &models.ArtistsResponse{Artists: []string{"José Padilla"}},
		},
		{
			name:     "languages",
			path:     "/api/suggest-languages",
			response: `{"languages":["Spanish"]}`,
			call:     func(g *ForwardingGenerator) (any, error) { return g.SuggestLanguages(ctx, sc) },
			want:     &models.LanguagesResponse{Languages: []string{"Spanish"}},
		},
		{
			name:     "lyrics",
			path:     "/api/enhance-lyrics",
			response: `{"lyrics":"Verse 1: tide"}`,
			call:     func(g *ForwardingGenerator) (any, error) { return g.EnhanceLyrics(ctx, sc) },
			want:     &models.LyricsResponse{Lyrics: "Verse 1: tide"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, requests := newUpstream(t, http.StatusOK, tt.response)
			gen := NewForwardingGenerator(server.URL+"/", server.Client(), 0, nil)

			got, err := tt.call(gen)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			require.Len(t, *requests, 1)
			req := (*requests)[0]
			assert.Equal(t, http.MethodPost, req.method)
			assert.Equal(t, tt.path, req.path)
			assert.JSONEq(t, `{"prompt":"salt air","genres":["balearic"]}`, string(req.body["context"]))
		})
	}
}

func TestForwardingGenerator_PlanBodies(t *testing.T) {
	ctx := context.Background()

	server, requests := newUpstream(t, http.StatusOK, `{"title":"Tidal","bpm":118}`)
	gen := NewForwardingGenerator(server.URL, server.Client(), 0, nil)

	plan, err := gen.GenerateMusicPlan(ctx, &models.PlanRequest{Prompt: "tide"}, 0.25)
	require.NoError(t, err)
	assert.Equal(t, "Tidal", plan.Title)

	req := (*requests)[0]
	assert.Equal(t, "/api/generate-plan", req.path)
	assert.JSONEq(t, `{"prompt":"tide"}`, string(req.body["context"]))
	assert.JSONEq(t, `0.25`, string(req.body["creativitySeed"]))

	server, requests = newUpstream(t, http.StatusOK, `{"lyricsAlignment":[],"videoStoryboard":{"abstract":"Waves of light."}}`)
	gen = NewForwardingGenerator(server.URL, server.Client(), 0, nil)

	assets, err := gen.GenerateCreativeAssets(ctx, &models.MusicPlan{Title: "Tidal"}, []models.VideoStyle{models.VideoAbstract}, "tide")
	require.NoError(t, err)
	assert.Equal(t, "Waves of light.", assets.VideoStoryboard[models.VideoAbstract])

	req = (*requests)[0]
	assert.Equal(t, "/api/creative-assets", req.path)
	assert.JSONEq(t, `["abstract"]`, string(req.body["videoStyles"]))
	assert.JSONEq(t, `"tide"`, string(req.body["lyrics"]))
	assert.Contains(t, string(req.body["plan"]), `"title":"Tidal"`)

	server, requests = newUpstream(t, http.StatusOK, `{"passed":true,"feedback":"ok"}`)
	gen = NewForwardingGenerator(server.URL, server.Client(), 0, nil)

	report, err := gen.AuditMusicPlan(ctx, &models.MusicPlan{Title: "Tidal"}, &models.PlanRequest{Lyrics: "tide"})
	require.NoError(t, err)
	assert.True(t, report.Passed)

	req = (*requests)[0]
	assert.Equal(t, "/api/audit-plan", req.path)
	assert.JSONEq(t, `{"lyrics":"tide"}`, string(req.body["context"]))
}

func TestForwardingGenerator_UpstreamError(t *testing.T) {
	server, _ := newUpstream(t, http.StatusBadGateway, `{"error":"model overloaded"}`)
	gen := NewForwardingGenerator(server.URL, server.Client(), 0, nil)

	_, err := gen.SuggestGenres(context.Background(), models.SuggestionContext{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)

	var fwdErr *ForwardError
	require.True(t, errors.As(err, &fwdErr))
	assert.Equal(t, http.StatusBadGateway, fwdErr.StatusCode)
	assert.Equal(t, "/api/suggest-genres", fwdErr.Path)
	assert.Contains(t, fwdErr.Body, "model overloaded")
}

func TestForwardingGenerator_ErrorExcerptIsTruncated(t *testing.T) {
	server, _ := newUpstream(t, http.StatusInternalServerError, `"`+strings.Repeat("x", 2000)+`"`)
	gen := NewForwardingGenerator(server.URL, server.Client(), 0, nil)

	_, err := gen.EnhanceLyrics(context.Background(), models.SuggestionContext{})
	var fwdErr *ForwardError
	require.True(t, errors.As(err, &fwdErr))
	assert.Len(t, fwdErr.Body, errorExcerptBytes+len("..."))
}

func TestForwardingGenerator_MalformedResponse(t *testing.T) {
	server, _ := newUpstream(t, http.StatusOK, `not json`)
	gen := NewForwardingGenerator(server.URL, server.Client(), 0, nil)

	_, err := gen.EnhancePrompt(context.Background(), models.SuggestionContext{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "decode response")
}

func TestForwardingGenerator_CancelledContext(t *testing.T) {
	server, requests := newUpstream(t, http.StatusOK, `{}`)
	gen := NewForwardingGenerator(server.URL, server.Client(), 0.001, nil)

	// The first call spends the only token.
	_, err := gen.EnhancePrompt(context.Background(), models.SuggestionContext{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = gen.EnhancePrompt(ctx, models.SuggestionContext{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Len(t, *requests, 1)
}
