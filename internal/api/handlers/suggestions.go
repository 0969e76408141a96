package handlers

import (
	"context"
	"net/http"

	"github.com/Conceptual-Machines/museforge-api/internal/models"
	"github.com/Conceptual-Machines/museforge-api/internal/services"
	"github.com/gin-gonic/gin"
)

// SuggestionHandler serves the cascading suggestion endpoints.
// Every request body is {"context": {...}}.
type SuggestionHandler struct {
	gen services.Generator
}

func NewSuggestionHandler(gen services.Generator) *SuggestionHandler {
	return &SuggestionHandler{gen: gen}
}

// handle binds the suggestion context, runs fn and writes its result
func handle[T any](c *gin.Context, operation string, fn func(ctx context.Context, sc models.SuggestionContext) (T, error)) {
	var req models.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	resp, err := fn(c.Request.Context(), req.Context)
	if err != nil {
		respondError(c, operation, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuggestionHandler) EnhancePrompt(c *gin.Context) {
	handle(c, services.OpEnhancePrompt, h.gen.EnhancePrompt)
}

func (h *SuggestionHandler) SuggestGenres(c *gin.Context) {
	handle(c, services.OpSuggestGenres, h.gen.SuggestGenres)
}

func (h *SuggestionHandler) SuggestArtists(c *gin.Context) {
	handle(c, services.OpSuggestArtists, h.gen.SuggestArtists)
}

func (h *SuggestionHandler) SuggestLanguages(c *gin.Context) {
	handle(c, services.OpSuggestLanguages, h.gen.SuggestLanguages)
}

func (h *SuggestionHandler) EnhanceLyrics(c *gin.Context) {
	handle(c, services.OpEnhanceLyrics, h.gen.EnhanceLyrics)
}

// SuggestAll runs all five suggestions for the context at once
func (h *SuggestionHandler) SuggestAll(c *gin.Context) {
	handle(c, "suggest-all", func(ctx context.Context, sc models.SuggestionContext) (*models.SuggestAllResponse, error) {
		return services.SuggestAll(ctx, h.gen, sc)
	})
}
