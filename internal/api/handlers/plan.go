package handlers

import (
	"fmt"
	"math/rand/v2"
	"net/http"

	"github.com/Conceptual-Machines/museforge-api/internal/models"
	"github.com/Conceptual-Machines/museforge-api/internal/services"
	"github.com/gin-gonic/gin"
)

// PlanHandler serves plan generation, audit and creative assets
type PlanHandler struct {
	gen  services.Generator
	seed func() float64
}

func NewPlanHandler(gen services.Generator) *PlanHandler {
	return &PlanHandler{gen: gen, seed: rand.Float64}
}

func validateStyles(styles []models.VideoStyle) error {
	for _, style := range styles {
		if !style.Valid() {
			return fmt.Errorf("unknown video style %q (allowed: lyrical, official, abstract)", style)
		}
	}
	return nil
}

// GeneratePlan creates a music plan. A missing creativitySeed is drawn at random.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req models.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := validateStyles(req.Context.VideoStyles); err != nil {
		respondBadRequest(c, err)
		return
	}

	seed := h.seed()
	if req.CreativitySeed != nil {
		seed = *req.CreativitySeed
	}

	plan, err := h.gen.GenerateMusicPlan(c.Request.Context(), &req.Context, seed)
	if err != nil {
		respondError(c, services.OpGeneratePlan, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) AuditPlan(c *gin.Context) {
	var req models.AuditPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	report, err := h.gen.AuditMusicPlan(c.Request.Context(), &req.Plan, &req.Context)
	if err != nil {
		respondError(c, services.OpAuditPlan, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *PlanHandler) CreativeAssets(c *gin.Context) {
	var req models.CreativeAssetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := validateStyles(req.VideoStyles); err != nil {
		respondBadRequest(c, err)
		return
	}

	assets, err := h.gen.GenerateCreativeAssets(c.Request.Context(), &req.Plan, req.VideoStyles, req.Lyrics)
	if err != nil {
		respondError(c, services.OpCreativeAssets, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}
