package models

// SuggestionRequest is the body of every suggestion endpoint
type SuggestionRequest struct {
	Context SuggestionContext `json:"context"`
}

// GeneratePlanRequest asks for a full music plan.
// A nil CreativitySeed lets the server pick one.
type GeneratePlanRequest struct {
	Context        PlanRequest `json:"context"`
	CreativitySeed *float64    `json:"creativitySeed,omitempty"`
}

// AuditPlanRequest asks for a quality audit of a generated plan
type AuditPlanRequest struct {
	Plan    MusicPlan   `json:"plan"`
	Context PlanRequest `json:"context"`
}

// CreativeAssetsRequest asks for lyric alignment and storyboards
type CreativeAssetsRequest struct {
	Plan        MusicPlan    `json:"plan"`
	VideoStyles []VideoStyle `json:"videoStyles"`
	Lyrics      string       `json:"lyrics"`
}
