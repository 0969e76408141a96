package models

// SuggestionContext carries the creative constraints a caller has chosen so far.
// Every field is optional: a nil slice or empty string means "unconstrained".
type SuggestionContext struct {
	Prompt    string   `json:"prompt,omitempty"`
	Genres    []string `json:"genres,omitempty"`
	Artists   []string `json:"artists,omitempty"`
	Languages []string `json:"languages,omitempty"`
	Lyrics    string   `json:"lyrics,omitempty"`
	Duration  *float64 `json:"duration,omitempty"` // Desired song length in seconds
}

// PlanRequest is the full user request a music plan is generated from
type PlanRequest struct {
	Prompt      string       `json:"prompt,omitempty"`
	Genres      []string     `json:"genres,omitempty"`
	Artists     []string     `json:"artists,omitempty"`
	Languages   []string     `json:"languages,omitempty"`
	Lyrics      string       `json:"lyrics,omitempty"`
	Duration    *float64     `json:"duration,omitempty"`
	VideoStyles []VideoStyle `json:"videoStyles,omitempty"`
}

// PrimaryGenre returns the first requested genre, or fallback when none was given
func (r *PlanRequest) PrimaryGenre(fallback string) string {
	if r == nil || len(r.Genres) == 0 || r.Genres[0] == "" {
		return fallback
	}
	return r.Genres[0]
}

// SuggestionContext projects the plan request onto the suggestion inputs
func (r *PlanRequest) SuggestionContext() SuggestionContext {
	if r == nil {
		return SuggestionContext{}
	}
	return SuggestionContext{
		Prompt:    r.Prompt,
		Genres:    r.Genres,
		Artists:   r.Artists,
		Languages: r.Languages,
		Lyrics:    r.Lyrics,
		Duration:  r.Duration,
	}
}
