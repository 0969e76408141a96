package models

import "slices"

// PromptResponse is returned by prompt enhancement
type PromptResponse struct {
	Prompt string `json:"prompt"`
}

// GenresResponse is returned by genre suggestion
type GenresResponse struct {
	Genres []string `json:"genres"`
}

// ArtistsResponse is returned by artist suggestion
type ArtistsResponse struct {
	Artists []string `json:"artists"`
}

// LanguagesResponse is returned by language suggestion
type LanguagesResponse struct {
	Languages []string `json:"languages"`
}

// LyricsResponse is returned by lyrics enhancement
type LyricsResponse struct {
	Lyrics string `json:"lyrics"`
}

// AuditReport is the quality audit of a generated plan
type AuditReport struct {
	LyricsSung       bool   `json:"lyricsSung"`
	IsUnique         bool   `json:"isUnique"`
	StyleFaithful    bool   `json:"styleFaithful"`
	DJStructure      bool   `json:"djStructure"`
	MasteringApplied bool   `json:"masteringApplied"`
	Passed           bool   `json:"passed"`
	Feedback         string `json:"feedback"`
}

// VideoStyle names a requested music video treatment
type VideoStyle string

const (
	VideoLyrical  VideoStyle = "lyrical"
	VideoOfficial VideoStyle = "official"
	VideoAbstract VideoStyle = "abstract"
)

// LyricLine aligns one lyric line to a time range such as "0s-10s"
type LyricLine struct {
	Time string `json:"time"`
	Line string `json:"line"`
}

// CreativeAssets bundles the lyric alignment and per-style storyboards
type CreativeAssets struct {
	LyricsAlignment []LyricLine           `json:"lyricsAlignment"`
	VideoStoryboard map[VideoStyle]string `json:"videoStoryboard"`
}

// SuggestAllResponse merges the five suggestion results for one context
type SuggestAllResponse struct {
	Prompt    string   `json:"prompt"`
	Genres    []string `json:"genres"`
	Artists   []string `json:"artists"`
	Languages []string `json:"languages"`
	Lyrics    string   `json:"lyrics"`
}

// VideoStyles lists every supported video style
var VideoStyles = []VideoStyle{VideoLyrical, VideoOfficial, VideoAbstract}

// Valid reports whether v is a supported video style
func (v VideoStyle) Valid() bool {
	return slices.Contains(VideoStyles, v)
}
