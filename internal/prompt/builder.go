package prompt

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/Conceptual-Machines/museforge-api/internal/models"
)

const (
	emptyPrompt = "(empty)"
	none        = "None"
)

// Prompt is a system instruction paired with the user turn sent to the model
type Prompt struct {
	System string
	User   string
}

// Builder renders the user prompts for every remote capability
type Builder struct {
	loader *Loader
}

// NewPromptBuilder creates a new prompt builder
func NewPromptBuilder() *Builder {
	return &Builder{loader: NewPromptLoader()}
}

func orNone(values []string) string {
	if len(values) == 0 {
		return none
	}
	return strings.Join(values, ", ")
}

func textOr(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

func yesNo(value string) string {
	if strings.TrimSpace(value) == "" {
		return "No"
	}
	return "Yes"
}

func durationText(d *float64) string {
	if d == nil {
		return "unspecified"
	}
	return strconv.FormatFloat(*d, 'f', -1, 64)
}

func (b *Builder) suggestion(user string) Prompt {
	return Prompt{System: b.loader.GetSuggestionSystemPrompt(), User: strings.TrimSpace(user)}
}

func (b *Builder) EnhancePrompt(sc models.SuggestionContext) Prompt {
	return b.suggestion(fmt.Sprintf(`
CONTEXT:
- Current Prompt: %q
- Selected Genres: %s
- Artist Influences: %s
- Lyrical Theme: %q

TASK:
Write a vivid, descriptive music prompt for the MuseForge generator.
- If the current prompt is not empty, rewrite and expand it with more detail.
- If it is empty, invent an original prompt from scratch.
Weave in the genres, artists and lyrical theme whenever they are given. Return a JSON object with a single key "prompt".`,
		textOr(sc.Prompt, emptyPrompt), orNone(sc.Genres), orNone(sc.Artists), textOr(sc.Lyrics, none)))
}

func (b *Builder) SuggestGenres(sc models.SuggestionContext) Prompt {
	return b.suggestion(fmt.Sprintf(`
CONTEXT:
- Current Prompt: %q
- Artist Influences: %s
- Lyrical Theme: %q

TASK:
Suggest 3 to 5 genres that fit this context, drawing on both music history and current scenes. Return a JSON object with a single key "genres" holding an array of strings.`,
		textOr(sc.Prompt, emptyPrompt), orNone(sc.Artists), textOr(sc.Lyrics, none)))
}

func (b *Builder) SuggestArtists(sc models.SuggestionContext) Prompt {
	return b.suggestion(fmt.Sprintf(`
CONTEXT:
- Current Prompt: %q
- Selected Genres: %s
- Lyrical Theme: %q

TASK:
Suggest 3 to 5 artist influences. Mix foundational names with producers who are shaping the scene today, and keep every pick tied to the input. Return a JSON object with a single key "artists" holding an array of strings.`,
		textOr(sc.Prompt, emptyPrompt), orNone(sc.Genres), textOr(sc.Lyrics, none)))
}

func (b *Builder) SuggestLanguages(sc models.SuggestionContext) Prompt {
	return b.suggestion(fmt.Sprintf(`
CONTEXT:
- Current Prompt: %q
- Selected Genres: %s
- Artist Inspirations: %s
- Existing Languages: %s
- Lyrics Provided: %s

TASK:
Recommend 1 to 3 vocal languages that suit the genre, the cultural tone and the artist inspirations. Include English when crossover appeal is likely. Return a JSON object with a single key "languages" holding an array of strings.`,
		textOr(sc.Prompt, emptyPrompt), orNone(sc.Genres), orNone(sc.Artists), orNone(sc.Languages), yesNo(sc.Lyrics)))
}

func (b *Builder) EnhanceLyrics(sc models.SuggestionContext) Prompt {
	return b.suggestion(fmt.Sprintf(`
CONTEXT:
- Current Prompt: %q
- Selected Genres: %s
- Artist Influences: %s
- Current Lyrics: %q
- Desired Duration (seconds): %s

TASK:
Expand or rewrite the current lyrics into a complete lyrical theme that fits a song of the desired duration and the mood of the other fields. Mark sections such as Verse 1 and Chorus where possible. Return a JSON object with a single key "lyrics".`,
		textOr(sc.Prompt, emptyPrompt), orNone(sc.Genres), orNone(sc.Artists), textOr(sc.Lyrics, none), durationText(sc.Duration)))
}

// MusicPlan renders the composer prompt for a full plan request
func (b *Builder) MusicPlan(req *models.PlanRequest, creativitySeed float64) (Prompt, error) {
	body, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return Prompt{}, fmt.Errorf("failed to encode plan request: %w", err)
	}
	return Prompt{
		System: b.loader.GetComposerSystemPrompt(creativitySeed),
		User:   "Generate a complete music plan based on the following user request:\n" + string(body),
	}, nil
}

// Audit renders the QA checklist for a generated plan
func (b *Builder) Audit(plan *models.MusicPlan, req *models.PlanRequest) (Prompt, error) {
	reqJSON, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return Prompt{}, fmt.Errorf("failed to encode plan request: %w", err)
	}
	planJSON, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return Prompt{}, fmt.Errorf("failed to encode music plan: %w", err)
	}

	user := fmt.Sprintf(`Original User Request:
%s

Generated Music Plan to Audit:
%s

AUDIT CHECKLIST (a boolean and short feedback for each):
1. lyricsSung: when the request has lyrics, are they placed in vocal sections and does every lyrical section carry a leadMelody?
2. isUnique: do chords, structure and effects vary enough to avoid a generic result, and was the randomSeed used?
3. styleFaithful: do instrumentation, BPM and mood match the requested genres and artists?
4. djStructure: is there a clear intro and outro plus a drop or breakdown?
5. masteringApplied: are reverb, compression and stereo width specified per section?

Set "passed" to true only when every check holds. Summarize in "feedback", written as a root cause analysis when the plan fails.`,
		reqJSON, planJSON)
	return Prompt{System: b.loader.GetAuditorSystemPrompt(), User: user}, nil
}

// CreativeAssets renders the lyric alignment and storyboard prompt
func (b *Builder) CreativeAssets(plan *models.MusicPlan, styles []models.VideoStyle, lyrics string) (Prompt, error) {
	planJSON, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return Prompt{}, fmt.Errorf("failed to encode music plan: %w", err)
	}
	names := make([]string, 0, len(styles))
	for _, s := range styles {
		names = append(names, string(s))
	}

	user := fmt.Sprintf(`Music Plan:
%s

Requested Video Styles: %s
Lyrics Provided: %q

TASK:
1. Lyrics alignment: using the plan's structure, BPM and lyrics, align each lyric line to a time range in seconds that follows the section durations. With no lyrics this must be an empty array.
2. Video storyboards: for each requested style write one concise sentence describing the visual concept. Only include keys for requested styles; with none requested return an empty object.

Return a single JSON object that follows the provided schema.`,
		planJSON, orNone(names), textOr(lyrics, none))
	return Prompt{System: b.loader.GetCreativeDirectorSystemPrompt(), User: user}, nil
}
