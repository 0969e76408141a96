package llm

import "github.com/Conceptual-Machines/museforge-api/internal/models"

const (
	compressionThresholdMin = -60
	compressionThresholdMax = 0
)

func stringSchema(description string) map[string]any {
	s := map[string]any{"type": "string"}
	if description != "" {
		s["description"] = description
	}
	return s
}

func stringArraySchema() map[string]any {
	return map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
}

func numberArraySchema(nullable bool) map[string]any {
	s := map[string]any{"type": "array", "items": map[string]any{"type": "number"}}
	if nullable {
		s["nullable"] = true
	}
	return s
}

func enumSchema[T ~string](values []T) map[string]any {
	enum := make([]string, len(values))
	for i, v := range values {
		enum[i] = string(v)
	}
	return map[string]any{"type": "string", "enum": enum}
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// GetPromptSchema returns the schema of {"prompt": string}
func GetPromptSchema() map[string]any {
	return objectSchema(map[string]any{"prompt": stringSchema("")}, "prompt")
}

// GetGenresSchema returns the schema of {"genres": string[]}
func GetGenresSchema() map[string]any {
	return objectSchema(map[string]any{"genres": stringArraySchema()}, "genres")
}

// GetArtistsSchema returns the schema of {"artists": string[]}
func GetArtistsSchema() map[string]any {
	return objectSchema(map[string]any{"artists": stringArraySchema()}, "artists")
}

// GetLanguagesSchema returns the schema of {"languages": string[]}
func GetLanguagesSchema() map[string]any {
	return objectSchema(map[string]any{"languages": stringArraySchema()}, "languages")
}

// GetLyricsSchema returns the schema of {"lyrics": string}
func GetLyricsSchema() map[string]any {
	return objectSchema(map[string]any{"lyrics": stringSchema("")}, "lyrics")
}

// GetMusicPlanSchema returns the JSON schema for a full music plan.
// Field names match models.MusicPlan exactly.
func GetMusicPlanSchema() map[string]any {
	section := objectSchema(map[string]any{
		"name":             stringSchema(""),
		"sectionType":      enumSchema(models.SectionTypes),
		"durationBars":     map[string]any{"type": "number"},
		"chordProgression": stringArraySchema(),
		"drumPattern": objectSchema(map[string]any{
			"kick":  numberArraySchema(true),
			"snare": numberArraySchema(true),
			"hihat": numberArraySchema(true),
		}, "kick", "snare", "hihat"),
		"synthLine": objectSchema(map[string]any{
			"pattern": enumSchema(models.SynthPatterns),
			"timbre":  enumSchema(models.Timbres),
		}, "pattern", "timbre"),
		"leadMelody": map[string]any{
			"type": "array",
			"items": objectSchema(map[string]any{
				"note":          stringSchema(""),
				"duration":      map[string]any{"type": "number"},
				"ornamentation": enumSchema(models.Ornamentations),
			}, "note", "duration", "ornamentation"),
		},
		"effects": objectSchema(map[string]any{
			"reverb":               map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			"compressionThreshold": map[string]any{"type": "number", "minimum": compressionThresholdMin, "maximum": compressionThresholdMax},
			"stereoWidth":          map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		}, "reverb", "compressionThreshold", "stereoWidth"),
		"lyrics": map[string]any{
			"type":        "string",
			"description": "The lyrics for this specific section. Leave empty for instrumental sections.",
			"nullable":    true,
		},
	}, "name", "sectionType", "durationBars", "chordProgression", "drumPattern", "synthLine", "leadMelody", "effects")

	return objectSchema(map[string]any{
		"title":            stringSchema("A creative title for the song."),
		"genre":            stringSchema("The primary genre of the song, derived from user input."),
		"bpm":              map[string]any{"type": "number", "description": "The tempo in beats per minute."},
		"key":              stringSchema("The musical key, e.g. 'C Minor' or 'F# Major'."),
		"overallStructure": stringSchema("A brief description of the arrangement and energy flow."),
		"vocalStyle":       stringSchema("A description of the synthesized vocal style."),
		"lyrics":           stringSchema("The full lyrics to be sung in the song."),
		"randomSeed":       map[string]any{"type": "number", "description": "The creativity seed this plan was generated with."},
		"sections":         map[string]any{"type": "array", "items": section},
		"stems": objectSchema(map[string]any{
			"vocals":      map[string]any{"type": "boolean"},
			"drums":       map[string]any{"type": "boolean"},
			"bass":        map[string]any{"type": "boolean"},
			"instruments": map[string]any{"type": "boolean"},
		}, "vocals", "drums", "bass", "instruments"),
		"cuePoints": objectSchema(map[string]any{
			"introEnd":   map[string]any{"type": "number", "description": "Bar at which the intro ends."},
			"dropStart":  map[string]any{"type": "number", "description": "Bar at which the drop starts."},
			"outroStart": map[string]any{"type": "number", "description": "Bar at which the outro starts."},
		}, "introEnd", "dropStart", "outroStart"),
	}, "title", "genre", "bpm", "key", "overallStructure", "vocalStyle", "lyrics", "randomSeed", "sections", "stems", "cuePoints")
}

// GetAuditSchema returns the JSON schema for a plan audit report
func GetAuditSchema() map[string]any {
	return objectSchema(map[string]any{
		"lyricsSung":       map[string]any{"type": "boolean"},
		"isUnique":         map[string]any{"type": "boolean"},
		"styleFaithful":    map[string]any{"type": "boolean"},
		"djStructure":      map[string]any{"type": "boolean"},
		"masteringApplied": map[string]any{"type": "boolean"},
		"passed":           map[string]any{"type": "boolean"},
		"feedback":         stringSchema(""),
	}, "lyricsSung", "isUnique", "styleFaithful", "djStructure", "masteringApplied", "passed", "feedback")
}

// GetCreativeAssetsSchema returns the JSON schema for lyric alignment and storyboards
func GetCreativeAssetsSchema() map[string]any {
	storyboard := map[string]any{}
	for _, style := range []models.VideoStyle{models.VideoLyrical, models.VideoOfficial, models.VideoAbstract} {
		storyboard[string(style)] = map[string]any{
			"type":        "string",
			"description": "Storyboard for the " + string(style) + " video.",
			"nullable":    true,
		}
	}

	return objectSchema(map[string]any{
		"lyricsAlignment": map[string]any{
			"type":        "array",
			"description": "Time-coded alignment of lyrics. Empty when no lyrics were provided.",
			"items": objectSchema(map[string]any{
				"time": stringSchema("Time range for the line, e.g. '0s-10s'."),
				"line": stringSchema("The lyric line."),
			}, "time", "line"),
		},
		"videoStoryboard": map[string]any{
			"type":        "object",
			"description": "One sentence per requested video style. Omit styles that were not requested.",
			"properties":  storyboard,
		},
	}, "lyricsAlignment", "videoStoryboard")
}

// Output schemas by name, ready to attach to a GenerationRequest
var (
	PromptSchema         = &OutputSchema{Name: "enhanced_prompt", Schema: GetPromptSchema()}
	GenresSchema         = &OutputSchema{Name: "genre_suggestions", Schema: GetGenresSchema()}
	ArtistsSchema        = &OutputSchema{Name: "artist_suggestions", Schema: GetArtistsSchema()}
	LanguagesSchema      = &OutputSchema{Name: "language_suggestions", Schema: GetLanguagesSchema()}
	LyricsSchema         = &OutputSchema{Name: "enhanced_lyrics", Schema: GetLyricsSchema()}
	MusicPlanSchema      = &OutputSchema{Name: "music_plan", Description: "A complete, schema-valid music plan", Schema: GetMusicPlanSchema()}
	AuditSchema          = &OutputSchema{Name: "plan_audit", Schema: GetAuditSchema()}
	CreativeAssetsSchema = &OutputSchema{Name: "creative_assets", Schema: GetCreativeAssetsSchema()}
)
