package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/museforge-api/internal/models"
)

// jsonKeys returns the top-level keys v marshals to
func jsonKeys(t *testing.T, v any) []string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	return keys
}

func propertyKeys(schema map[string]any) []string {
	properties := schema["properties"].(map[string]any)
	keys := make([]string, 0, len(properties))
	for k := range properties {
		keys = append(keys, k)
	}
	return keys
}

func TestSchemas_MatchModelFieldNames(t *testing.T) {
	section := models.Section{LeadMelody: []models.MelodyNote{}}

	tests := []struct {
		name   string
		schema map[string]any
		value  any
	}{
		{"prompt", GetPromptSchema(), models.PromptResponse{}},
		{"genres", GetGenresSchema(), models.GenresResponse{}},
		{"artists", GetArtistsSchema(), models.ArtistsResponse{}},
		{"languages", GetLanguagesSchema(), models.LanguagesResponse{}},
		{"lyrics", GetLyricsSchema(), models.LyricsResponse{}},
		{"music plan", GetMusicPlanSchema(), models.MusicPlan{}},
		{"section", GetMusicPlanSchema()["properties"].(map[string]any)["sections"].(map[string]any)["items"].(map[string]any), section},
		{"audit", GetAuditSchema(), models.AuditReport{}},
		{"creative assets", GetCreativeAssetsSchema(), models.CreativeAssets{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, jsonKeys(t, tt.value), propertyKeys(tt.schema))
		})
	}
}

func TestOutputSchemas_Named(t *testing.T) {
	for _, schema := range []*OutputSchema{
		PromptSchema, GenresSchema, ArtistsSchema, LanguagesSchema, LyricsSchema,
		MusicPlanSchema, AuditSchema, CreativeAssetsSchema,
	} {
		assert.NotEmpty(t, schema.Name)
		assert.Equal(t, "object", schema.Schema["type"])
	}
}
