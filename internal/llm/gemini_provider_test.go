package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiProvider_Name(t *testing.T) {
	// We can't create a real client without an API key
	provider := &GeminiProvider{client: nil}
	assert.Equal(t, "gemini", provider.Name())
}

func TestGeminiProvider_BuildContents(t *testing.T) {
	provider := &GeminiProvider{client: nil}
	contents := provider.buildGeminiContents("suggest genres")

	require.Len(t, contents, 1)
	assert.Equal(t, "user", contents[0].Role)
	require.Len(t, contents[0].Parts, 1)
	assert.Equal(t, "suggest genres", contents[0].Parts[0].Text)
}

func TestGeminiProvider_BuildGenerateConfig(t *testing.T) {
	provider := &GeminiProvider{client: nil}
	temperature := 0.9

	config := provider.buildGenerateConfig(&GenerationRequest{
		SystemPrompt: "you are a musicologist",
		Temperature:  &temperature,
		OutputSchema: GenresSchema,
	})

	require.NotNil(t, config.SystemInstruction)
	assert.Equal(t, "you are a musicologist", config.SystemInstruction.Parts[0].Text)
	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.9, *config.Temperature, 1e-6)
	assert.Equal(t, "application/json", config.ResponseMIMEType)
	require.NotNil(t, config.ResponseSchema)
	assert.Equal(t, genai.TypeArray, config.ResponseSchema.Properties["genres"].Type)

	bare := provider.buildGenerateConfig(&GenerationRequest{})
	assert.Nil(t, bare.SystemInstruction)
	assert.Nil(t, bare.Temperature)
	assert.Nil(t, bare.ResponseSchema)
}

func TestConvertSchemaToGemini_MusicPlan(t *testing.T) {
	schema := convertSchemaToGemini(GetMusicPlanSchema())
	require.NotNil(t, schema)

	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Contains(t, schema.Required, "cuePoints")
	assert.Equal(t, genai.TypeNumber, schema.Properties["bpm"].Type)

	section := schema.Properties["sections"].Items
	require.NotNil(t, section)
	assert.Equal(t, []string{"intro", "verse", "chorus", "bridge", "breakdown", "drop", "outro"},
		section.Properties["sectionType"].Enum)

	kick := section.Properties["drumPattern"].Properties["kick"]
	require.NotNil(t, kick.Nullable)
	assert.True(t, *kick.Nullable)
	assert.Equal(t, genai.TypeNumber, kick.Items.Type)

	lyrics := section.Properties["lyrics"]
	assert.Equal(t, genai.TypeString, lyrics.Type)
	assert.NotEmpty(t, lyrics.Description)
	assert.NotContains(t, section.Required, "lyrics")
}

func TestConvertSchemaToGemini_DecodedJSONForms(t *testing.T) {
	schema := convertSchemaToGemini(map[string]any{
		"type":     "object",
		"required": []any{"mood"},
		"properties": map[string]any{
			"mood":  map[string]any{"type": "string", "enum": []any{"dark", "bright"}},
			"count": map[string]any{"type": "integer"},
			"odd":   map[string]any{"type": "tuple"},
		},
	})

	assert.Equal(t, []string{"mood"}, schema.Required)
	assert.Equal(t, []string{"dark", "bright"}, schema.Properties["mood"].Enum)
	assert.Equal(t, genai.TypeInteger, schema.Properties["count"].Type)
	assert.Equal(t, genai.TypeUnspecified, schema.Properties["odd"].Type)
	assert.Nil(t, convertSchemaToGemini(nil))
}

func TestNewGeminiProvider_InvalidKey(t *testing.T) {
	ctx := context.Background()
	provider, err := NewGeminiProvider(ctx, "invalid-key")

	// Client creation does not validate the key against the API
	if err != nil {
		assert.Error(t, err)
	} else {
		assert.NotNil(t, provider)
		assert.Equal(t, "gemini", provider.Name())
	}
}
