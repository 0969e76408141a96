package musegen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/museforge-api/internal/models"
)

func TestMusicPlan_FixtureIsValid(t *testing.T) {
	s := newTestSynthesizer()

	tests := []struct {
		name string
		req  *models.PlanRequest
	}{
		{"nil request", nil},
		{"empty request", &models.PlanRequest{}},
		{"with lyrics", &models.PlanRequest{Genres: []string{"afrobeats"}, Lyrics: "sun on the water"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := s.MusicPlan(tt.req, 0.618)
			require.NoError(t, plan.Validate())

			for _, section := range plan.Sections {
				if section.Lyrics != "" {
					assert.NotEmpty(t, section.LeadMelody, section.Name)
				}
			}
			assert.LessOrEqual(t, plan.CuePoints.OutroStart, plan.TotalBars())
			assert.Equal(t, 48.0, plan.TotalBars())
			assert.Len(t, plan.Sections, 4)
			assert.Equal(t, 0.618, plan.RandomSeed)
		})
	}
}

func TestMusicPlan_Parameterization(t *testing.T) {
	s := newTestSynthesizer()

	plain := s.MusicPlan(&models.PlanRequest{}, 7)
	assert.Equal(t, "electronic", plain.Genre)
	assert.Equal(t, "Instrumental focus with atmospheric chants.", plain.Lyrics)
	assert.Equal(t, "Electronic dreams in the night sky, dancing with the stars above", plain.Sections[1].Lyrics)
	assert.Empty(t, plain.Sections[0].Lyrics)
	assert.Empty(t, plain.Sections[3].Lyrics)

	sung := s.MusicPlan(&models.PlanRequest{Genres: []string{"afrobeats", "house"}, Lyrics: "sun on the water"}, 7)
	assert.Equal(t, "afrobeats", sung.Genre)
	assert.Equal(t, "sun on the water", sung.Lyrics)
	assert.Equal(t, "sun on the water", sung.Sections[1].Lyrics)
	assert.Equal(t, "sun on the water", sung.Sections[2].Lyrics)
}

func TestMusicPlan_RoundTrip(t *testing.T) {
	plan := newTestSynthesizer().MusicPlan(&models.PlanRequest{Lyrics: "la"}, 123456.789)

	data, err := json.Marshal(plan)
	require.NoError(t, err)

	var decoded models.MusicPlan
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, plan, decoded)
}

func TestAudit(t *testing.T) {
	report := newTestSynthesizer().Audit(nil, nil)
	assert.True(t, report.Passed)
	assert.True(t, report.LyricsSung && report.IsUnique && report.StyleFaithful && report.DJStructure && report.MasteringApplied)
	assert.Equal(t, "Offline mock audit passed.", report.Feedback)
}

func TestCreativeAssets(t *testing.T) {
	s := newTestSynthesizer()

	withLyrics := s.CreativeAssets(nil, []models.VideoStyle{models.VideoLyrical, models.VideoAbstract}, "hold the light")
	assert.Equal(t, []models.LyricLine{{Time: "0s-20s", Line: "hold the light"}}, withLyrics.LyricsAlignment)
	assert.Equal(t, map[models.VideoStyle]string{
		models.VideoLyrical:  "Placeholder storyboard for lyrical.",
		models.VideoAbstract: "Placeholder storyboard for abstract.",
	}, withLyrics.VideoStoryboard)

	empty := s.CreativeAssets(nil, nil, "")
	assert.NotNil(t, empty.LyricsAlignment)
	assert.Empty(t, empty.LyricsAlignment)
	assert.Empty(t, empty.VideoStoryboard)

	data, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.JSONEq(t, `{"lyricsAlignment":[],"videoStoryboard":{}}`, string(data))
}
