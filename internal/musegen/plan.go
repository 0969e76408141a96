package musegen

import (
	"fmt"

	"github.com/Conceptual-Machines/museforge-api/internal/models"
)

const (
	fixtureTitle       = "Mock Plan"
	fixtureGenre       = "electronic"
	fixtureBPM         = 122
	fixtureKey         = "C Minor"
	fixtureStructure   = "Intro - Verse - Chorus - Breakdown - Drop - Outro"
	fixtureVocalStyle  = "Ethereal female lead with vocoder harmonies"
	fixturePlanLyrics  = "Instrumental focus with atmospheric chants."
	fixtureVerseLyrics = "Electronic dreams in the night sky, dancing with the stars above"
	fixtureHookLyrics  = "We are the future, we are the light, shining bright in the digital age"

	// AuditPassedFeedback is the feedback of the offline audit
	AuditPassedFeedback = "Offline mock audit passed."
)

// MusicPlan returns the fixed example plan, parameterized only by the request's primary
// genre and lyrics and the creativity seed. It is always valid.
func (s *Synthesizer) MusicPlan(req *models.PlanRequest, creativitySeed float64) models.MusicPlan {
	lyrics := ""
	if req != nil {
		lyrics = req.Lyrics
	}
	orDefault := func(fallback string) string {
		if lyrics != "" {
			return lyrics
		}
		return fallback
	}

	sparse := func() models.DrumPattern {
		return models.DrumPattern{Kick: []float64{1}, Snare: []float64{0}, HiHat: []float64{0.5, 1, 1.5}}
	}
	driving := func() models.DrumPattern {
		return models.DrumPattern{Kick: []float64{1, 1.5}, Snare: []float64{2}, HiHat: []float64{0.5, 1, 1.5, 2}}
	}
	pads := models.SynthLine{Pattern: models.SynthPads, Timbre: models.TimbreWarm}
	arp := models.SynthLine{Pattern: models.SynthArpeggioUp, Timbre: models.TimbreGlassy}
	vocalFX := models.Effects{Reverb: 0.5, CompressionThreshold: -10, StereoWidth: 0.85}

	sections := []models.Section{
		{
			Name:             "Intro",
			SectionType:      models.SectionIntro,
			DurationBars:     8,
			ChordProgression: []string{"Cm7", "Abmaj7"},
			DrumPattern:      sparse(),
			SynthLine:        pads,
			LeadMelody:       []models.MelodyNote{},
			Effects:          models.Effects{Reverb: 0.4, CompressionThreshold: -12, StereoWidth: 0.6},
		},
		{
			Name:             "Verse",
			SectionType:      models.SectionVerse,
			DurationBars:     16,
			ChordProgression: []string{"Cm7", "Abmaj7", "Fm7", "Bb7"},
			DrumPattern:      driving(),
			SynthLine:        arp,
			LeadMelody: []models.MelodyNote{
				{Note: "C5", Duration: 0.5, Ornamentation: models.OrnamentLight},
				{Note: "D5", Duration: 0.5, Ornamentation: models.OrnamentLight},
				{Note: "E5", Duration: 0.5, Ornamentation: models.OrnamentLight},
				{Note: "F5", Duration: 0.5, Ornamentation: models.OrnamentLight},
			},
			Effects: vocalFX,
			Lyrics:  orDefault(fixtureVerseLyrics),
		},
		{
			Name:             "Chorus",
			SectionType:      models.SectionChorus,
			DurationBars:     16,
			ChordProgression: []string{"Abmaj7", "Fm7", "Cm7", "Bb7"},
			DrumPattern:      driving(),
			SynthLine:        arp,
			LeadMelody: []models.MelodyNote{
				{Note: "C5", Duration: 0.5, Ornamentation: models.OrnamentLight},
				{Note: "G5", Duration: 0.5, Ornamentation: models.OrnamentHeavy},
				{Note: "F5", Duration: 0.5, Ornamentation: models.OrnamentLight},
				{Note: "E5", Duration: 0.5, Ornamentation: models.OrnamentLight},
			},
			Effects: vocalFX,
			Lyrics:  orDefault(fixtureHookLyrics),
		},
		{
			Name:             "Outro",
			SectionType:      models.SectionOutro,
			DurationBars:     8,
			ChordProgression: []string{"Cm7", "Abmaj7"},
			DrumPattern:      sparse(),
			SynthLine:        pads,
			LeadMelody:       []models.MelodyNote{{Note: "C5", Duration: 2, Ornamentation: models.OrnamentLight}},
			Effects:          models.Effects{Reverb: 0.6, CompressionThreshold: -8, StereoWidth: 0.9},
		},
	}

	return models.MusicPlan{
		Title:            fixtureTitle,
		Genre:            req.PrimaryGenre(fixtureGenre),
		BPM:              fixtureBPM,
		Key:              fixtureKey,
		OverallStructure: fixtureStructure,
		VocalStyle:       fixtureVocalStyle,
		Lyrics:           orDefault(fixturePlanLyrics),
		RandomSeed:       creativitySeed,
		Sections:         sections,
		Stems:            models.Stems{Vocals: true, Drums: true, Bass: true, Instruments: true},
		// intro ends after 8 bars, the first hook lands at 24, the outro starts at 40 of 48
		CuePoints: models.CuePoints{IntroEnd: 8, DropStart: 24, OutroStart: 40},
	}
}

// Audit returns a passing report for any plan
func (s *Synthesizer) Audit(_ *models.MusicPlan, _ *models.PlanRequest) models.AuditReport {
	return models.AuditReport{
		LyricsSung:       true,
		IsUnique:         true,
		StyleFaithful:    true,
		DJStructure:      true,
		MasteringApplied: true,
		Passed:           true,
		Feedback:         AuditPassedFeedback,
	}
}

// CreativeAssets aligns the whole lyric to the first twenty seconds and writes a
// placeholder storyboard for every requested style
func (s *Synthesizer) CreativeAssets(_ *models.MusicPlan, styles []models.VideoStyle, lyrics string) models.CreativeAssets {
	alignment := []models.LyricLine{}
	if lyrics != "" {
		alignment = append(alignment, models.LyricLine{Time: "0s-20s", Line: lyrics})
	}

	storyboard := make(map[models.VideoStyle]string, len(styles))
	for _, style := range styles {
		storyboard[style] = fmt.Sprintf("Placeholder storyboard for %s.", style)
	}

	return models.CreativeAssets{LyricsAlignment: alignment, VideoStoryboard: storyboard}
}
