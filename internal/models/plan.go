package models

import "encoding/json"

// SectionType tags the role a section plays in the arrangement
type SectionType string

const (
	SectionIntro     SectionType = "intro"
	SectionVerse     SectionType = "verse"
	SectionChorus    SectionType = "chorus"
	SectionBridge    SectionType = "bridge"
	SectionBreakdown SectionType = "breakdown"
	SectionDrop      SectionType = "drop"
	SectionOutro     SectionType = "outro"
)

// SectionTypes lists every valid section type in schema order
var SectionTypes = []SectionType{
	SectionIntro, SectionVerse, SectionChorus, SectionBridge, SectionBreakdown, SectionDrop, SectionOutro,
}

// SynthPattern is the shape of the synth line
type SynthPattern string

const (
	SynthPads         SynthPattern = "pads"
	SynthArpeggioUp   SynthPattern = "arpeggio-up"
	SynthArpeggioDown SynthPattern = "arpeggio-down"
)

// SynthPatterns lists every valid synth pattern
var SynthPatterns = []SynthPattern{SynthPads, SynthArpeggioUp, SynthArpeggioDown}

// Timbre is the tonal color of the synth line
type Timbre string

const (
	TimbreWarm   Timbre = "warm"
	TimbreBright Timbre = "bright"
	TimbreDark   Timbre = "dark"
	TimbreGlassy Timbre = "glassy"
)

// Timbres lists every valid timbre
var Timbres = []Timbre{TimbreWarm, TimbreBright, TimbreDark, TimbreGlassy}

// Ornamentation describes how heavily a melody note is decorated
type Ornamentation string

const (
	OrnamentNone  Ornamentation = "none"
	OrnamentLight Ornamentation = "light"
	OrnamentHeavy Ornamentation = "heavy"
)

// Ornamentations lists every valid ornamentation level
var Ornamentations = []Ornamentation{OrnamentNone, OrnamentLight, OrnamentHeavy}

// MusicPlan is the structural description of a song
type MusicPlan struct {
	Title            string    `json:"title"`
	Genre            string    `json:"genre"`
	BPM              float64   `json:"bpm"`
	Key              string    `json:"key"`
	OverallStructure string    `json:"overallStructure"`
	VocalStyle       string    `json:"vocalStyle"`
	Lyrics           string    `json:"lyrics"`
	RandomSeed       float64   `json:"randomSeed"`
	Sections         []Section `json:"sections"`
	Stems            Stems     `json:"stems"`
	CuePoints        CuePoints `json:"cuePoints"`
}

// Section is one arrangement block of a music plan
type Section struct {
	Name             string       `json:"name"`
	SectionType      SectionType  `json:"sectionType"`
	DurationBars     float64      `json:"durationBars"`
	ChordProgression []string     `json:"chordProgression"`
	DrumPattern      DrumPattern  `json:"drumPattern"`
	SynthLine        SynthLine    `json:"synthLine"`
	LeadMelody       []MelodyNote `json:"leadMelody"`
	Effects          Effects      `json:"effects"`
	Lyrics           string       `json:"lyrics"`
}

// UnmarshalJSON applies the section defaults: an absent or null melody becomes an
// empty sequence and absent lyrics become the empty string.
func (s *Section) UnmarshalJSON(data []byte) error {
	type rawSection Section
	var raw rawSection
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Section(raw)
	if s.LeadMelody == nil {
		s.LeadMelody = []MelodyNote{}
	}
	if s.ChordProgression == nil {
		s.ChordProgression = []string{}
	}
	return nil
}

// HasLyrics reports whether the section carries sung lyrics
func (s *Section) HasLyrics() bool {
	return s.Lyrics != ""
}

// DrumPattern holds per-voice hit offsets in beat fractions within the bar.
// A nil voice means the voice is silent in the section.
type DrumPattern struct {
	Kick  []float64 `json:"kick"`
	Snare []float64 `json:"snare"`
	HiHat []float64 `json:"hihat"`
}

// SynthLine pairs a pattern shape with a timbre
type SynthLine struct {
	Pattern SynthPattern `json:"pattern"`
	Timbre  Timbre       `json:"timbre"`
}

// MelodyNote is one note of the lead melody
type MelodyNote struct {
	Note          string        `json:"note"`
	Duration      float64       `json:"duration"`
	Ornamentation Ornamentation `json:"ornamentation"`
}

// Effects is the per-section mix treatment
type Effects struct {
	Reverb               float64 `json:"reverb"`               // 0..1
	CompressionThreshold float64 `json:"compressionThreshold"` // dBFS, -60..0
	StereoWidth          float64 `json:"stereoWidth"`          // 0..1
}

// Stems records which audio layers exist
type Stems struct {
	Vocals      bool `json:"vocals"`
	Drums       bool `json:"drums"`
	Bass        bool `json:"bass"`
	Instruments bool `json:"instruments"`
}

// CuePoints are DJ cue offsets, measured in bars from the start of the song
type CuePoints struct {
	IntroEnd   float64 `json:"introEnd"`
	DropStart  float64 `json:"dropStart"`
	OutroStart float64 `json:"outroStart"`
}

// TotalBars sums the duration of all sections
func (p *MusicPlan) TotalBars() float64 {
	total := 0.0
	for _, section := range p.Sections {
		total += section.DurationBars
	}
	return total
}
