package models

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Conceptual-Machines/museforge-api/internal/theory"
)

// ErrInvalidPlan is wrapped by every plan validation failure
var ErrInvalidPlan = errors.New("invalid music plan")

const (
	compressionThresholdMin = -60.0
	compressionThresholdMax = 0.0
)

// Validate checks that the plan is schema-valid and internally consistent:
// enum fields hold known values, effects stay in range, every lyric-bearing
// section has a melody, and the cue points are ordered within the song.
// Musical notation is checked separately by NotationIssues.
func (p *MusicPlan) Validate() error {
	var errs []error

	if p.Title == "" {
		errs = append(errs, errors.New("title is empty"))
	}
	if p.BPM <= 0 {
		errs = append(errs, fmt.Errorf("bpm %v must be positive", p.BPM))
	}
	if len(p.Sections) == 0 {
		errs = append(errs, errors.New("plan has no sections"))
	}

	for i := range p.Sections {
		errs = append(errs, validateSection(i, &p.Sections[i])...)
	}

	total := p.TotalBars()
	cues := p.CuePoints
	if cues.IntroEnd < 0 || cues.IntroEnd > cues.DropStart || cues.DropStart > cues.OutroStart {
		errs = append(errs, fmt.Errorf("cue points out of order: introEnd=%v dropStart=%v outroStart=%v",
			cues.IntroEnd, cues.DropStart, cues.OutroStart))
	}
	if cues.OutroStart > total {
		errs = append(errs, fmt.Errorf("outroStart %v exceeds total length of %v bars", cues.OutroStart, total))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidPlan, errors.Join(errs...))
}

func validateSection(i int, s *Section) []error {
	var errs []error
	prefix := fmt.Sprintf("section %d (%s)", i, s.Name)

	if !slices.Contains(SectionTypes, s.SectionType) {
		errs = append(errs, fmt.Errorf("%s: unknown sectionType %q", prefix, s.SectionType))
	}
	if s.DurationBars <= 0 {
		errs = append(errs, fmt.Errorf("%s: durationBars %v must be positive", prefix, s.DurationBars))
	}
	if !slices.Contains(SynthPatterns, s.SynthLine.Pattern) {
		errs = append(errs, fmt.Errorf("%s: unknown synth pattern %q", prefix, s.SynthLine.Pattern))
	}
	if !slices.Contains(Timbres, s.SynthLine.Timbre) {
		errs = append(errs, fmt.Errorf("%s: unknown timbre %q", prefix, s.SynthLine.Timbre))
	}
	for j, note := range s.LeadMelody {
		if note.Note == "" || note.Duration <= 0 {
			errs = append(errs, fmt.Errorf("%s: melody note %d is incomplete", prefix, j))
		}
		if !slices.Contains(Ornamentations, note.Ornamentation) {
			errs = append(errs, fmt.Errorf("%s: melody note %d has unknown ornamentation %q", prefix, j, note.Ornamentation))
		}
	}
	if s.HasLyrics() && len(s.LeadMelody) == 0 {
		errs = append(errs, fmt.Errorf("%s: has lyrics but no lead melody", prefix))
	}

	fx := s.Effects
	if fx.Reverb < 0 || fx.Reverb > 1 {
		errs = append(errs, fmt.Errorf("%s: reverb %v outside [0,1]", prefix, fx.Reverb))
	}
	if fx.StereoWidth < 0 || fx.StereoWidth > 1 {
		errs = append(errs, fmt.Errorf("%s: stereoWidth %v outside [0,1]", prefix, fx.StereoWidth))
	}
	if fx.CompressionThreshold < compressionThresholdMin || fx.CompressionThreshold > compressionThresholdMax {
		errs = append(errs, fmt.Errorf("%s: compressionThreshold %v outside [%v,%v]",
			prefix, fx.CompressionThreshold, compressionThresholdMin, compressionThresholdMax))
	}
	return errs
}

// NotationIssues lists the key, chord symbols and melody notes that do not parse.
// Unfamiliar notation does not make a plan unusable, so these are advisory.
func (p *MusicPlan) NotationIssues() []error {
	var issues []error
	if _, err := theory.ParseKey(p.Key); err != nil {
		issues = append(issues, err)
	}
	for i := range p.Sections {
		s := &p.Sections[i]
		for _, symbol := range s.ChordProgression {
			if _, err := theory.ParseChord(symbol); err != nil {
				issues = append(issues, fmt.Errorf("section %d (%s): %w", i, s.Name, err))
			}
		}
		for j, note := range s.LeadMelody {
			if note.Note == "" || theory.IsRest(note.Note) {
				continue
			}
			if _, err := theory.NoteNumber(note.Note); err != nil {
				issues = append(issues, fmt.Errorf("section %d (%s): melody note %d: %w", i, s.Name, j, err))
			}
		}
	}
	return issues
}
