// Package theory parses the note, chord and key notation used in music plans.
package theory

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrInvalidNote  = errors.New("invalid note")
	ErrInvalidChord = errors.New("invalid chord symbol")
	ErrInvalidKey   = errors.New("invalid key")
)

// notation rewrites Unicode accidentals and symbol shorthands into the ASCII
// spelling the parsers read. Longer patterns come first.
var notation = strings.NewReplacer(
	"♯", "#",
	"♭", "b",
	"♮", "",
	"−", "-",
	"–", "-",
	"ø7", "m7b5",
	"Ø7", "m7b5",
	"ø", "m7b5",
	"Ø", "m7b5",
	"°7", "dim7",
	"°", "dim",
	"Δ7", "maj7",
	"Δ", "maj7",
)

// semitone offset of each natural note from C
var naturals = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// parseRoot reads a note letter and up to two accidentals from the start of s.
// It returns the pitch class (0-11) and whatever follows.
func parseRoot(s string) (int, string, bool) {
	if s == "" {
		return 0, s, false
	}
	pc, ok := naturals[upper(s[0])]
	if !ok {
		return 0, s, false
	}
	i := 1
	for ; i < 3 && i < len(s) && (s[i] == '#' || s[i] == 'b'); i++ {
		if s[i] == '#' {
			pc++
		} else {
			pc--
		}
	}
	return (pc + 12) % 12, s[i:], true
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// IsRest reports whether a melody entry is a rest rather than a pitch
func IsRest(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rest", "r":
		return true
	}
	return false
}

// NoteNumber converts scientific pitch notation ("C5", "F#3", "E♭5", "Bb-1") to
// a MIDI note number. C4 is 60.
func NoteNumber(name string) (int, error) {
	name = notation.Replace(strings.TrimSpace(name))
	pc, rest, ok := parseRoot(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, name)
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %q has no octave", ErrInvalidNote, name)
	}
	midi := (octave+1)*12 + pc
	if midi < 0 || midi > 127 {
		return 0, fmt.Errorf("%w: %q is outside the MIDI range", ErrInvalidNote, name)
	}
	return midi, nil
}

// Quality is the triad a chord is built on
type Quality string

const (
	Major      Quality = "major"
	Minor      Quality = "minor"
	Diminished Quality = "diminished"
	Augmented  Quality = "augmented"
	Sus2       Quality = "sus2"
	Sus4       Quality = "sus4"
	Power      Quality = "power"
)

var triads = map[Quality][]int{
	Major:      {0, 4, 7},
	Minor:      {0, 3, 7},
	Diminished: {0, 3, 6},
	Augmented:  {0, 4, 8},
	Sus2:       {0, 2, 7},
	Sus4:       {0, 5, 7},
	Power:      {0, 7},
}

// Chord is a parsed chord symbol. Intervals are semitones above the root,
// ascending. Bass is -1 unless the symbol names a slash bass.
type Chord struct {
	Symbol    string
	Root      int
	Quality   Quality
	Intervals []int
	Bass      int
}

// ParseChord parses symbols such as "Cm7", "Abmaj7", "F#m7b5", "Bø7", "Gsus4",
// "Bb7#9", "Dadd9", "Am(maj7)" and "C/E".
func ParseChord(symbol string) (Chord, error) {
	s := notation.Replace(strings.TrimSpace(symbol))
	fail := func(reason string) (Chord, error) {
		return Chord{}, fmt.Errorf("%w: %q %s", ErrInvalidChord, symbol, reason)
	}

	root, rest, ok := parseRoot(s)
	if !ok {
		return fail("has no root note")
	}
	chord := Chord{Symbol: symbol, Root: root, Quality: Major, Bass: -1}

	if idx := strings.LastIndex(rest, "/"); idx >= 0 {
		if bass, tail, ok := parseRoot(rest[idx+1:]); ok && tail == "" {
			chord.Bass = bass
			rest = rest[:idx]
		}
	}

	majorSeventh := false
	switch {
	case strings.HasPrefix(rest, "maj"), strings.HasPrefix(rest, "Maj"):
		majorSeventh, rest = true, rest[3:]
	case strings.HasPrefix(rest, "M"):
		majorSeventh, rest = true, rest[1:]
	case strings.HasPrefix(rest, "min"):
		chord.Quality, rest = Minor, rest[3:]
	case strings.HasPrefix(rest, "m"), strings.HasPrefix(rest, "-"):
		chord.Quality, rest = Minor, rest[1:]
		switch {
		case strings.HasPrefix(rest, "aj"):
			majorSeventh, rest = true, rest[2:]
		case strings.HasPrefix(rest, "M"):
			majorSeventh, rest = true, rest[1:]
		}
	case strings.HasPrefix(rest, "dim"):
		chord.Quality, rest = Diminished, rest[3:]
	case strings.HasPrefix(rest, "o"):
		chord.Quality, rest = Diminished, rest[1:]
	case strings.HasPrefix(rest, "aug"):
		chord.Quality, rest = Augmented, rest[3:]
	case strings.HasPrefix(rest, "+"):
		chord.Quality, rest = Augmented, rest[1:]
	}
	if rest == "5" {
		chord.Quality, rest = Power, ""
	}

	intervals := append([]int(nil), triads[chord.Quality]...)
	seventh := 0
	var extra []int

	for rest != "" {
		switch {
		case strings.HasPrefix(rest, "sus2"):
			chord.Quality, rest = Sus2, rest[4:]
			intervals = replaceThird(intervals, 2)
			continue
		case strings.HasPrefix(rest, "sus4"):
			chord.Quality, rest = Sus4, rest[4:]
			intervals = replaceThird(intervals, 5)
			continue
		case strings.HasPrefix(rest, "sus"):
			chord.Quality, rest = Sus4, rest[3:]
			intervals = replaceThird(intervals, 5)
			continue
		case strings.HasPrefix(rest, "6/9"), strings.HasPrefix(rest, "69"):
			extra = append(extra, 9, 14)
			rest = strings.TrimPrefix(strings.TrimPrefix(rest, "6/9"), "69")
			continue
		case strings.HasPrefix(rest, "add"):
			rest = rest[3:]
			degree, alter, tail, ok := parseDegree(rest)
			if !ok {
				return fail("has a malformed add")
			}
			extra = append(extra, degreeInterval(degree)+alter)
			rest = tail
			continue
		case strings.HasPrefix(rest, "maj"), strings.HasPrefix(rest, "Maj"), strings.HasPrefix(rest, "M"):
			// a bracketed major seventh such as "Am(maj7)" or "Cm(M7)"
			majorSeventh = true
			rest = strings.TrimPrefix(strings.TrimPrefix(strings.TrimPrefix(rest, "maj"), "Maj"), "M")
			if rest == "" || rest[0] < '0' || rest[0] > '9' {
				seventh = max(seventh, 7)
			}
			continue
		case rest[0] == '(' || rest[0] == ')' || rest[0] == ',':
			rest = rest[1:]
			continue
		}

		degree, alter, tail, ok := parseDegree(rest)
		if !ok {
			return fail("has an unrecognised suffix")
		}
		rest = tail
		switch degree {
		case 2, 4:
			// "A2" and "E4" read as added tones
			extra = append(extra, degreeInterval(degree)+alter)
		case 5:
			intervals = replaceFifth(intervals, 7+alter)
		case 6:
			extra = append(extra, 9+alter)
		case 7:
			if alter != 0 {
				return fail("alters the seventh")
			}
			seventh = max(seventh, degree)
		case 9, 11, 13:
			if alter == 0 {
				seventh = max(seventh, degree)
			} else {
				extra = append(extra, degreeInterval(degree)+alter)
			}
		default:
			return fail("names an unsupported degree")
		}
	}

	if seventh > 0 {
		switch {
		case majorSeventh:
			intervals = append(intervals, 11)
		case chord.Quality == Diminished:
			intervals = append(intervals, 9)
		default:
			intervals = append(intervals, 10)
		}
		for _, d := range []int{9, 11, 13} {
			if d <= seventh {
				intervals = append(intervals, degreeInterval(d))
			}
		}
	}
	intervals = append(intervals, extra...)
	slices.Sort(intervals)
	chord.Intervals = slices.Compact(intervals)
	return chord, nil
}

// parseDegree reads an optional accidental followed by a scale degree.
// "-" and "+" are accepted as flat and sharp, as in "m7-5".
func parseDegree(s string) (degree, alter int, rest string, ok bool) {
	switch {
	case strings.HasPrefix(s, "b"), strings.HasPrefix(s, "-"):
		alter, s = -1, s[1:]
	case strings.HasPrefix(s, "#"), strings.HasPrefix(s, "+"):
		alter, s = 1, s[1:]
	}
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, 0, s, false
	}
	degree, _ = strconv.Atoi(s[:i])
	return degree, alter, s[i:], true
}

func degreeInterval(degree int) int {
	switch degree {
	case 2, 9:
		return 14
	case 4, 11:
		return 17
	case 6, 13:
		return 21
	}
	return 0
}

func replaceThird(intervals []int, with int) []int {
	out := intervals[:0]
	for _, iv := range intervals {
		if iv == 3 || iv == 4 {
			iv = with
		}
		out = append(out, iv)
	}
	return out
}

func replaceFifth(intervals []int, with int) []int {
	out := intervals[:0]
	for _, iv := range intervals {
		if iv >= 6 && iv <= 8 {
			iv = with
		}
		out = append(out, iv)
	}
	return out
}

// Key is a tonic plus a mode such as "major" or "dorian"
type Key struct {
	Tonic int
	Mode  string
}

var modes = map[string]string{
	"":           "major",
	"major":      "major",
	"maj":        "major",
	"ionian":     "major",
	"minor":      "minor",
	"min":        "minor",
	"m":          "minor",
	"aeolian":    "minor",
	"dorian":     "dorian",
	"phrygian":   "phrygian",
	"lydian":     "lydian",
	"mixolydian": "mixolydian",
	"locrian":    "locrian",
}

// ParseKey accepts "C Minor", "F♯ major", "Am" or a bare tonic such as "Eb".
// Anything after the mode word is ignored.
func ParseKey(key string) (Key, error) {
	s := notation.Replace(strings.TrimSpace(key))
	tonic, rest, ok := parseRoot(s)
	if !ok {
		return Key{}, fmt.Errorf("%w: %q has no tonic", ErrInvalidKey, key)
	}
	word := ""
	if fields := strings.Fields(rest); len(fields) > 0 {
		word = strings.ToLower(fields[0])
	}
	mode, ok := modes[word]
	if !ok {
		return Key{}, fmt.Errorf("%w: %q has unknown mode %q", ErrInvalidKey, key, word)
	}
	return Key{Tonic: tonic, Mode: mode}, nil
}
