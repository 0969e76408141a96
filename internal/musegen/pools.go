package musegen

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// Artist sub-pool categories
const (
	ArtistsDefault = "default"
	ArtistsAmbient = "ambient"
	ArtistsTechno  = "techno"
	ArtistsHouse   = "house"
	ArtistsPop     = "pop"
	ArtistsTrap    = "trap"
	ArtistsBass    = "bass"
	ArtistsLatin   = "latin"
)

// Pools holds the static candidate lists the offline synthesizers draw from.
// A Pools value is read-only once a Synthesizer has been built from it.
type Pools struct {
	Genres         []string            `yaml:"genres"`
	Artists        map[string][]string `yaml:"artists"`
	Languages      []string            `yaml:"languages"`
	PromptTextures []string            `yaml:"prompt_textures"`
	PromptSettings []string            `yaml:"prompt_settings"`
	PromptGrooves  []string            `yaml:"prompt_grooves"`
	LyricImagery   []string            `yaml:"lyric_imagery"`
	LyricMotifs    []string            `yaml:"lyric_motifs"`
	LyricPayoffs   []string            `yaml:"lyric_payoffs"`
}

// DefaultPools returns a fresh copy of the built-in pools
func DefaultPools() *Pools {
	artists := map[string][]string{
		ArtistsDefault: {"Kaytranada", "Fred again..", "ODESZA", "Caribou", "Anyma", "Charlotte de Witte", "Peggy Gou", "Jamie xx"},
		ArtistsAmbient: {"Jon Hopkins", "Helios", "Tycho", "Brian Eno", "Bonobo", "Nils Frahm"},
		ArtistsTechno:  {"Bicep", "Ben Böhmer", "Amelie Lens", "Stephan Bodzin", "Reinier Zonneveld"},
		ArtistsHouse:   {"Purple Disco Machine", "Disclosure", "Chris Lake", "Diplo", "Duke Dumont"},
		ArtistsPop:     {"Dua Lipa", "The Weeknd", "Billie Eilish", "Charli XCX"},
		ArtistsTrap:    {"Metro Boomin", "RL Grime", "Flume", "Baauer"},
		ArtistsBass:    {"Sub Focus", "Skrillex", "Alison Wonderland", "Seven Lions"},
		ArtistsLatin:   {"Bad Bunny", "ROSALÍA", "J Balvin", "Rauw Alejandro"},
	}

	return &Pools{
		Genres: []string{
			"synthwave", "deep house", "future garage", "progressive house", "melodic techno",
			"downtempo", "lofi house", "breakbeat", "drum & bass", "hyperpop",
			"afrobeats", "trap", "hip-hop", "trap soul", "uk garage",
			"electro swing", "cinematic electronica", "ambient techno", "psytrance", "future bass",
			"neo-soul", "phonk", "dark wave", "idm", "glitch hop",
			"latin house", "baile funk", "vaporwave", "chillwave", "lofi hip hop",
		},
		Artists: artists,
		Languages: []string{
			"English", "Spanish", "Hindi", "French", "German",
			"Japanese", "Korean", "Portuguese", "Italian", "Tamil",
			"Telugu", "Bengali", "Mandarin", "Arabic", "Yoruba",
		},
		PromptTextures: []string{
			"glassine pads", "pulsing bass lines", "fractaled arpeggios", "cinematic swells",
			"granular vocal chops", "stuttering percussion", "analog synth blooms",
		},
		PromptSettings: []string{
			"neon skyline", "midnight rooftop", "desert rave", "immersive light installation",
			"tidal undercurrent", "future noir city", "celestial observatory",
		},
		PromptGrooves: []string{
			"polyrhythmic groove", "syncopated rhythm", "rolling halftime swing",
			"four-on-the-floor drive", "broken beat shuffle",
		},
		LyricImagery: []string{
			"neon horizons", "holographic rain", "midnight skylines", "gravity waves",
			"aurora pulse", "glass cathedral lights", "silver dawn tides",
		},
		LyricMotifs: []string{
			"we chase the memory", "hearts in overdrive", "signals intertwine",
			"echoes we design", "static turns to gold", "we bloom in afterglow",
		},
		LyricPayoffs: []string{
			"we never fade away", "tonight we stay awake", "we find a brighter way",
			"our pulse will never break", "together we elevate",
		},
	}
}

// LoadPools reads a YAML document and overlays it on the default pools. Lists named in
// the document replace the defaults, artist categories are merged by key, and unknown
// fields are rejected.
func LoadPools(r io.Reader) (*Pools, error) {
	pools := DefaultPools()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(pools); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode pools: %w", err)
	}

	if err := pools.validate(); err != nil {
		return nil, err
	}
	return pools, nil
}

func (p *Pools) validate() error {
	// templates interpolate two distinct draws from textures, imagery and motifs
	minSizes := map[string]struct {
		pool []string
		min  int
	}{
		"genres":          {p.Genres, 1},
		"languages":       {p.Languages, 1},
		"prompt_textures": {p.PromptTextures, 2},
		"prompt_settings": {p.PromptSettings, 1},
		"prompt_grooves":  {p.PromptGrooves, 1},
		"lyric_imagery":   {p.LyricImagery, 2},
		"lyric_motifs":    {p.LyricMotifs, 2},
		"lyric_payoffs":   {p.LyricPayoffs, 1},
		"artists.default": {p.Artists[ArtistsDefault], 2},
	}

	var errs []error
	for _, name := range slices.Sorted(maps.Keys(minSizes)) {
		entry := minSizes[name]
		if len(entry.pool) < entry.min {
			errs = append(errs, fmt.Errorf("pool %q needs at least %d entries, has %d", name, entry.min, len(entry.pool)))
		}
	}
	return errors.Join(errs...)
}
