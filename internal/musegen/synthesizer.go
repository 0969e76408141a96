package musegen

import (
	"fmt"
	"strings"
	"time"

	"github.com/Conceptual-Machines/museforge-api/internal/logger"
	"github.com/Conceptual-Machines/museforge-api/internal/models"
)

const (
	languageDraw      = 3
	promptLyricsLimit = 80
	themeWordCount    = 6
	defaultTheme      = "electric nights"
)

// Observer is told about every accepted synthesis
type Observer func(kind Kind, attempts int, duration time.Duration)

// Synthesizer produces seeded, non-repeating suggestions without any external model.
// It never fails and never blocks.
type Synthesizer struct {
	pools         *Pools
	genreRules    []KeywordRule
	languageRules []LanguageRule
	artistRules   []ArtistRule
	cache         *LastValues
	now           func() time.Time
	observer      Observer
}

// Option configures a Synthesizer
type Option func(*Synthesizer)

// WithClock replaces time.Now as the seed nonce source
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) { s.now = now }
}

// WithCache shares a last-value cache between synthesizers
func WithCache(cache *LastValues) Option {
	return func(s *Synthesizer) { s.cache = cache }
}

// WithObserver registers a callback for accepted results
func WithObserver(observer Observer) Option {
	return func(s *Synthesizer) { s.observer = observer }
}

// NewSynthesizer builds a synthesizer over pools, using the default pools when nil
func NewSynthesizer(pools *Pools, opts ...Option) *Synthesizer {
	if pools == nil {
		pools = DefaultPools()
	}
	s := &Synthesizer{
		pools:         pools,
		genreRules:    GenreRules(),
		languageRules: LanguageRules(),
		artistRules:   ArtistRules(),
		cache:         NewLastValues(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cache exposes the last-value cache
func (s *Synthesizer) Cache() *LastValues {
	return s.cache
}

// EnhancePrompt writes a descriptive production prompt from the context
func (s *Synthesizer) EnhancePrompt(sc models.SuggestionContext) string {
	start := time.Now()
	nowMillis := s.now().UnixMilli()

	generate := func(attempt int) string {
		rng := SeedFor(nowMillis, attempt,
			sc.Prompt, strings.Join(sc.Genres, ","), strings.Join(sc.Artists, ","), sc.Lyrics)

		genreFocus := strings.Join(sc.Genres, " / ")
		if len(sc.Genres) == 0 {
			genreFocus = strings.Join(Sample(s.pools.Genres, 2, rng, nil), " / ")
		}

		var artistLine string
		if len(sc.Artists) > 0 {
			artistLine = "Inspired by " + strings.Join(sc.Artists, ", ")
		} else {
			artistLine = "Channeling " + strings.Join(Sample(s.pools.Artists[ArtistsDefault], 2, rng, nil), " & ")
		}

		groove := at(Sample(s.pools.PromptGrooves, 1, rng, nil), 0)
		setting := at(Sample(s.pools.PromptSettings, 1, rng, nil), 0)
		textures := Sample(s.pools.PromptTextures, 2, rng, nil)

		theme := "wordless vocal atmospherics"
		if sc.Lyrics != "" {
			theme = "lyrical themes about " + truncateRunes(sc.Lyrics, promptLyricsLimit)
		}

		return fmt.Sprintf("Forge a %s anthem with a %s, %s. Set it within a %s, weaving %s and %s around %s.",
			genreFocus, groove, artistLine, setting, at(textures, 0), at(textures, 1), theme)
	}

	prompt, attempts := EnsureDifferentString(generate, s.cache.Text(KindPrompt))
	s.cache.SetText(KindPrompt, prompt)
	s.report(KindPrompt, attempts, start)
	return prompt
}

// SuggestGenres draws three or four genres, favoring those the context's keywords imply.
// Genres already selected are never suggested again.
func (s *Synthesizer) SuggestGenres(sc models.SuggestionContext) []string {
	start := time.Now()
	nowMillis := s.now().UnixMilli()
	corpus := sc.Prompt + " " + sc.Lyrics + " " + strings.Join(sc.Artists, " ")
	derived := InferGenres(corpus, s.genreRules)
	candidates := appendUnique(derived, s.pools.Genres...)

	generate := func(attempt int) []string {
		rng := SeedFor(nowMillis, attempt, corpus)
		desired := 3 + rng.Intn(2)
		picks := Sample(candidates, desired, rng, sc.Genres)
		if len(picks) == 0 {
			picks = Sample(s.pools.Genres, desired, rng, sc.Genres)
		}
		for i, genre := range picks {
			picks[i] = normalizeSpace(genre)
		}
		return picks
	}

	genres, attempts := EnsureDifferentList(generate, s.cache.List(KindGenres))
	s.cache.SetList(KindGenres, genres)
	s.report(KindGenres, attempts, start)
	return genres
}

// SuggestArtists draws three or four artists from the sub-pools the selected genres map to
func (s *Synthesizer) SuggestArtists(sc models.SuggestionContext) []string {
	start := time.Now()
	nowMillis := s.now().UnixMilli()
	pool := ArtistPoolFor(sc.Genres, s.pools, s.artistRules)

	generate := func(attempt int) []string {
		rng := SeedFor(nowMillis, attempt, strings.Join(sc.Genres, ","), sc.Prompt)
		desired := 3 + rng.Intn(2)
		picks := Sample(pool, desired, rng, sc.Artists)
		if len(picks) == 0 {
			picks = Sample(s.pools.Artists[ArtistsDefault], desired, rng, sc.Artists)
		}
		return picks
	}

	artists, attempts := EnsureDifferentList(generate, s.cache.List(KindArtists))
	s.cache.SetList(KindArtists, artists)
	s.report(KindArtists, attempts, start)
	return artists
}

// SuggestLanguages draws three vocal languages, led by any cultural cues in the context
func (s *Synthesizer) SuggestLanguages(sc models.SuggestionContext) []string {
	start := time.Now()
	nowMillis := s.now().UnixMilli()
	cued := InferLanguages(sc, s.languageRules)
	pool := appendUnique(nil, append(cued, s.pools.Languages...)...)

	generate := func(attempt int) []string {
		rng := SeedFor(nowMillis, attempt, strings.Join(sc.Genres, ","), sc.Prompt)
		picks := Sample(pool, languageDraw, rng, sc.Languages)
		if len(picks) == 0 {
			picks = Sample(s.pools.Languages, languageDraw, rng, sc.Languages)
		}
		return picks
	}

	languages, attempts := EnsureDifferentList(generate, s.cache.List(KindLanguages))
	s.cache.SetList(KindLanguages, languages)
	s.report(KindLanguages, attempts, start)
	return languages
}

// EnhanceLyrics writes a short verse, chorus and bridge around the context's theme
func (s *Synthesizer) EnhanceLyrics(sc models.SuggestionContext) string {
	start := time.Now()
	nowMillis := s.now().UnixMilli()

	themeSource := strings.TrimSpace(sc.Prompt + " " + sc.Lyrics)
	if themeSource == "" {
		themeSource = defaultTheme
	}
	words := strings.Fields(themeSource)
	themeWords := strings.Join(words[:min(len(words), themeWordCount)], " ")

	generate := func(attempt int) string {
		rng := SeedFor(nowMillis, attempt, themeSource, strings.Join(sc.Genres, ","))
		imagery := Sample(s.pools.LyricImagery, 2, rng, nil)
		motifs := Sample(s.pools.LyricMotifs, 2, rng, nil)
		payoff := capitalize(at(Sample(s.pools.LyricPayoffs, 1, rng, nil), 0))

		return strings.Join([]string{
			"Verse 1:",
			capitalize(at(imagery, 0)) + " over " + strings.ToLower(themeWords),
			capitalize(at(motifs, 0)) + ", signals in the rain",
			"",
			"Chorus:",
			payoff,
			capitalize(at(motifs, 1)) + ", we glow beyond the fray",
			"",
			"Bridge:",
			capitalize(at(imagery, 1)) + " whispers in the dark",
			payoff + ", our legacy of sparks",
		}, "\n")
	}

	lyrics, attempts := EnsureDifferentString(generate, s.cache.Text(KindLyrics))
	s.cache.SetText(KindLyrics, lyrics)
	s.report(KindLyrics, attempts, start)
	return lyrics
}

func (s *Synthesizer) report(kind Kind, attempts int, start time.Time) {
	duration := time.Since(start)
	logger.LogSynthesis(string(kind), attempts, duration, nil)
	if s.observer != nil {
		s.observer(kind, attempts, duration)
	}
}
