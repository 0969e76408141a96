package musegen

import (
	"slices"
	"sync/atomic"
)

// Kind names a synthesized artifact that has its own novelty slot
type Kind string

const (
	KindPrompt    Kind = "prompt"
	KindGenres    Kind = "genres"
	KindArtists   Kind = "artists"
	KindLanguages Kind = "languages"
	KindLyrics    Kind = "lyrics"
)

// LastValues remembers the most recently returned value of each kind. Slots are swapped
// atomically without a lock around read-generate-write, so concurrent callers of the same
// kind may both miss each other's result. That only weakens de-duplication.
// The zero value is an empty cache.
type LastValues struct {
	prompt    atomic.Pointer[string]
	genres    atomic.Pointer[[]string]
	artists   atomic.Pointer[[]string]
	languages atomic.Pointer[[]string]
	lyrics    atomic.Pointer[string]
}

// NewLastValues returns an empty cache
func NewLastValues() *LastValues {
	return &LastValues{}
}

// Text returns the last prompt or lyrics value, "" when none was stored
func (c *LastValues) Text(kind Kind) string {
	slot := c.textSlot(kind)
	if slot == nil {
		return ""
	}
	if v := slot.Load(); v != nil {
		return *v
	}
	return ""
}

// SetText stores the last prompt or lyrics value
func (c *LastValues) SetText(kind Kind, value string) {
	if slot := c.textSlot(kind); slot != nil {
		slot.Store(&value)
	}
}

// List returns a copy of the last genres, artists or languages value
func (c *LastValues) List(kind Kind) []string {
	slot := c.listSlot(kind)
	if slot == nil {
		return nil
	}
	if v := slot.Load(); v != nil {
		return slices.Clone(*v)
	}
	return nil
}

// SetList stores a copy of the last genres, artists or languages value
func (c *LastValues) SetList(kind Kind, value []string) {
	if slot := c.listSlot(kind); slot != nil {
		stored := slices.Clone(value)
		slot.Store(&stored)
	}
}

func (c *LastValues) textSlot(kind Kind) *atomic.Pointer[string] {
	switch kind {
	case KindPrompt:
		return &c.prompt
	case KindLyrics:
		return &c.lyrics
	}
	return nil
}

func (c *LastValues) listSlot(kind Kind) *atomic.Pointer[[]string] {
	switch kind {
	case KindGenres:
		return &c.genres
	case KindArtists:
		return &c.artists
	case KindLanguages:
		return &c.languages
	}
	return nil
}
