package metrics

import (
	"maps"
	"sync"
)

// Stats keeps in-process counters served by the metrics endpoint
type Stats struct {
	mu                 sync.Mutex
	requests           int64
	serverErrors       int64
	synthesis          map[string]int64
	noveltyRetries     int64
	generations        map[string]int64
	generationFailures int64
	fallbacks          int64
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	Requests           int64            `json:"requests"`
	ServerErrors       int64            `json:"server_errors"`
	Synthesis          map[string]int64 `json:"synthesis"`
	NoveltyRetries     int64            `json:"novelty_retries"`
	Generations        map[string]int64 `json:"generations"`
	GenerationFailures int64            `json:"generation_failures"`
	Fallbacks          int64            `json:"fallbacks"`
}

func NewStats() *Stats {
	return &Stats{
		synthesis:   make(map[string]int64),
		generations: make(map[string]int64),
	}
}

func (s *Stats) addRequest(statusCode int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	if statusCode >= httpStatusServerError {
		s.serverErrors++
	}
}

func (s *Stats) addSynthesis(kind string, attempts int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.synthesis[kind]++
	if attempts > 1 {
		s.noveltyRetries += int64(attempts - 1)
	}
}

func (s *Stats) addGeneration(operation string, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[operation]++
	if !success {
		s.generationFailures++
	}
}

func (s *Stats) addFallback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallbacks++
}

// Snapshot copies the counters
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Requests:           s.requests,
		ServerErrors:       s.serverErrors,
		Synthesis:          maps.Clone(s.synthesis),
		NoveltyRetries:     s.noveltyRetries,
		Generations:        maps.Clone(s.generations),
		GenerationFailures: s.generationFailures,
		Fallbacks:          s.fallbacks,
	}
}
