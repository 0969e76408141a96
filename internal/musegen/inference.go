package musegen

import (
	"strings"

	"github.com/Conceptual-Machines/museforge-api/internal/models"
)

// InferGenres tests every rule against the lower-cased corpus and returns the union of the
// matched rules' genres in rule order, de-duplicated case-insensitively.
func InferGenres(corpus string, rules []KeywordRule) []string {
	corpus = strings.ToLower(corpus)
	var derived []string
	for _, rule := range rules {
		if rule.Pattern.MatchString(corpus) {
			derived = appendUnique(derived, rule.Genres...)
		}
	}
	return derived
}

// InferLanguages evaluates every rule and appends the languages of each match.
// Duplicates are kept; sampling removes them later.
func InferLanguages(sc models.SuggestionContext, rules []LanguageRule) []string {
	var languages []string
	for _, rule := range rules {
		if rule.Match(sc) {
			languages = append(languages, rule.Languages...)
		}
	}
	return languages
}

// ArtistPoolFor concatenates the artist sub-pools every genre maps to, without
// de-duplication, so overlapping rules weight shared artists. It falls back to the
// default pool when nothing matches.
func ArtistPoolFor(genres []string, pools *Pools, rules []ArtistRule) []string {
	var matched []string
	for _, genre := range genres {
		for _, rule := range rules {
			if rule.Matches(genre) {
				matched = append(matched, pools.Artists[rule.Category]...)
			}
		}
	}
	if len(matched) == 0 {
		return pools.Artists[ArtistsDefault]
	}
	return matched
}

// appendUnique appends values not already present in dst, compared case-insensitively
func appendUnique(dst []string, values ...string) []string {
	seen := make(map[string]struct{}, len(dst)+len(values))
	for _, v := range dst {
		seen[strings.ToLower(v)] = struct{}{}
	}
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}
