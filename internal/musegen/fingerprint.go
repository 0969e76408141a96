package musegen

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

// Fingerprint hashes text into a non-negative seed using hash*31 + code unit with
// 32-bit signed wraparound, iterating UTF-16 code units. Collisions are acceptable.
func Fingerprint(text string) uint32 {
	var hash int32
	for _, unit := range utf16.Encode([]rune(text)) {
		hash = hash*31 + int32(unit)
	}
	if hash < 0 {
		// math.MinInt32 has no positive int32 counterpart, the uint32 conversion covers it
		return uint32(-int64(hash))
	}
	return uint32(hash)
}

// SeedMaterial joins context fields, a clock reading in milliseconds and the retry attempt
// into the string a synthesizer fingerprints.
func SeedMaterial(nowMillis int64, attempt int, parts ...string) string {
	all := make([]string, 0, len(parts)+2)
	all = append(all, parts...)
	all = append(all, strconv.FormatInt(nowMillis, 10), strconv.Itoa(attempt))
	return strings.Join(all, "|")
}

// SeedFor fingerprints seed material and returns a fresh generator
func SeedFor(nowMillis int64, attempt int, parts ...string) *RNG {
	return NewRNG(int64(Fingerprint(SeedMaterial(nowMillis, attempt, parts...))))
}
