package musegen

import "strings"

// Sample draws up to count distinct items from pool without replacement. Items matching
// exclude case-insensitively are never returned, and output order follows draw order.
// A short result is not an error.
func Sample(pool []string, count int, rng *RNG, exclude []string) []string {
	if count <= 0 {
		return []string{}
	}
	blocked := make(map[string]struct{}, len(exclude))
	for _, value := range exclude {
		blocked[strings.ToLower(value)] = struct{}{}
	}

	working := make([]string, 0, len(pool))
	for _, item := range pool {
		if _, skip := blocked[strings.ToLower(item)]; !skip {
			working = append(working, item)
		}
	}

	result := make([]string, 0, min(count, len(working)))
	used := make(map[string]struct{}, count)
	for len(working) > 0 && len(result) < count {
		index := rng.Intn(len(working))
		value := working[index]
		working = append(working[:index], working[index+1:]...)

		key := strings.ToLower(value)
		if _, dup := used[key]; dup {
			continue
		}
		used[key] = struct{}{}
		result = append(result, value)
	}
	return result
}
