package musegen

import "slices"

// MaxNoveltyRetries bounds how often a generator is re-run to avoid repeating itself
const MaxNoveltyRetries = 3

// EnsureDifferent runs generate with attempt 0 and retries with increasing attempts while
// the result equals previous, at most MaxNoveltyRetries times. The last value is returned
// even if it still equals previous. attempts reports how many generate calls were made.
func EnsureDifferent[T any](generate func(attempt int) T, previous T, equal func(a, b T) bool) (value T, attempts int) {
	attempt := 0
	value = generate(attempt)
	for equal(value, previous) && attempt < MaxNoveltyRetries {
		attempt++
		value = generate(attempt)
	}
	return value, attempt + 1
}

// EnsureDifferentString compares with exact string equality
func EnsureDifferentString(generate func(attempt int) string, previous string) (string, int) {
	return EnsureDifferent(generate, previous, func(a, b string) bool { return a == b })
}

// EnsureDifferentList compares element-wise, order-sensitive
func EnsureDifferentList(generate func(attempt int) []string, previous []string) ([]string, int) {
	return EnsureDifferent(generate, previous, slices.Equal[[]string])
}
