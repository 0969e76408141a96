package musegen

// Numerical Recipes LCG constants
const (
	lcgMultiplier = 1664525
	lcgIncrement  = 1013904223
	rngDivisor    = float64(0xffffffff)
)

// RNG is a seeded linear-congruential generator. It is used for cosmetic
// content selection only and must never be used where security matters.
type RNG struct {
	state uint32
}

// NewRNG seeds a generator. The seed is reduced modulo 2^32 and treated as unsigned.
func NewRNG(seed int64) *RNG {
	return &RNG{state: uint32(seed)}
}

// Float64 advances the generator and returns the next value.
// The divisor is 2^32-1, so the top state value maps to exactly 1.0.
func (r *RNG) Float64() float64 {
	r.state = r.state*lcgMultiplier + lcgIncrement
	return float64(r.state) / rngDivisor
}

// Intn returns an index in [0, n). Values of Float64 equal to 1.0 are clamped to n-1.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
