package math

// SeededRandom is a mulberry32 generator. The same seed always yields the
// same sequence of values in [0, 1).
type SeededRandom struct {
	state uint32
}

// NewSeededRandom creates a generator for seed.
func NewSeededRandom(seed uint32) *SeededRandom {
	return &SeededRandom{state: seed}
}

// Float32 returns the next value in [0, 1).
func (r *SeededRandom) Float32() float32 {
	return float32(r.Float64())
}

// Float64 returns the next value in [0, 1).
func (r *SeededRandom) Float64() float64 {
	r.state += 0x6d2b79f5
	t := r.state
	v := (t ^ t>>15) * (1 | t)
	v ^= v + (v^v>>7)*(61|v)
	return float64(v^v>>14) / 4294967296
}
