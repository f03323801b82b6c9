// Package rng provides the deterministic pseudo-random engine used to
// generate reproducible address traces.
package rng

import "math"

const (
	nn        = 312
	mm        = 156
	matrixA   = 0xB5026F5AA96619E9
	upperMask = 0xFFFFFFFF80000000
	lowerMask = 0x000000007FFFFFFF
)

// MT19937 is the 64-bit Mersenne Twister (MT19937-64). Its output stream is
// identical to that of C++ std::mt19937_64 constructed with the same seed.
//
// An MT19937 is not safe for concurrent use. Callers that need independent
// streams should create one instance per stream.
type MT19937 struct {
	state [nn]uint64
	index int
}

// NewMT19937 creates a generator seeded with the given value.
func NewMT19937(seed int64) *MT19937 {
	g := &MT19937{}
	g.Seed(seed)

	return g
}

// Seed resets the generator to the state produced by init_genrand64 with the
// seed reinterpreted as an unsigned 64-bit integer.
func (g *MT19937) Seed(seed int64) {
	g.state[0] = uint64(seed)
	for i := 1; i < nn; i++ {
		prev := g.state[i-1]
		g.state[i] = 6364136223846793005*(prev^(prev>>62)) + uint64(i)
	}

	g.index = nn
}

// Uint64 returns the next 64-bit output.
func (g *MT19937) Uint64() uint64 {
	if g.index >= nn {
		g.twist()
	}

	x := g.state[g.index]
	g.index++

	x ^= (x >> 29) & 0x5555555555555555
	x ^= (x << 17) & 0x71D67FFFEDA60000
	x ^= (x << 37) & 0xFFF7EEE000000000
	x ^= x >> 43

	return x
}

// Uint64N returns a uniformly distributed value in [0, n). Draws that would
// bias the modulo reduction are rejected. It panics if n is 0.
func (g *MT19937) Uint64N(n uint64) uint64 {
	if n == 0 {
		panic("rng: Uint64N called with n == 0")
	}

	bound := math.MaxUint64 - math.MaxUint64%n
	for {
		v := g.Uint64()
		if v < bound {
			return v % n
		}
	}
}

func (g *MT19937) twist() {
	for i := 0; i < nn; i++ {
		x := (g.state[i] & upperMask) | (g.state[(i+1)%nn] & lowerMask)

		xA := x >> 1
		if x&1 != 0 {
			xA ^= matrixA
		}

		g.state[i] = g.state[(i+mm)%nn] ^ xA
	}

	g.index = 0
}
