package trace

import "github.com/sarchlab/memtrace/rng"

// A Generator produces the addresses of one trace, one at a time.
//
// A new generator has produced nothing. Each call to Next advances the stream;
// once Remaining reaches zero, Next returns false forever. Reset rewinds the
// generator to its initial state, so the same addresses are produced again.
type Generator interface {
	Next() (Address, bool)
	Remaining() int
	Reset()
}

// NewSequentialGenerator creates a generator for 0, stride, 2*stride, ....
func NewSequentialGenerator(count int, stride int64) (Generator, error) {
	c := Config{Count: count, Stride: stride}
	if err := c.Validate(Sequential); err != nil {
		return nil, err
	}

	return &sequentialGenerator{count: count, stride: stride}, nil
}

type sequentialGenerator struct {
	count   int
	stride  int64
	emitted int
}

func (g *sequentialGenerator) Next() (Address, bool) {
	if g.emitted >= g.count {
		return 0, false
	}

	addr := Address(int64(g.emitted) * g.stride)
	g.emitted++

	return addr, true
}

func (g *sequentialGenerator) Remaining() int {
	return g.count - g.emitted
}

func (g *sequentialGenerator) Reset() {
	g.emitted = 0
}

// NewRandomGenerator creates a generator that draws addresses uniformly from
// [0, 2^bitWidth-1]. Each address is the top bitWidth bits of the next output
// of an MT19937-64 engine seeded with seed.
func NewRandomGenerator(count int, bitWidth int, seed int64) (Generator, error) {
	c := Config{Count: count, BitWidth: bitWidth, Seed: seed}
	if err := c.Validate(Random); err != nil {
		return nil, err
	}

	return &randomGenerator{
		count: count,
		shift: uint(64 - bitWidth),
		seed:  seed,
		mt:    rng.NewMT19937(seed),
	}, nil
}

type randomGenerator struct {
	count   int
	shift   uint
	seed    int64
	mt      *rng.MT19937
	emitted int
}

func (g *randomGenerator) Next() (Address, bool) {
	if g.emitted >= g.count {
		return 0, false
	}

	g.emitted++

	return Address(g.mt.Uint64() >> g.shift), true
}

func (g *randomGenerator) Remaining() int {
	return g.count - g.emitted
}

func (g *randomGenerator) Reset() {
	g.mt.Seed(g.seed)
	g.emitted = 0
}

// NewShuffledGenerator creates a generator that emits a random permutation of
// the sequential trace with the same count and stride. The permutation is a
// Fisher-Yates pass from the last index down to 1 that swaps index i with a
// uniform index in [0, i], drawn from an MT19937-64 engine seeded with seed.
func NewShuffledGenerator(
	count int,
	stride int64,
	seed int64,
) (Generator, error) {
	c := Config{Count: count, Stride: stride, Seed: seed}
	if err := c.Validate(Shuffled); err != nil {
		return nil, err
	}

	addrs := make(Trace, count)
	for i := range addrs {
		addrs[i] = Address(int64(i) * stride)
	}

	mt := rng.NewMT19937(seed)
	for i := count - 1; i > 0; i-- {
		j := int(mt.Uint64N(uint64(i + 1)))
		addrs[i], addrs[j] = addrs[j], addrs[i]
	}

	return &shuffledGenerator{addrs: addrs}, nil
}

type shuffledGenerator struct {
	addrs   Trace
	emitted int
}

func (g *shuffledGenerator) Next() (Address, bool) {
	if g.emitted >= len(g.addrs) {
		return 0, false
	}

	addr := g.addrs[g.emitted]
	g.emitted++

	return addr, true
}

func (g *shuffledGenerator) Remaining() int {
	return len(g.addrs) - g.emitted
}

func (g *shuffledGenerator) Reset() {
	g.emitted = 0
}

// NewGenerator creates a generator for the given pattern and config.
func NewGenerator(p Pattern, c Config) (Generator, error) {
	if err := c.Validate(p); err != nil {
		return nil, err
	}

	switch p {
	case Sequential:
		return NewSequentialGenerator(c.Count, c.Stride)
	case Random:
		return NewRandomGenerator(c.Count, c.BitWidth, c.Seed)
	default:
		return NewShuffledGenerator(c.Count, c.Stride, c.Seed)
	}
}

// Collect drains the remaining addresses of g into a new trace.
func Collect(g Generator) Trace {
	t := make(Trace, 0, g.Remaining())

	for {
		addr, ok := g.Next()
		if !ok {
			return t
		}

		t = append(t, addr)
	}
}
