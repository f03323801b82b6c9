package trace

import (
	"fmt"
	"math"
)

const (
	// DefaultStride is the default distance between sequential addresses,
	// one typical cache line.
	DefaultStride int64 = 64

	// DefaultBitWidth is the default size, in address bits, of the space
	// random addresses are drawn from.
	DefaultBitWidth = 30

	// DefaultSeed is the default random seed.
	DefaultSeed int64 = 0

	// MaxCount bounds the number of addresses in one trace, keeping a whole
	// trace (8 bytes per address) within a single allocatable slice.
	MaxCount = 1 << 30

	// MinBitWidth and MaxBitWidth bound the random address space. The upper
	// bound keeps every address representable as a signed 64-bit value.
	MinBitWidth = 1
	MaxBitWidth = 62
)

// Config holds the parameters of one generation call. Stride applies to the
// sequential and shuffled patterns, BitWidth to the random pattern, and Seed
// to both random patterns.
type Config struct {
	Count    int
	Stride   int64
	BitWidth int
	Seed     int64
}

// DefaultConfig returns a config with the default stride, bit width, and
// seed, and a count of zero.
func DefaultConfig() Config {
	return Config{
		Stride:   DefaultStride,
		BitWidth: DefaultBitWidth,
		Seed:     DefaultSeed,
	}
}

// Validate checks the fields that the given pattern uses.
func (c Config) Validate(p Pattern) error {
	if c.Count < 0 {
		return invalidParameter("count", "count must be >= 0")
	}

	if c.Count > MaxCount {
		return invalidParameter("count",
			fmt.Sprintf("count must be <= %d", MaxCount))
	}

	switch p {
	case Sequential, Shuffled:
		if c.Stride <= 0 {
			return invalidParameter("stride", "stride must be > 0")
		}

		if c.Count > 1 && c.Stride > math.MaxInt64/int64(c.Count-1) {
			return invalidParameter("stride",
				fmt.Sprintf("stride*(count-1) must be <= %d", int64(math.MaxInt64)))
		}
	case Random:
		if c.BitWidth < MinBitWidth || c.BitWidth > MaxBitWidth {
			return invalidParameter("bit_width",
				fmt.Sprintf("bit_width must be in [%d,%d]",
					MinBitWidth, MaxBitWidth))
		}
	default:
		return invalidParameter("pattern",
			fmt.Sprintf("unknown pattern %d", int(p)))
	}

	return nil
}

// Pattern selects how addresses are generated.
type Pattern int

// The supported patterns.
const (
	Sequential Pattern = iota
	Random
	Shuffled
)

var patternNames = map[Pattern]string{
	Sequential: "sequential",
	Random:     "random",
	Shuffled:   "shuffled",
}

func (p Pattern) String() string {
	if name, ok := patternNames[p]; ok {
		return name
	}

	return fmt.Sprintf("Pattern(%d)", int(p))
}

// ParsePattern converts a pattern name into a Pattern.
func ParsePattern(name string) (Pattern, error) {
	for p, n := range patternNames {
		if n == name {
			return p, nil
		}
	}

	return 0, invalidParameter("pattern",
		fmt.Sprintf("pattern must be one of sequential, random, shuffled; got %q",
			name))
}
