package trace

// Builder can build trace generators.
type Builder struct {
	pattern Pattern
	config  Config
}

// MakeBuilder creates a builder for a sequential generator with the default
// config.
func MakeBuilder() Builder {
	return Builder{
		pattern: Sequential,
		config:  DefaultConfig(),
	}
}

// WithPattern sets the pattern of the generator.
func (b Builder) WithPattern(p Pattern) Builder {
	b.pattern = p
	return b
}

// WithConfig replaces the whole config.
func (b Builder) WithConfig(c Config) Builder {
	b.config = c
	return b
}

// WithCount sets the number of addresses to generate.
func (b Builder) WithCount(count int) Builder {
	b.config.Count = count
	return b
}

// WithStride sets the byte distance between sequential addresses.
func (b Builder) WithStride(stride int64) Builder {
	b.config.Stride = stride
	return b
}

// WithBitWidth sets the address-space size for random addresses.
func (b Builder) WithBitWidth(bitWidth int) Builder {
	b.config.BitWidth = bitWidth
	return b
}

// WithSeed sets the random seed.
func (b Builder) WithSeed(seed int64) Builder {
	b.config.Seed = seed
	return b
}

// Pattern returns the pattern the builder is configured with.
func (b Builder) Pattern() Pattern {
	return b.pattern
}

// Config returns the config the builder is configured with.
func (b Builder) Config() Config {
	return b.config
}

// Build creates the generator.
func (b Builder) Build() (Generator, error) {
	return NewGenerator(b.pattern, b.config)
}
