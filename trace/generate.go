package trace

// GenerateSequential returns count addresses 0, stride, ..., (count-1)*stride.
// A count of zero yields an empty trace.
func GenerateSequential(count int, stride int64) (Trace, error) {
	g, err := NewSequentialGenerator(count, stride)
	if err != nil {
		return nil, err
	}

	return Collect(g), nil
}

// GenerateRandom returns count addresses drawn uniformly from
// [0, 2^bitWidth-1]. Every call seeds its own engine, so identical arguments
// always yield identical traces.
func GenerateRandom(count int, bitWidth int, seed int64) (Trace, error) {
	g, err := NewRandomGenerator(count, bitWidth, seed)
	if err != nil {
		return nil, err
	}

	return Collect(g), nil
}

// GenerateShuffled returns a seeded random permutation of
// GenerateSequential(count, stride).
func GenerateShuffled(count int, stride int64, seed int64) (Trace, error) {
	g, err := NewShuffledGenerator(count, stride, seed)
	if err != nil {
		return nil, err
	}

	return Collect(g), nil
}

// Generate returns the trace described by the pattern and config.
func Generate(p Pattern, c Config) (Trace, error) {
	g, err := NewGenerator(p, c)
	if err != nil {
		return nil, err
	}

	return Collect(g), nil
}
