package trace_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/memtrace/trace"
)

var _ = Describe("Generator", func() {
	It("should stream sequential addresses and stay exhausted", func() {
		g, err := trace.NewSequentialGenerator(3, 8)
		Expect(err).NotTo(HaveOccurred())

		Expect(g.Remaining()).To(Equal(3))

		addr, ok := g.Next()
		Expect(ok).To(BeTrue())
		Expect(addr).To(Equal(trace.Address(0)))
		Expect(g.Remaining()).To(Equal(2))

		Expect(trace.Collect(g)).To(Equal(trace.Trace{8, 16}))
		Expect(g.Remaining()).To(Equal(0))

		_, ok = g.Next()
		Expect(ok).To(BeFalse())
		_, ok = g.Next()
		Expect(ok).To(BeFalse())
	})

	It("should advance a random stream rather than repeat it", func() {
		g, err := trace.NewRandomGenerator(4, 30, 0)
		Expect(err).NotTo(HaveOccurred())

		first, _ := g.Next()
		second, _ := g.Next()

		Expect(first).To(Equal(trace.Address(171576817)))
		Expect(second).To(Equal(trace.Address(1065307807)))
	})

	It("should replay the same addresses after a reset", func() {
		builders := []trace.Builder{
			trace.MakeBuilder().WithCount(16),
			trace.MakeBuilder().WithPattern(trace.Random).WithCount(16).WithSeed(9),
			trace.MakeBuilder().WithPattern(trace.Shuffled).WithCount(16).WithSeed(9),
		}

		for _, b := range builders {
			g, err := b.Build()
			Expect(err).NotTo(HaveOccurred())

			first := trace.Collect(g)
			Expect(first).To(HaveLen(16))

			g.Reset()

			Expect(g.Remaining()).To(Equal(16))
			Expect(trace.Collect(g)).To(Equal(first))
		}
	})

	It("should match the one-shot functions", func() {
		g, err := trace.NewShuffledGenerator(50, 32, 3)
		Expect(err).NotTo(HaveOccurred())

		want, err := trace.GenerateShuffled(50, 32, 3)
		Expect(err).NotTo(HaveOccurred())

		Expect(trace.Collect(g)).To(Equal(want))
	})

	It("should fail to construct with invalid parameters", func() {
		g, err := trace.NewRandomGenerator(1, 63, 0)

		Expect(g).To(BeNil())
		Expect(err).To(MatchError(trace.ErrInvalidParameter))
	})
})

var _ = Describe("Builder", func() {
	It("should start from the default config", func() {
		b := trace.MakeBuilder()

		Expect(b.Pattern()).To(Equal(trace.Sequential))
		Expect(b.Config()).To(Equal(trace.Config{
			Count:    0,
			Stride:   64,
			BitWidth: 30,
			Seed:     0,
		}))
	})

	It("should not mutate the original builder", func() {
		base := trace.MakeBuilder()
		_ = base.WithStride(128).WithCount(4)

		Expect(base.Config().Stride).To(Equal(int64(64)))
	})

	It("should build a configured generator", func() {
		g, err := trace.MakeBuilder().
			WithPattern(trace.Sequential).
			WithCount(3).
			WithStride(4096).
			Build()

		Expect(err).NotTo(HaveOccurred())
		Expect(trace.Collect(g)).To(Equal(trace.Trace{0, 4096, 8192}))
	})

	It("should report invalid parameters at build time", func() {
		_, err := trace.MakeBuilder().
			WithPattern(trace.Random).
			WithCount(3).
			WithBitWidth(0).
			Build()

		Expect(err).To(MatchError(ContainSubstring("bit_width must be in [1,62]")))
	})
})

var _ = Describe("Pattern", func() {
	It("should round-trip names", func() {
		for _, p := range []trace.Pattern{
			trace.Sequential, trace.Random, trace.Shuffled,
		} {
			parsed, err := trace.ParsePattern(p.String())

			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(p))
		}
	})

	It("should reject unknown names", func() {
		_, err := trace.ParsePattern("strided")

		Expect(err).To(MatchError(trace.ErrInvalidParameter))
	})
})

var _ = Describe("Trace", func() {
	It("should render addresses separated by spaces", func() {
		Expect(trace.Trace{0, 64, 128}.String()).To(Equal("0 64 128"))
		Expect(trace.Trace{}.String()).To(Equal(""))
	})
})

var _ = Describe("InvalidParameterError", func() {
	It("should name the field and the constraint", func() {
		_, err := trace.GenerateSequential(5, 0)

		Expect(err.Error()).To(Equal(
			"invalid parameter stride: stride must be > 0"))
	})
})
