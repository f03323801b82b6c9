package trace_test

import (
	"errors"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/memtrace/trace"
)

func expectInvalid(err error, field string) {
	Expect(err).To(HaveOccurred())
	Expect(errors.Is(err, trace.ErrInvalidParameter)).To(BeTrue())

	var ipErr *trace.InvalidParameterError
	Expect(errors.As(err, &ipErr)).To(BeTrue())
	Expect(ipErr.Field).To(Equal(field))
}

func loadGolden(path string) trace.Trace {
	data, err := os.ReadFile(path)
	Expect(err).NotTo(HaveOccurred())

	fields := strings.Fields(string(data))
	t := make(trace.Trace, 0, len(fields))

	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		Expect(err).NotTo(HaveOccurred())

		t = append(t, trace.Address(v))
	}

	return t
}

var _ = Describe("GenerateSequential", func() {
	It("should generate cache-line strided addresses", func() {
		t, err := trace.GenerateSequential(5, 64)

		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(trace.Trace{0, 64, 128, 192, 256}))
	})

	It("should place i*stride at index i", func() {
		for _, stride := range []int64{1, 3, 64, 4096} {
			t, err := trace.GenerateSequential(100, stride)

			Expect(err).NotTo(HaveOccurred())
			Expect(t).To(HaveLen(100))

			for i, addr := range t {
				Expect(addr).To(Equal(trace.Address(int64(i) * stride)))
			}
		}
	})

	It("should return an empty trace for a zero count", func() {
		t, err := trace.GenerateSequential(0, 64)

		Expect(err).NotTo(HaveOccurred())
		Expect(t).NotTo(BeNil())
		Expect(t).To(BeEmpty())
	})

	It("should reject non-positive strides", func() {
		_, err := trace.GenerateSequential(5, 0)
		expectInvalid(err, "stride")

		_, err = trace.GenerateSequential(5, -1)
		expectInvalid(err, "stride")
	})

	It("should reject negative counts", func() {
		t, err := trace.GenerateSequential(-1, 64)

		expectInvalid(err, "count")
		Expect(t).To(BeNil())
	})

	It("should accept the largest stride that does not overflow", func() {
		stride := int64(math.MaxInt64 / 2)

		t, err := trace.GenerateSequential(3, stride)

		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(trace.Trace{0, trace.Address(stride), trace.Address(2 * stride)}))
		Expect(t[2]).To(BeNumerically(">", t[1]))
	})

	It("should reject strides whose last address overflows", func() {
		t, err := trace.GenerateSequential(3, math.MaxInt64)

		expectInvalid(err, "stride")
		Expect(t).To(BeNil())

		_, err = trace.GenerateSequential(3, math.MaxInt64/2+1)
		expectInvalid(err, "stride")

		_, err = trace.GenerateShuffled(3, math.MaxInt64, 0)
		expectInvalid(err, "stride")
	})

	It("should allow any stride for a single address", func() {
		t, err := trace.GenerateSequential(1, math.MaxInt64)

		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(trace.Trace{0}))
	})

	It("should reject counts above MaxCount", func() {
		_, err := trace.GenerateSequential(trace.MaxCount+1, 1)
		expectInvalid(err, "count")

		_, err = trace.GenerateRandom(trace.MaxCount+1, 30, 0)
		expectInvalid(err, "count")

		_, err = trace.GenerateShuffled(trace.MaxCount+1, 1, 0)
		expectInvalid(err, "count")
	})
})

var _ = Describe("GenerateRandom", func() {
	It("should reproduce the pinned golden sequence", func() {
		t, err := trace.GenerateRandom(1000, 30, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(loadGolden("testdata/random_1000_30_0.golden")))
		Expect(t[:5]).To(Equal(
			trace.Trace{171576817, 1065307807, 42486917, 641555008, 582274052}))
	})

	It("should depend on the seed", func() {
		t, err := trace.GenerateRandom(5, 30, 1)

		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(
			trace.Trace{143748951, 146465940, 484488313, 22574593, 376773980}))
	})

	It("should use the top bits for wide address spaces", func() {
		t, err := trace.GenerateRandom(4, 62, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(trace.Trace{
			736916819693041423,
			4575462191499591266,
			182479923251558958,
			2755457782034005819,
		}))
	})

	It("should keep every address within the bit width", func() {
		for _, bits := range []int{1, 8, 30, 62} {
			t, err := trace.GenerateRandom(500, bits, 11)

			Expect(err).NotTo(HaveOccurred())
			Expect(t).To(HaveLen(500))

			limit := trace.Address(int64(1)<<bits - 1)
			for _, addr := range t {
				Expect(addr).To(BeNumerically(">=", 0))
				Expect(addr).To(BeNumerically("<=", limit))
			}
		}
	})

	It("should be deterministic across calls", func() {
		t1, err1 := trace.GenerateRandom(256, 20, 1234)
		t2, err2 := trace.GenerateRandom(256, 20, 1234)

		Expect(err1).NotTo(HaveOccurred())
		Expect(err2).NotTo(HaveOccurred())
		Expect(t1).To(Equal(t2))
	})

	It("should be deterministic across goroutines", func() {
		want, err := trace.GenerateRandom(1000, 30, 0)
		Expect(err).NotTo(HaveOccurred())

		var wg sync.WaitGroup

		results := make([]trace.Trace, 8)
		for i := range results {
			wg.Add(1)

			go func(i int) {
				defer wg.Done()
				results[i], _ = trace.GenerateRandom(1000, 30, 0)
			}(i)
		}

		wg.Wait()

		for _, got := range results {
			Expect(got).To(Equal(want))
		}
	})

	It("should return an empty trace for a zero count", func() {
		t, err := trace.GenerateRandom(0, 30, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(BeEmpty())
	})

	It("should reject out-of-range bit widths", func() {
		_, err := trace.GenerateRandom(5, 0, 0)
		expectInvalid(err, "bit_width")

		_, err = trace.GenerateRandom(5, 63, 0)
		expectInvalid(err, "bit_width")
	})

	It("should reject negative counts", func() {
		_, err := trace.GenerateRandom(-3, 30, 0)
		expectInvalid(err, "count")
	})
})

var _ = Describe("GenerateShuffled", func() {
	It("should produce the pinned permutation", func() {
		t, err := trace.GenerateShuffled(8, 64, 0)

		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(trace.Trace{256, 320, 128, 0, 448, 64, 192, 384}))

		t, err = trace.GenerateShuffled(10, 1, 99)

		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(trace.Trace{6, 8, 0, 7, 2, 9, 3, 5, 4, 1}))
	})

	It("should be a permutation of the sequential trace", func() {
		seq, err := trace.GenerateSequential(300, 64)
		Expect(err).NotTo(HaveOccurred())

		shuffled, err := trace.GenerateShuffled(300, 64, 5)
		Expect(err).NotTo(HaveOccurred())

		Expect(shuffled).To(ConsistOf(seq))
		Expect(shuffled).NotTo(Equal(seq))
	})

	It("should reject non-positive strides", func() {
		_, err := trace.GenerateShuffled(5, 0, 0)
		expectInvalid(err, "stride")
	})
})

var _ = Describe("Generate", func() {
	It("should dispatch on the pattern", func() {
		c := trace.DefaultConfig()
		c.Count = 5

		seq, err := trace.Generate(trace.Sequential, c)
		Expect(err).NotTo(HaveOccurred())
		Expect(seq).To(Equal(trace.Trace{0, 64, 128, 192, 256}))

		rnd, err := trace.Generate(trace.Random, c)
		Expect(err).NotTo(HaveOccurred())
		Expect(rnd).To(Equal(
			trace.Trace{171576817, 1065307807, 42486917, 641555008, 582274052}))
	})

	It("should reject unknown patterns", func() {
		_, err := trace.Generate(trace.Pattern(9), trace.DefaultConfig())
		expectInvalid(err, "pattern")
	})
})
