package services_test

import (
	"context"
	"slices"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jwodder/axum-hammer/internal/services"
	srvErrors "github.com/jwodder/axum-hammer/pkg/errors"
)

func ptr[T any](v T) *T { return &v }

var _ = Describe("Subpages", func() {
	It("should generate a fixed number of pages", func() {
		s := services.NewSubpages("/subpages", 42)

		keys := s.Keys()
		Expect(keys).To(HaveLen(services.SubpageCount))
		for _, k := range keys {
			Expect(k).To(MatchRegexp(`^[A-Za-z0-9]{16}$`))
			body, err := s.Get(k)
			Expect(err).NotTo(HaveOccurred())
			Expect(body).To(HaveLen(services.SubpageBodyLen))
		}
	})

	It("should be reproducible from the seed", func() {
		a := services.NewSubpages("/subpages", 7)
		b := services.NewSubpages("/subpages", 7)
		c := services.NewSubpages("/subpages", 8)

		Expect(a.Index()).To(Equal(b.Index()))
		Expect(a.Index()).NotTo(Equal(c.Index()))
	})

	It("should list sorted paths under the prefix", func() {
		s := services.NewSubpages("/subpages/", 1)

		lines := strings.Split(strings.TrimSuffix(s.Index(), "\n"), "\n")
		Expect(lines).To(HaveLen(services.SubpageCount))
		Expect(lines).To(HaveEach(HavePrefix("/subpages/")))
		keys := s.Keys()
		Expect(lines[0]).To(Equal("/subpages/" + keys[0]))
		Expect(slices.IsSorted(keys)).To(BeTrue())
	})

	It("should build one differently seeded set per prefix", func() {
		sets := services.NewSubpageSets(5)

		Expect(sets).To(HaveLen(len(services.SubpagePrefixes)))
		for i, sp := range sets {
			Expect(sp.Prefix()).To(Equal(services.SubpagePrefixes[i]))
		}
		Expect(sets[0].Index()).To(Equal(services.NewSubpages("/subpages", 5).Index()))
		Expect(sets[1].Keys()).NotTo(Equal(sets[0].Keys()))
	})

	It("should report unknown keys", func() {
		s := services.NewSubpages("/subpages", 1)

		_, err := s.Get("nope")

		Expect(srvErrors.IsPageNotFoundError(err)).To(BeTrue())
	})
})

var _ = Describe("Sleeper", func() {
	DescribeTable("NewSleepParams",
		func(minMs, maxMs *uint64, want services.SleepParams, wantErr bool) {
			p, err := services.NewSleepParams(minMs, maxMs)
			if wantErr {
				Expect(srvErrors.IsInvalidSleepParamsError(err)).To(BeTrue())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(want))
		},
		Entry("defaults", nil, nil, services.SleepParams{Min: 500, Max: 1000}, false),
		Entry("min only", ptr(uint64(100)), nil, services.SleepParams{Min: 100, Max: 200}, false),
		Entry("max only", nil, ptr(uint64(600)), services.SleepParams{Min: 500, Max: 600}, false),
		Entry("both", ptr(uint64(10)), ptr(uint64(20)), services.SleepParams{Min: 10, Max: 20}, false),
		Entry("max equal to min", ptr(uint64(10)), ptr(uint64(10)), services.SleepParams{}, true),
		Entry("max below default min", nil, ptr(uint64(100)), services.SleepParams{}, true),
		Entry("saturating default max", ptr(^uint64(0)), nil, services.SleepParams{Min: ^uint64(0), Max: ^uint64(0)}, false),
	)

	It("should draw durations within bounds", func() {
		p := services.SleepParams{Min: 10, Max: 12}
		for range 100 {
			d := p.Duration()
			Expect(d).To(BeNumerically(">=", 10*time.Millisecond))
			Expect(d).To(BeNumerically("<=", 12*time.Millisecond))
		}
	})

	It("should sleep for the drawn duration", func() {
		start := time.Now()

		d, err := services.NewSleeper().Sleep(context.Background(), services.SleepParams{Min: 20, Max: 30})

		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(BeNumerically(">=", 20*time.Millisecond))
		Expect(time.Since(start)).To(BeNumerically(">=", d))
	})

	It("should stop when the context ends", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := services.NewSleeper().Sleep(ctx, services.SleepParams{Min: 5000, Max: 6000})

		Expect(err).To(MatchError(context.DeadlineExceeded))
	})
})
