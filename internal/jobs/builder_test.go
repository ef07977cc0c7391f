package jobs_test

import (
	"context"
	"errors"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jwodder/axum-hammer/internal/config"
	"github.com/jwodder/axum-hammer/internal/jobs"
	"github.com/jwodder/axum-hammer/test"
)

func urlStrings(us []*url.URL) []string {
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = u.String()
	}
	return out
}

var _ = Describe("Builder", func() {
	var (
		ctx    context.Context
		target *url.URL
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		target, err = url.Parse("http://127.0.0.1:8080/subpages")
		Expect(err).NotTo(HaveOccurred())
	})

	Context("repeat source", func() {
		It("should request the target once per job", func() {
			getter := test.NewMockGetter("")
			b := jobs.NewBuilder(getter)

			urls, err := b.Build(ctx, config.SourceRepeat, target, 4)

			Expect(err).NotTo(HaveOccurred())
			Expect(urls).To(HaveLen(4))
			Expect(urls).To(HaveEach(target))
			Expect(getter.Requested()).To(BeEmpty())
		})
	})

	Context("subpages source", func() {
		// Given an index page listing two subpages
		// When five jobs are built
		// Then the subpages are requested in order, cycling
		It("should cycle through the listed subpages", func() {
			// Arrange
			getter := test.NewMockGetter("/subpages/aaa\n\n/subpages/bbb\n")
			b := jobs.NewBuilder(getter)

			// Act
			urls, err := b.Build(ctx, config.SourceSubpages, target, 5)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(urlStrings(urls)).To(Equal([]string{
				"http://127.0.0.1:8080/subpages/aaa",
				"http://127.0.0.1:8080/subpages/bbb",
				"http://127.0.0.1:8080/subpages/aaa",
				"http://127.0.0.1:8080/subpages/bbb",
				"http://127.0.0.1:8080/subpages/aaa",
			}))
			Expect(getter.Requested()).To(Equal([]string{"http://127.0.0.1:8080/subpages"}))
		})

		It("should fail when the index cannot be fetched", func() {
			b := jobs.NewBuilder(&test.MockGetter{Err: errors.New("connection refused")})

			_, err := b.Build(ctx, config.SourceSubpages, target, 5)

			Expect(err).To(MatchError(ContainSubstring("connection refused")))
		})

		It("should fail when the index is empty", func() {
			b := jobs.NewBuilder(test.NewMockGetter("\n"))

			_, err := b.Build(ctx, config.SourceSubpages, target, 5)

			Expect(err).To(MatchError(ContainSubstring("no subpages")))
		})
	})

	It("should reject an unknown source", func() {
		b := jobs.NewBuilder(test.NewMockGetter(""))

		_, err := b.Build(ctx, "sitemap", target, 1)

		Expect(err).To(HaveOccurred())
	})

	It("should resolve relative and absolute references", func() {
		pages, err := jobs.ParseIndex(target, []byte("a\n/b\nhttp://other:9000/c\n"))

		Expect(err).NotTo(HaveOccurred())
		Expect(urlStrings(pages)).To(Equal([]string{
			"http://127.0.0.1:8080/a",
			"http://127.0.0.1:8080/b",
			"http://other:9000/c",
		}))
	})

	It("should return nothing when cycling zero jobs", func() {
		Expect(jobs.Cycle([]*url.URL{target}, 0)).To(BeEmpty())
		Expect(jobs.Repeat(target, 0)).To(BeEmpty())
	})
})
