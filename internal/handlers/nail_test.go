package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jwodder/axum-hammer/internal/handlers"
	"github.com/jwodder/axum-hammer/internal/services"
)

var _ = Describe("Nail handlers", func() {
	var (
		router   *gin.Engine
		sets     []*services.Subpages
		subpages *services.Subpages
	)

	BeforeEach(func() {
		sets = services.NewSubpageSets(99)
		subpages = sets[0]
		router = gin.New()
		handlers.RegisterHandlers(router, handlers.New(services.NewSleeper(), sets...))
	})

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
		return w
	}

	It("should greet", func() {
		w := get("/hello")

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("Hello, world!\n"))
	})

	Context("sleep", func() {
		It("should sleep within the requested bounds", func() {
			w := get("/sleep?min=5&max=10")

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchRegexp(`^Slept for (5|6|7|8|9|10)ms\n$`))
		})

		DescribeTable("should reject invalid bounds",
			func(query string) {
				w := get("/sleep?" + query)

				Expect(w.Code).To(Equal(http.StatusBadRequest))
			},
			Entry("max equal to min", "min=5&max=5"),
			Entry("max below min", "min=10&max=5"),
			Entry("max below default min", "max=100"),
			Entry("non-numeric min", "min=abc"),
			Entry("negative max", "max=-1"),
		)

		DescribeTable("should serve every sleep route",
			func(path string) {
				w := get(path + "?min=1&max=3")

				Expect(w.Code).To(Equal(http.StatusOK))
				Expect(w.Body.String()).To(MatchRegexp(`^Slept for [123]ms\n$`))
			},
			Entry("plain", "/sleep"),
			Entry("service", "/sleep-service"),
			Entry("arc service", "/sleep-arc-service"),
		)

		It("should explain a bad range", func() {
			w := get("/sleep?min=10&max=5")

			Expect(w.Body.String()).To(ContainSubstring("min must be less than max"))
		})
	})

	Context("subpages", func() {
		It("should list every subpage", func() {
			w := get("/subpages")

			Expect(w.Code).To(Equal(http.StatusOK))
			lines := strings.Split(strings.TrimSuffix(w.Body.String(), "\n"), "\n")
			Expect(lines).To(HaveLen(services.SubpageCount))
		})

		It("should serve a listed subpage", func() {
			key := subpages.Keys()[3]
			want, err := subpages.Get(key)
			Expect(err).NotTo(HaveOccurred())

			w := get("/subpages/" + key)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.Bytes()).To(Equal(want))
		})

		It("should answer 404 for an unknown key", func() {
			w := get("/subpages/doesnotexist")

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(Equal("404\n"))
		})
	})

	Context("subpage variants", func() {
		DescribeTable("should serve an independent set under each prefix",
			func(i int, prefix string) {
				sp := sets[i]
				Expect(sp.Prefix()).To(Equal(prefix))

				w := get(prefix)
				Expect(w.Code).To(Equal(http.StatusOK))
				Expect(w.Body.String()).To(Equal(sp.Index()))
				Expect(w.Body.String()).To(HavePrefix(prefix + "/"))

				key := sp.Keys()[0]
				want, err := sp.Get(key)
				Expect(err).NotTo(HaveOccurred())
				page := get(prefix + "/" + key)
				Expect(page.Code).To(Equal(http.StatusOK))
				Expect(page.Body.Bytes()).To(Equal(want))
			},
			Entry("arc", 1, "/subpages-arc"),
			Entry("service", 2, "/subpages-service"),
		)

		It("should not share pages between prefixes", func() {
			Expect(sets[1].Keys()).NotTo(Equal(subpages.Keys()))
			Expect(sets[2].Keys()).NotTo(Equal(sets[1].Keys()))

			w := get("/subpages-arc/" + subpages.Keys()[0])

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("status", func() {
		It("should answer with the requested code", func() {
			w := get("/status/503")

			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(w.Body.String()).To(Equal("503 Service Unavailable\n"))
		})

		DescribeTable("should reject invalid codes",
			func(code string) {
				Expect(get("/status/" + code).Code).To(Equal(http.StatusBadRequest))
			},
			Entry("not a number", "teapot"),
			Entry("informational", "100"),
			Entry("out of range", "600"),
		)
	})
})
