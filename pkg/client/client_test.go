package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jwodder/axum-hammer/pkg/client"
	srvErrors "github.com/jwodder/axum-hammer/pkg/errors"
	"github.com/jwodder/axum-hammer/pkg/scheduler"
)

var _ = Describe("Client", func() {
	var (
		ctx    context.Context
		server *httptest.Server
		hits   atomic.Int64
	)

	BeforeEach(func() {
		ctx = context.Background()
		hits.Store(0)

		mux := http.NewServeMux()
		mux.HandleFunc("/hello", func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte("Hello, world!\n"))
		})
		mux.HandleFunc("/agent", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(r.UserAgent()))
		})
		mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(5 * time.Second):
			case <-r.Context().Done():
			}
		})
		mux.HandleFunc("/teapot", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})
		server = httptest.NewServer(mux)
	})

	AfterEach(func() {
		server.Close()
	})

	mustParse := func(path string) *url.URL {
		u, err := url.Parse(server.URL + path)
		Expect(err).NotTo(HaveOccurred())
		return u
	}

	Context("NewClient", func() {
		It("should reject an invalid proxy url", func() {
			_, err := client.NewClient(client.Config{ProxyURL: "not a proxy"})
			Expect(err).To(HaveOccurred())
		})

		It("should make the factory fail for an invalid proxy url", func() {
			factory := client.NewFactory(client.Config{ProxyURL: "::"})

			c, err := factory()

			Expect(err).To(HaveOccurred())
			Expect(c).To(BeNil())
		})
	})

	Context("Call", func() {
		It("should return the elapsed time of a successful request", func() {
			c, err := client.NewClient(client.Config{})
			Expect(err).NotTo(HaveOccurred())

			elapsed, err := c.Call(ctx, mustParse("/hello"))

			Expect(err).NotTo(HaveOccurred())
			Expect(elapsed).To(BeNumerically(">", 0))
			Expect(hits.Load()).To(BeEquivalentTo(1))
		})

		It("should report a non-success status as a StatusError", func() {
			c, err := client.NewClient(client.Config{})
			Expect(err).NotTo(HaveOccurred())

			_, err = c.Call(ctx, mustParse("/teapot"))

			Expect(srvErrors.IsStatusError(err)).To(BeTrue())
			Expect(srvErrors.IsTransportError(err)).To(BeFalse())
			Expect(err).To(MatchError(ContainSubstring("418")))
		})

		It("should report a refused connection as a TransportError", func() {
			c, err := client.NewClient(client.Config{})
			Expect(err).NotTo(HaveOccurred())
			u := mustParse("/hello")
			server.Close()

			_, err = c.Call(ctx, u)

			Expect(srvErrors.IsTransportError(err)).To(BeTrue())
			Expect(srvErrors.IsStatusError(err)).To(BeFalse())
		})

		It("should abandon the request when the context is cancelled", func() {
			c, err := client.NewClient(client.Config{})
			Expect(err).NotTo(HaveOccurred())

			callCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
			defer cancel()

			start := time.Now()
			_, err = c.Call(callCtx, mustParse("/slow"))

			Expect(err).To(MatchError(context.DeadlineExceeded))
			Expect(time.Since(start)).To(BeNumerically("<", 2*time.Second))
		})

		It("should honour the request timeout", func() {
			c, err := client.NewClient(client.Config{Timeout: 50 * time.Millisecond})
			Expect(err).NotTo(HaveOccurred())

			_, err = c.Call(ctx, mustParse("/slow"))

			Expect(srvErrors.IsTransportError(err)).To(BeTrue())
		})
	})

	Context("Get", func() {
		It("should send the configured user agent and return the body", func() {
			c, err := client.NewClient(client.Config{UserAgent: "hammer-test/1.0"})
			Expect(err).NotTo(HaveOccurred())

			body, err := c.Get(ctx, mustParse("/agent"))

			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(Equal("hammer-test/1.0"))
		})
	})

	Context("with the scheduler", func() {
		It("should drive every request through one client per worker", func() {
			urls := make([]*url.URL, 25)
			for i := range urls {
				urls[i] = mustParse("/hello")
			}

			s, err := scheduler.New(ctx, slices.Values(urls), 5, client.NewFactory(client.Config{}))
			Expect(err).NotTo(HaveOccurred())

			times, err := scheduler.TryCollect(ctx, s)

			Expect(err).NotTo(HaveOccurred())
			Expect(times).To(HaveLen(25))
			Expect(hits.Load()).To(BeEquivalentTo(25))
		})

		It("should stop at the first failing request", func() {
			urls := []*url.URL{mustParse("/teapot")}
			for range 10 {
				urls = append(urls, mustParse("/slow"))
			}

			s, err := scheduler.New(ctx, slices.Values(urls), 2, client.NewFactory(client.Config{}))
			Expect(err).NotTo(HaveOccurred())

			start := time.Now()
			_, err = scheduler.TryCollect(ctx, s)

			Expect(srvErrors.IsStatusError(err)).To(BeTrue())
			Expect(strings.Contains(err.Error(), "/teapot")).To(BeTrue())
			Expect(time.Since(start)).To(BeNumerically("<", 2*time.Second))
		})
	})
})
