package main

import (
	"context"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jwodder/axum-hammer/internal/config"
	"github.com/jwodder/axum-hammer/internal/models"
	"github.com/jwodder/axum-hammer/internal/services"
	"github.com/jwodder/axum-hammer/pkg/client"
	srvErrors "github.com/jwodder/axum-hammer/pkg/errors"
	"github.com/jwodder/axum-hammer/test/e2e/service"
)

var _ = Describe("hammer against nail", Ordered, func() {
	var (
		ctx     context.Context
		nail    *service.NailSvc
		hammer  *services.Hammer
		nailURL string
	)

	BeforeAll(func() {
		var err error
		nailURL, err = infraManager.StartNail()
		Expect(err).NotTo(HaveOccurred())

		nail, err = service.NewNailService(nailURL)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterAll(func() {
		Expect(infraManager.StopNail()).To(Succeed())
	})

	BeforeEach(func() {
		ctx = context.Background()
		probe, err := client.NewClient(client.Config{})
		Expect(err).NotTo(HaveOccurred())
		hammer = services.NewHammerService(client.NewFactory(client.Config{UserAgent: "hammer-e2e"}), probe)
	})

	It("should wait for nail and hammer /hello", func() {
		before, err := nail.RequestCount(ctx, "/hello", http.StatusOK)
		Expect(err).NotTo(HaveOccurred())

		run, err := hammer.Run(ctx, services.RunSpec{
			Target:     nail.URL("/hello"),
			Source:     config.SourceRepeat,
			Requests:   20,
			Workers:    []int{1, 4},
			BufferSize: 32,
			WaitReady:  10 * time.Second,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(run.Traversals).To(HaveLen(2))
		Expect(hammer.State()).To(Equal(models.RunStateCompleted))

		after, err := nail.RequestCount(ctx, "/hello", http.StatusOK)
		Expect(err).NotTo(HaveOccurred())
		// the readiness probe adds one
		Expect(after - before).To(BeNumerically(">=", 40))
	})

	// Given a /sleep endpoint taking about 100ms per request
	// When 8 requests are made with 1 and then 8 workers
	// Then the 8-worker traversal is several times faster
	It("should finish sooner with more workers", func() {
		run, err := hammer.Run(ctx, services.RunSpec{
			Target:     nail.URLWithQuery("/sleep", "min=100&max=110"),
			Source:     config.SourceRepeat,
			Requests:   8,
			Workers:    []int{1, 8},
			BufferSize: 32,
		})

		Expect(err).NotTo(HaveOccurred())
		serial, parallel := run.Traversals[0], run.Traversals[1]
		Expect(serial.Elapsed).To(BeNumerically(">=", 800*time.Millisecond))
		Expect(parallel.Elapsed).To(BeNumerically("<", serial.Elapsed/3))
		for _, t := range run.Traversals {
			Expect(t.Stats.Min).To(BeNumerically(">=", 100*time.Millisecond))
		}
	})

	It("should traverse the subpages", func() {
		before, err := nail.RequestCount(ctx, "/subpages/:key", http.StatusOK)
		Expect(err).NotTo(HaveOccurred())

		run, err := hammer.Run(ctx, services.RunSpec{
			Target:     nail.URL("/subpages"),
			Source:     config.SourceSubpages,
			Requests:   services.SubpageCount,
			Workers:    []int{5},
			BufferSize: 8,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(run.Traversals[0].RequestTimes).To(HaveLen(services.SubpageCount))

		after, err := nail.RequestCount(ctx, "/subpages/:key", http.StatusOK)
		Expect(err).NotTo(HaveOccurred())
		Expect(after - before).To(BeNumerically("==", services.SubpageCount))
	})

	It("should abort the run on a server error", func() {
		before, err := nail.RequestCount(ctx, "/status/:code", http.StatusInternalServerError)
		Expect(err).NotTo(HaveOccurred())

		run, err := hammer.Run(ctx, services.RunSpec{
			Target:     nail.URL("/status/500"),
			Source:     config.SourceRepeat,
			Requests:   50,
			Workers:    []int{4},
			BufferSize: 32,
		})

		Expect(srvErrors.IsStatusError(err)).To(BeTrue())
		Expect(run.Traversals).To(BeEmpty())
		Expect(hammer.State()).To(Equal(models.RunStateFailed))

		after, err := nail.RequestCount(ctx, "/status/:code", http.StatusInternalServerError)
		Expect(err).NotTo(HaveOccurred())
		Expect(after - before).To(BeNumerically("<", 50))
	})
})
