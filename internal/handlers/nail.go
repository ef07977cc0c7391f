package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jwodder/axum-hammer/internal/metrics"
	"github.com/jwodder/axum-hammer/internal/services"
	srvErrors "github.com/jwodder/axum-hammer/pkg/errors"
)

// Hello answers with a fixed greeting
// (GET /hello)
func (h *Handler) Hello(c *gin.Context) {
	c.String(http.StatusOK, "Hello, world!\n")
}

// Sleep waits a random number of milliseconds in [min, max] before answering
// (GET /sleep?min=&max=)
func (h *Handler) Sleep(c *gin.Context) {
	minMs, err := uintQuery(c, "min")
	if err != nil {
		c.String(http.StatusBadRequest, "invalid min: %v\n", err)
		return
	}
	maxMs, err := uintQuery(c, "max")
	if err != nil {
		c.String(http.StatusBadRequest, "invalid max: %v\n", err)
		return
	}

	params, err := services.NewSleepParams(minMs, maxMs)
	if err != nil {
		c.String(http.StatusBadRequest, "%v\n", err)
		return
	}

	d, err := h.sleeper.Sleep(c.Request.Context(), params)
	if err != nil {
		// client went away
		zap.S().Named("handlers").Debugw("sleep interrupted", "error", err)
		c.Status(http.StatusServiceUnavailable)
		return
	}
	metrics.SleepSeconds.Observe(d.Seconds())

	c.String(http.StatusOK, "Slept for %s\n", d)
}

// GetSubpageIndex lists every path of sp, one per line
// (GET /subpages, /subpages-arc, /subpages-service)
func (h *Handler) GetSubpageIndex(sp *services.Subpages) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "%s", sp.Index())
	}
}

// GetSubpage returns the body of one page of sp
// (GET /subpages/:key and the same below every other subpage prefix)
func (h *Handler) GetSubpage(sp *services.Subpages) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := sp.Get(c.Param("key"))
		if err != nil {
			if srvErrors.IsPageNotFoundError(err) {
				c.String(http.StatusNotFound, "404\n")
				return
			}
			c.String(http.StatusInternalServerError, "%v\n", err)
			return
		}
		metrics.SubpagesServedTotal.Inc()

		c.Data(http.StatusOK, "application/octet-stream", body)
	}
}

// GetStatus answers with the requested status code
// (GET /status/:code)
func (h *Handler) GetStatus(c *gin.Context) {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil || code < 200 || code > 599 {
		c.String(http.StatusBadRequest, "invalid status code %q\n", c.Param("code"))
		return
	}
	c.String(code, "%d %s\n", code, http.StatusText(code))
}

func uintQuery(c *gin.Context, key string) (*uint64, error) {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
