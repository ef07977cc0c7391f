package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jwodder/axum-hammer/internal/services"
)

type Handler struct {
	subpages []*services.Subpages
	sleeper  *services.Sleeper
}

func New(sleeper *services.Sleeper, subpages ...*services.Subpages) *Handler {
	return &Handler{
		subpages: subpages,
		sleeper:  sleeper,
	}
}

// RegisterHandlers mounts every nail route on router. Each subpage set gets an index
// route at its prefix and a page route below it.
func RegisterHandlers(router gin.IRoutes, h *Handler) {
	router.GET("/hello", h.Hello)
	router.GET("/sleep", h.Sleep)
	router.GET("/sleep-service", h.Sleep)
	router.GET("/sleep-arc-service", h.Sleep)
	for _, sp := range h.subpages {
		router.GET(sp.Prefix(), h.GetSubpageIndex(sp))
		router.GET(sp.Prefix()+"/:key", h.GetSubpage(sp))
	}
	router.GET("/status/:code", h.GetStatus)
}
