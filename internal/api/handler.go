package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rmaia/floodwatch/internal/event"
	"github.com/rmaia/floodwatch/internal/models"
	"github.com/rmaia/floodwatch/internal/repository"
	"github.com/rmaia/floodwatch/internal/store"
)

type Handler struct {
	routes    *store.RouteStore
	alerts    *store.AlertStore
	settings  *store.Settings
	archive   repository.Archive
	bus       *event.Bus
	maxRoutes int
}

func NewHandler(routes *store.RouteStore, alerts *store.AlertStore, settings *store.Settings, archive repository.Archive, bus *event.Bus, maxRoutes int) *Handler {
	return &Handler{
		routes:    routes,
		alerts:    alerts,
		settings:  settings,
		archive:   archive,
		bus:       bus,
		maxRoutes: maxRoutes,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.GET("/routes", h.listRoutes)
	v1.POST("/routes", h.createRoute)
	v1.PATCH("/routes/:id", h.updateRoute)
	v1.DELETE("/routes/:id", h.deleteRoute)

	v1.GET("/alerts", h.listAlerts)
	v1.POST("/alerts/:id/read", h.markAlertRead)
	v1.DELETE("/alerts/:id", h.removeAlert)
	v1.GET("/alert-history", h.alertHistory)

	v1.GET("/toast", h.currentToast)
	v1.DELETE("/toast", h.dismissToast)

	v1.GET("/stream", h.streamEvents)

	v1.GET("/settings", h.getSettings)
	v1.PUT("/settings", h.putSettings)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type createRouteRequest struct {
	Name         string `json:"name" binding:"required"`
	StartAddress string `json:"start_address" binding:"required"`
	EndAddress   string `json:"end_address" binding:"required"`
}

type updateRouteRequest struct {
	Name         *string `json:"name"`
	StartAddress *string `json:"start_address"`
	EndAddress   *string `json:"end_address"`
}

func (h *Handler) listRoutes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"routes": h.routes.List()})
}

func (h *Handler) createRoute(c *gin.Context) {
	var req createRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, start_address and end_address are required"})
		return
	}

	route, err := h.routes.Add(c.Request.Context(), req.Name, req.StartAddress, req.EndAddress)
	if err != nil {
		// The only rejection Add produces is the route limit; it is
		// surfaced as a blocking user message with no state change.
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("route limit of %d reached, delete a route before adding another", h.maxRoutes),
		})
		return
	}

	c.JSON(http.StatusCreated, route)
}

func (h *Handler) updateRoute(c *gin.Context) {
	var req updateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	// Unknown ids are a silent no-op by contract.
	h.routes.Update(c.Request.Context(), c.Param("id"), store.Partial{
		Name:         req.Name,
		StartAddress: req.StartAddress,
		EndAddress:   req.EndAddress,
	})

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (h *Handler) deleteRoute(c *gin.Context) {
	h.routes.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) listAlerts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"alerts": h.alerts.List()})
}

func (h *Handler) markAlertRead(c *gin.Context) {
	h.alerts.MarkRead(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) removeAlert(c *gin.Context) {
	h.alerts.Remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) alertHistory(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "alert history not enabled"})
		return
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if lim, err := strconv.Atoi(l); err == nil && lim > 0 && lim <= 500 {
			limit = lim
		}
	}

	alerts, err := h.archive.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch alert history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

func (h *Handler) currentToast(c *gin.Context) {
	a, ok := h.alerts.Current()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) dismissToast(c *gin.Context) {
	h.alerts.DismissCurrent()
	c.Status(http.StatusNoContent)
}

// streamEvents pushes route events to the client as server-sent events
// until the client disconnects or the bus shuts down.
func (h *Handler) streamEvents(c *gin.Context) {
	id, ch := h.bus.Subscribe()
	defer h.bus.Unsubscribe(id)

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(string(ev.Kind), ev)
			return true
		}
	})
}

func (h *Handler) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Snapshot())
}

func (h *Handler) putSettings(c *gin.Context) {
	var ns models.NotificationSettings
	if err := c.ShouldBindJSON(&ns); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.settings.Update(ns)
	c.JSON(http.StatusOK, h.settings.Snapshot())
}
