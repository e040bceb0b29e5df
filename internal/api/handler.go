// Package api exposes the tracking service to the chat frontend over a
// small JSON API. The conversation state machine itself lives in the
// frontend; this is only the seam it calls through.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"airtrack-service/internal/domain/entity"
	"airtrack-service/internal/usecase"
	"airtrack-service/pkg/logger"
)

type Handler struct {
	tracker *usecase.TrackerService
	logger  logger.Logger
}

func NewHandler(tracker *usecase.TrackerService, log logger.Logger) *Handler {
	return &Handler{tracker: tracker, logger: log}
}

// Register mounts all routes on the router.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Healthy")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := router.Group("/users/:userID")
	users.POST("", h.registerUser)
	users.GET("/directions", h.listDirections)
	users.POST("/directions", h.track)
	users.DELETE("/directions/:directionID", h.untrack)

	directions := router.Group("/directions")
	directions.GET("/:directionID/tickets", h.directionTickets)
	directions.POST("/calendar", h.calendar)
}

type directionRequest struct {
	StartCode    string `json:"start_code" binding:"required"`
	StartName    string `json:"start_name" binding:"required"`
	EndCode      string `json:"end_code" binding:"required"`
	EndName      string `json:"end_name" binding:"required"`
	WithTransfer bool   `json:"with_transfer"`
	DepartureAt  string `json:"departure_at" binding:"required"`
	ReturnAt     string `json:"return_at"`
}

func (r directionRequest) toDirection() (entity.FlightDirection, error) {
	direction := entity.FlightDirection{
		StartCode:    r.StartCode,
		StartName:    r.StartName,
		EndCode:      r.EndCode,
		EndName:      r.EndName,
		WithTransfer: r.WithTransfer,
		DepartureAt:  r.DepartureAt,
		ReturnAt:     r.ReturnAt,
	}
	if _, err := direction.DepartureDate(); err != nil {
		return entity.FlightDirection{}, err
	}
	if _, _, err := direction.ReturnDate(); err != nil {
		return entity.FlightDirection{}, err
	}
	return direction, nil
}

func (h *Handler) registerUser(c *gin.Context) {
	userID, err := pathID(c, "userID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if err := h.tracker.RegisterUser(c.Request.Context(), userID); err != nil {
		h.logger.Error("failed to register user", "userID", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) track(c *gin.Context) {
	userID, err := pathID(c, "userID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req directionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	direction, err := req.toDirection()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departure or return date"})
		return
	}

	tickets, directionID, err := h.tracker.Track(c.Request.Context(), userID, direction)
	switch {
	case errors.Is(err, entity.ErrTrackingLimit):
		c.JSON(http.StatusConflict, gin.H{"error": "tracked directions limit reached"})
		return
	case err != nil:
		h.logger.Error("failed to track direction", "userID", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "tracking failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"direction_id": directionID,
		"tickets":      ticketResponses(tickets),
	})
}

func (h *Handler) listDirections(c *gin.Context) {
	userID, err := pathID(c, "userID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	infos, err := h.tracker.UserDirections(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list directions", "userID", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	c.JSON(http.StatusOK, directionResponses(infos))
}

func (h *Handler) untrack(c *gin.Context) {
	userID, err := pathID(c, "userID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	directionID, err := pathID(c, "directionID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid direction id"})
		return
	}
	if err := h.tracker.Untrack(c.Request.Context(), userID, directionID); err != nil {
		h.logger.Error("failed to untrack direction", "userID", userID, "directionID", directionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "untracking failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) directionTickets(c *gin.Context) {
	directionID, err := pathID(c, "directionID")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid direction id"})
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
	}
	tickets, err := h.tracker.DirectionTickets(c.Request.Context(), directionID, limit)
	if err != nil {
		h.logger.Error("failed to get tickets", "directionID", directionID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing tickets failed"})
		return
	}
	c.JSON(http.StatusOK, ticketResponses(tickets))
}

type calendarRequest struct {
	directionRequest
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required,min=1,max=12"`
}

func (h *Handler) calendar(c *gin.Context) {
	var req calendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	direction, err := req.toDirection()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departure or return date"})
		return
	}
	prices, err := h.tracker.MonthPrices(c.Request.Context(), direction, req.Year, req.Month)
	if err != nil {
		h.logger.Error("failed to get month prices", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "price source unavailable"})
		return
	}
	out := make(map[string]ticketResponse, len(prices))
	for date, ticket := range prices {
		out[date] = toTicketResponse(ticket)
	}
	c.JSON(http.StatusOK, out)
}

func pathID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
