package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"freight-tms/internal/middleware"
	loadUsecase "freight-tms/internal/usecase/load"
	"freight-tms/pkg/utils"
)

type TrackingHandler struct {
	service *loadUsecase.Service
}

func NewTrackingHandler(service *loadUsecase.Service) *TrackingHandler {
	return &TrackingHandler{service: service}
}

func (h *TrackingHandler) RegisterReadRoutes(router *gin.RouterGroup) {
	loads := router.Group("/loads/:id")
	{
		loads.GET("/events", h.ListEvents)
		loads.GET("/events/:eventId", h.GetEvent)
		loads.GET("/tracking", h.ListPings)
	}
}

// RegisterWriteRoutes mounts the submission endpoints; drivers on the road
// post both events and pings.
func (h *TrackingHandler) RegisterWriteRoutes(router *gin.RouterGroup) {
	loads := router.Group("/loads/:id")
	{
		loads.POST("/events", h.CreateEvent)
		loads.POST("/tracking", h.CreatePing)
	}
}

func (h *TrackingHandler) CreateEvent(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req loadUsecase.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CreateStatusEvent(c.Request.Context(), middleware.GetTenantID(c), loadID, actorPtr(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Event recorded successfully", result)
}

func (h *TrackingHandler) GetEvent(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	eventID, ok := parseIDParam(c, "eventId")
	if !ok {
		return
	}

	result, err := h.service.GetStatusEvent(c.Request.Context(), middleware.GetTenantID(c), loadID, eventID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Event retrieved successfully", result)
}

func (h *TrackingHandler) ListEvents(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	limit := parseLimit(c)
	result, err := h.service.ListStatusEvents(c.Request.Context(), middleware.GetTenantID(c), loadID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Events retrieved successfully", result)
}

func (h *TrackingHandler) CreatePing(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req loadUsecase.CreatePingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.RecordPing(c.Request.Context(), middleware.GetTenantID(c), loadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Tracking ping recorded successfully", result)
}

func (h *TrackingHandler) ListPings(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	limit := parseLimit(c)
	result, err := h.service.ListPings(c.Request.Context(), middleware.GetTenantID(c), loadID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Tracking pings retrieved successfully", result)
}

func parseLimit(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
