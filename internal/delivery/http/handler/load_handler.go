package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freight-tms/internal/middleware"
	loadUsecase "freight-tms/internal/usecase/load"
	"freight-tms/pkg/utils"
)

type LoadHandler struct {
	service *loadUsecase.Service
}

func NewLoadHandler(service *loadUsecase.Service) *LoadHandler {
	return &LoadHandler{service: service}
}

// RegisterReadRoutes mounts the query endpoints, available to any
// authenticated role.
func (h *LoadHandler) RegisterReadRoutes(router *gin.RouterGroup) {
	loads := router.Group("/loads")
	{
		loads.GET("", h.ListLoads)
		loads.GET("/statistics", h.GetStatistics)
		loads.GET("/:id", h.GetLoad)
		loads.GET("/:id/history", h.ListHistory)
		loads.GET("/:id/timeline", h.GetTimeline)
		loads.GET("/:id/allowed-transitions", h.AllowedTransitions)
	}
}

// RegisterDispatchRoutes mounts the mutation endpoints, restricted to
// dispatcher and admin roles.
func (h *LoadHandler) RegisterDispatchRoutes(router *gin.RouterGroup) {
	loads := router.Group("/loads")
	{
		loads.POST("", h.CreateLoad)
		loads.PUT("/:id", h.UpdateLoad)
		loads.POST("/:id/status", h.Transition)
	}
}

func (h *LoadHandler) CreateLoad(c *gin.Context) {
	var req loadUsecase.CreateLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CreateLoad(c.Request.Context(), middleware.GetTenantID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Load created successfully", result)
}

func (h *LoadHandler) GetLoad(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetLoad(c.Request.Context(), middleware.GetTenantID(c), loadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Load retrieved successfully", result)
}

func (h *LoadHandler) UpdateLoad(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req loadUsecase.UpdateLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdateLoad(c.Request.Context(), middleware.GetTenantID(c), loadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Load updated successfully", result)
}

func (h *LoadHandler) Transition(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req loadUsecase.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Transition(c.Request.Context(), middleware.GetTenantID(c), loadID, actorPtr(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Load status updated successfully", result)
}

func (h *LoadHandler) ListLoads(c *gin.Context) {
	req, err := parseLoadFilter(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, svcErr := h.service.ListLoads(c.Request.Context(), middleware.GetTenantID(c), req)
	if svcErr != nil {
		handleServiceError(c, svcErr)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Loads retrieved successfully", result)
}

func (h *LoadHandler) GetStatistics(c *gin.Context) {
	result, err := h.service.GetStatistics(c.Request.Context(), middleware.GetTenantID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Statistics retrieved successfully", result)
}

func (h *LoadHandler) ListHistory(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ListHistory(c.Request.Context(), middleware.GetTenantID(c), loadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Status history retrieved successfully", result)
}

func (h *LoadHandler) GetTimeline(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetTimeline(c.Request.Context(), middleware.GetTenantID(c), loadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Timeline retrieved successfully", result)
}

func (h *LoadHandler) AllowedTransitions(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.AllowedTransitions(c.Request.Context(), middleware.GetTenantID(c), loadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Allowed transitions retrieved successfully", result)
}

// actorPtr converts the authenticated user id into a nullable actor
// reference for history rows.
func actorPtr(c *gin.Context) *uuid.UUID {
	id := middleware.GetUserID(c)
	if id == uuid.Nil {
		return nil
	}
	return &id
}

// parseLoadFilter reads the listing filters from the query string. UUID and
// time filters are parsed here; gin's query binding does not reach into
// those types.
func parseLoadFilter(c *gin.Context) (*loadUsecase.LoadFilterRequest, error) {
	req := &loadUsecase.LoadFilterRequest{
		Status:    c.Query("status"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	uuidFields := []struct {
		name string
		dst  **uuid.UUID
	}{
		{"broker_id", &req.BrokerID},
		{"shipper_id", &req.ShipperID},
		{"carrier_id", &req.CarrierID},
		{"driver_id", &req.DriverID},
		{"dispatcher_id", &req.DispatcherID},
	}
	for _, f := range uuidFields {
		if raw := c.Query(f.name); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, &queryError{f.name}
			}
			*f.dst = &id
		}
	}

	timeFields := []struct {
		name string
		dst  **time.Time
	}{
		{"created_after", &req.CreatedAfter},
		{"created_before", &req.CreatedBefore},
		{"pickup_after", &req.PickupAfter},
		{"pickup_before", &req.PickupBefore},
	}
	for _, f := range timeFields {
		if raw := c.Query(f.name); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				return nil, &queryError{f.name}
			}
			*f.dst = &t
		}
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &queryError{"page"}
		}
		req.Page = page
	}
	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &queryError{"page_size"}
		}
		req.PageSize = size
	}
	req.PostedOnly = c.Query("posted_only") == "true"
	req.ExcludeTerminal = c.Query("exclude_terminal") == "true"

	return req, nil
}

type queryError struct {
	field string
}

func (e *queryError) Error() string {
	return "invalid query parameter: " + e.field
}
