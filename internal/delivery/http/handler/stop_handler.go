package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freight-tms/internal/middleware"
	loadUsecase "freight-tms/internal/usecase/load"
	"freight-tms/pkg/utils"
)

type StopHandler struct {
	service *loadUsecase.Service
}

func NewStopHandler(service *loadUsecase.Service) *StopHandler {
	return &StopHandler{service: service}
}

func (h *StopHandler) RegisterReadRoutes(router *gin.RouterGroup) {
	loads := router.Group("/loads/:id")
	{
		loads.GET("/stops", h.ListStops)
		loads.GET("/stops/:stopId", h.GetStop)
		loads.GET("/cargo", h.ListCargo)
		loads.GET("/cargo/:cargoId", h.GetCargo)
	}
}

func (h *StopHandler) RegisterDispatchRoutes(router *gin.RouterGroup) {
	loads := router.Group("/loads/:id")
	{
		loads.POST("/stops", h.CreateStop)
		loads.PUT("/stops/:stopId", h.UpdateStop)
		loads.DELETE("/stops/:stopId", h.DeleteStop)
		loads.POST("/cargo", h.CreateCargo)
		loads.PUT("/cargo/:cargoId", h.UpdateCargo)
		loads.DELETE("/cargo/:cargoId", h.DeleteCargo)
	}
}

func (h *StopHandler) CreateStop(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req loadUsecase.CreateStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CreateStop(c.Request.Context(), middleware.GetTenantID(c), loadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Stop created successfully", result)
}

func (h *StopHandler) GetStop(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	stopID, ok := parseIDParam(c, "stopId")
	if !ok {
		return
	}

	result, err := h.service.GetStop(c.Request.Context(), middleware.GetTenantID(c), loadID, stopID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Stop retrieved successfully", result)
}

func (h *StopHandler) UpdateStop(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	stopID, ok := parseIDParam(c, "stopId")
	if !ok {
		return
	}

	var req loadUsecase.UpdateStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdateStop(c.Request.Context(), middleware.GetTenantID(c), loadID, stopID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Stop updated successfully", result)
}

func (h *StopHandler) DeleteStop(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	stopID, ok := parseIDParam(c, "stopId")
	if !ok {
		return
	}

	if err := h.service.DeleteStop(c.Request.Context(), middleware.GetTenantID(c), loadID, stopID); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Stop deleted successfully", nil)
}

func (h *StopHandler) ListStops(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ListStops(c.Request.Context(), middleware.GetTenantID(c), loadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Stops retrieved successfully", result)
}

func (h *StopHandler) ListCargo(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ListCargo(c.Request.Context(), middleware.GetTenantID(c), loadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cargo retrieved successfully", result)
}

func (h *StopHandler) CreateCargo(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req loadUsecase.CreateCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CreateCargo(c.Request.Context(), middleware.GetTenantID(c), loadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Cargo created successfully", result)
}

func (h *StopHandler) GetCargo(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	cargoID, ok := parseIDParam(c, "cargoId")
	if !ok {
		return
	}

	result, err := h.service.GetCargo(c.Request.Context(), middleware.GetTenantID(c), loadID, cargoID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cargo retrieved successfully", result)
}

func (h *StopHandler) UpdateCargo(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	cargoID, ok := parseIDParam(c, "cargoId")
	if !ok {
		return
	}

	var req loadUsecase.UpdateCargoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.UpdateCargo(c.Request.Context(), middleware.GetTenantID(c), loadID, cargoID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cargo updated successfully", result)
}

func (h *StopHandler) DeleteCargo(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	cargoID, ok := parseIDParam(c, "cargoId")
	if !ok {
		return
	}

	if err := h.service.DeleteCargo(c.Request.Context(), middleware.GetTenantID(c), loadID, cargoID); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cargo deleted successfully", nil)
}
