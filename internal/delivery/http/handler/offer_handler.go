package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freight-tms/internal/middleware"
	loadUsecase "freight-tms/internal/usecase/load"
	"freight-tms/pkg/utils"
)

type OfferHandler struct {
	service *loadUsecase.Service
}

func NewOfferHandler(service *loadUsecase.Service) *OfferHandler {
	return &OfferHandler{service: service}
}

func (h *OfferHandler) RegisterReadRoutes(router *gin.RouterGroup) {
	loads := router.Group("/loads/:id")
	{
		loads.GET("/offers", h.ListOffers)
		loads.GET("/offers/:offerId", h.GetOffer)
		loads.GET("/assignments", h.ListAssignments)
	}
}

func (h *OfferHandler) RegisterDispatchRoutes(router *gin.RouterGroup) {
	loads := router.Group("/loads/:id")
	{
		loads.POST("/offers", h.CreateOffer)
		loads.POST("/offers/:offerId/accept", h.AcceptOffer)
		loads.POST("/offers/:offerId/reject", h.RejectOffer)
		loads.POST("/assignments", h.CreateAssignment)
		loads.POST("/unassign", h.Unassign)
	}
}

func (h *OfferHandler) CreateOffer(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req loadUsecase.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CreateOffer(c.Request.Context(), middleware.GetTenantID(c), loadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Offer created successfully", result)
}

func (h *OfferHandler) GetOffer(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	offerID, ok := parseIDParam(c, "offerId")
	if !ok {
		return
	}

	result, err := h.service.GetOffer(c.Request.Context(), middleware.GetTenantID(c), loadID, offerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Offer retrieved successfully", result)
}

func (h *OfferHandler) ListOffers(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ListOffers(c.Request.Context(), middleware.GetTenantID(c), loadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Offers retrieved successfully", result)
}

func (h *OfferHandler) AcceptOffer(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	offerID, ok := parseIDParam(c, "offerId")
	if !ok {
		return
	}

	result, err := h.service.AcceptOffer(c.Request.Context(), middleware.GetTenantID(c), loadID, offerID, actorPtr(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Offer accepted successfully", result)
}

func (h *OfferHandler) RejectOffer(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	offerID, ok := parseIDParam(c, "offerId")
	if !ok {
		return
	}

	result, err := h.service.RejectOffer(c.Request.Context(), middleware.GetTenantID(c), loadID, offerID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Offer rejected successfully", result)
}

func (h *OfferHandler) CreateAssignment(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req loadUsecase.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.CreateAssignment(c.Request.Context(), middleware.GetTenantID(c), loadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Assignment created successfully", result)
}

func (h *OfferHandler) ListAssignments(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.ListAssignments(c.Request.Context(), middleware.GetTenantID(c), loadID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignments retrieved successfully", result)
}

func (h *OfferHandler) Unassign(c *gin.Context) {
	loadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req loadUsecase.UnassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.service.Unassign(c.Request.Context(), middleware.GetTenantID(c), loadID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Assignment closed successfully", result)
}
