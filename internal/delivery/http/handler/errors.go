package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freight-tms/internal/domain/company"
	"freight-tms/internal/domain/load"
	"freight-tms/pkg/utils"
)

// handleServiceError maps service errors onto the HTTP taxonomy: missing
// records are 404, malformed or rule-breaking input is 400, and state
// conflicts (illegal transition, referenced record, lost race, duplicate
// key) are 409 with structured detail where available.
func handleServiceError(c *gin.Context, err error) {
	var verrs *utils.ValidationErrors
	if errors.As(err, &verrs) {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "Validation failed", verrs.Violations)
		return
	}

	var terr *load.TransitionError
	if errors.As(err, &terr) {
		utils.ErrorResponseWithDetails(c, http.StatusConflict, "Invalid status transition", gin.H{
			"current":   terr.From,
			"requested": terr.To,
			"reason":    terr.Reason,
		})
		return
	}

	var rerr *load.ReferentialConflictError
	if errors.As(err, &rerr) {
		utils.ErrorResponseWithDetails(c, http.StatusConflict, "Record is still referenced", gin.H{
			"stop_id":            rerr.StopID,
			"referencing_cargos": rerr.CargoIDs,
		})
		return
	}

	switch {
	case errors.Is(err, load.ErrLoadNotFound),
		errors.Is(err, load.ErrStopNotFound),
		errors.Is(err, load.ErrCargoNotFound),
		errors.Is(err, load.ErrOfferNotFound),
		errors.Is(err, load.ErrAssignmentNotFound),
		errors.Is(err, company.ErrCompanyNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())

	case errors.Is(err, load.ErrUnknownStatus),
		errors.Is(err, load.ErrStatusImmutable):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, load.ErrConcurrencyConflict),
		errors.Is(err, load.ErrDuplicateLoadNumber),
		errors.Is(err, load.ErrDuplicateStopNumber),
		errors.Is(err, load.ErrOfferAlreadyAccepted),
		errors.Is(err, load.ErrOfferClosed),
		errors.Is(err, load.ErrAssignmentClosed),
		errors.Is(err, load.ErrAssignmentOpen),
		errors.Is(err, load.ErrStopReferenced),
		errors.Is(err, load.ErrInvalidTransition):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())

	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// parseIDParam reads a uuid path parameter, answering 400 itself when the
// value is malformed.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
