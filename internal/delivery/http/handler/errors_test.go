package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"freight-tms/internal/domain/load"
	"freight-tms/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runHandler(err error) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	handleServiceError(c, err)
	return w
}

func TestErrorTaxonomyStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"load not found", load.ErrLoadNotFound, http.StatusNotFound},
		{"stop not found", load.ErrStopNotFound, http.StatusNotFound},
		{"offer not found", load.ErrOfferNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", load.ErrLoadNotFound), http.StatusNotFound},
		{"unknown status", load.ErrUnknownStatus, http.StatusBadRequest},
		{"direct status write", load.ErrStatusImmutable, http.StatusBadRequest},
		{"field violations", &utils.ValidationErrors{Violations: []utils.FieldViolation{{Field: "load_number", Rule: "required"}}}, http.StatusBadRequest},
		{"invalid transition", load.NewTransitionError(load.StatusDraft, load.StatusDelivered, "no edge"), http.StatusConflict},
		{"lost race", load.ErrConcurrencyConflict, http.StatusConflict},
		{"duplicate load number", load.ErrDuplicateLoadNumber, http.StatusConflict},
		{"referenced stop", &load.ReferentialConflictError{StopID: uuid.New(), CargoIDs: []uuid.UUID{uuid.New()}}, http.StatusConflict},
		{"second accepted offer", load.ErrOfferAlreadyAccepted, http.StatusConflict},
		{"open assignment", load.ErrAssignmentOpen, http.StatusConflict},
		{"unclassified", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := runHandler(tc.err)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestTransitionErrorBodyCarriesBothSides(t *testing.T) {
	w := runHandler(load.NewTransitionError(load.StatusInTransit, load.StatusPaid, "no edge from in_transit to paid"))

	var body struct {
		Success bool `json:"success"`
		Errors  struct {
			Current   string `json:"current"`
			Requested string `json:"requested"`
			Reason    string `json:"reason"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Success {
		t.Error("success should be false")
	}
	if body.Errors.Current != "in_transit" || body.Errors.Requested != "paid" {
		t.Errorf("body pair = (%q, %q)", body.Errors.Current, body.Errors.Requested)
	}
	if body.Errors.Reason == "" {
		t.Error("reason missing")
	}
}

func TestReferentialConflictBodyListsCargo(t *testing.T) {
	stopID := uuid.New()
	cargoID := uuid.New()
	w := runHandler(&load.ReferentialConflictError{StopID: stopID, CargoIDs: []uuid.UUID{cargoID}})

	var body struct {
		Errors struct {
			StopID            uuid.UUID   `json:"stop_id"`
			ReferencingCargos []uuid.UUID `json:"referencing_cargos"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Errors.StopID != stopID {
		t.Errorf("stop_id = %s, want %s", body.Errors.StopID, stopID)
	}
	if len(body.Errors.ReferencingCargos) != 1 || body.Errors.ReferencingCargos[0] != cargoID {
		t.Errorf("referencing_cargos = %v", body.Errors.ReferencingCargos)
	}
}

func TestParseIDParamRejectsGarbage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	if _, ok := parseIDParam(c, "id"); ok {
		t.Error("malformed uuid accepted")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
