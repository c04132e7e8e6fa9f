package load

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"freight-tms/internal/domain/company"
	domainLoad "freight-tms/internal/domain/load"
	"freight-tms/pkg/utils"
)

// validateParties checks that every referenced party exists and is active in
// the company directory. Nil references are legal; loads are built up
// incrementally.
func (s *Service) validateParties(ctx context.Context, brokerID, shipperID, carrierID *uuid.UUID) error {
	checks := []struct {
		field string
		id    *uuid.UUID
	}{
		{"broker_id", brokerID},
		{"shipper_id", shipperID},
		{"carrier_id", carrierID},
	}

	var violations []utils.FieldViolation
	for _, c := range checks {
		if c.id == nil {
			continue
		}
		ok, err := s.companyRepo.Exists(ctx, *c.id)
		if err != nil {
			return fmt.Errorf("checking %s: %w", c.field, err)
		}
		if !ok {
			violations = append(violations, utils.FieldViolation{
				Field:   c.field,
				Rule:    "exists",
				Message: fmt.Sprintf("company %s not found or inactive", c.id),
			})
		}
	}

	if len(violations) > 0 {
		return &utils.ValidationErrors{Violations: violations}
	}
	return nil
}

// validateCarrierType additionally confirms a carrier reference points at a
// carrier-type company, used on the offer path where the id is mandatory.
func (s *Service) validateCarrierType(ctx context.Context, carrierID uuid.UUID) error {
	c, err := s.companyRepo.GetByID(ctx, carrierID)
	if err != nil {
		if err == company.ErrCompanyNotFound {
			return &utils.ValidationErrors{Violations: []utils.FieldViolation{{
				Field:   "carrier_id",
				Rule:    "exists",
				Message: fmt.Sprintf("company %s not found", carrierID),
			}}}
		}
		return err
	}
	if c.Type != company.TypeCarrier {
		return &utils.ValidationErrors{Violations: []utils.FieldViolation{{
			Field:   "carrier_id",
			Rule:    "company_type",
			Message: fmt.Sprintf("company %s is not a carrier", carrierID),
		}}}
	}
	return nil
}

// validateWindows rejects inverted time windows on a load.
func validateWindows(req *CreateLoadRequest) error {
	var violations []utils.FieldViolation

	if req.PickupEarliest != nil && req.PickupLatest != nil && req.PickupLatest.Before(*req.PickupEarliest) {
		violations = append(violations, utils.FieldViolation{
			Field:   "pickup_latest",
			Rule:    "window",
			Message: "pickup window end precedes its start",
		})
	}
	if req.DeliveryEarliest != nil && req.DeliveryLatest != nil && req.DeliveryLatest.Before(*req.DeliveryEarliest) {
		violations = append(violations, utils.FieldViolation{
			Field:   "delivery_latest",
			Rule:    "window",
			Message: "delivery window end precedes its start",
		})
	}
	if req.PickupEarliest != nil && req.DeliveryLatest != nil && req.DeliveryLatest.Before(*req.PickupEarliest) {
		violations = append(violations, utils.FieldViolation{
			Field:   "delivery_latest",
			Rule:    "window",
			Message: "delivery window ends before pickup window starts",
		})
	}

	if len(violations) > 0 {
		return &utils.ValidationErrors{Violations: violations}
	}
	return nil
}

// validateCargoStops confirms that the cargo line's stop references resolve
// to stops of the same load and of the right type.
func (s *Service) validateCargoStops(ctx context.Context, loadID uuid.UUID, pickupStopID, deliveryStopID *uuid.UUID) error {
	var violations []utils.FieldViolation

	check := func(field string, stopID uuid.UUID, want domainLoad.StopType) error {
		stop, err := s.stopRepo.GetStop(ctx, stopID)
		if err != nil {
			if err == domainLoad.ErrStopNotFound {
				violations = append(violations, utils.FieldViolation{
					Field:   field,
					Rule:    "exists",
					Message: fmt.Sprintf("stop %s not found", stopID),
				})
				return nil
			}
			return err
		}
		if stop.LoadID != loadID {
			violations = append(violations, utils.FieldViolation{
				Field:   field,
				Rule:    "same_load",
				Message: fmt.Sprintf("stop %s belongs to a different load", stopID),
			})
			return nil
		}
		if stop.StopType != want {
			violations = append(violations, utils.FieldViolation{
				Field:   field,
				Rule:    "stop_type",
				Message: fmt.Sprintf("stop %s is not a %s stop", stopID, want),
			})
		}
		return nil
	}

	if pickupStopID != nil {
		if err := check("pickup_stop_id", *pickupStopID, domainLoad.StopTypePickup); err != nil {
			return err
		}
	}
	if deliveryStopID != nil {
		if err := check("delivery_stop_id", *deliveryStopID, domainLoad.StopTypeDelivery); err != nil {
			return err
		}
	}

	if len(violations) > 0 {
		return &utils.ValidationErrors{Violations: violations}
	}
	return nil
}

// validateTempRange rejects an inverted temperature band on cargo.
func validateTempRange(tempRequired bool, minF, maxF *float64) error {
	if !tempRequired {
		return nil
	}
	if minF != nil && maxF != nil && *maxF < *minF {
		return &utils.ValidationErrors{Violations: []utils.FieldViolation{{
			Field:   "temp_max_f",
			Rule:    "range",
			Message: "temperature maximum below minimum",
		}}}
	}
	return nil
}
