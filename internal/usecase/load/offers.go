package load

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainLoad "freight-tms/internal/domain/load"
	"freight-tms/internal/events"
	"freight-tms/internal/logger"
	"freight-tms/pkg/utils"
)

func (s *Service) CreateOffer(ctx context.Context, tenantID, loadID uuid.UUID, req *CreateOfferRequest) (*OfferResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	l, err := s.loadRepo.GetByID(ctx, tenantID, loadID)
	if err != nil {
		return nil, err
	}
	if l.Status.IsTerminal() {
		return nil, &domainLoad.TransitionError{
			From:   l.Status,
			To:     l.Status,
			Reason: "load is in a terminal status and no longer accepts offers",
		}
	}
	if err := s.validateCarrierType(ctx, req.CarrierID); err != nil {
		return nil, err
	}
	if req.ExpiresAt != nil && req.ExpiresAt.Before(time.Now()) {
		return nil, &utils.ValidationErrors{Violations: []utils.FieldViolation{{
			Field:   "expires_at",
			Rule:    "future",
			Message: "offer expiry is already in the past",
		}}}
	}

	offer := &domainLoad.Offer{
		LoadID:      loadID,
		CarrierID:   req.CarrierID,
		OfferedRate: req.OfferedRate,
		ExpiresAt:   req.ExpiresAt,
		Notes:       utils.SanitizeTextPtr(req.Notes),
	}

	if err := s.offerRepo.CreateOffer(ctx, offer); err != nil {
		return nil, fmt.Errorf("creating offer: %w", err)
	}

	logger.Info("offer created",
		zap.String("event", "offer_created"),
		zap.String("load_id", loadID.String()),
		zap.String("offer_id", offer.ID.String()),
		zap.String("carrier_id", req.CarrierID.String()),
		zap.Float64("offered_rate", req.OfferedRate),
	)

	return ToOfferResponse(offer), nil
}

func (s *Service) GetOffer(ctx context.Context, tenantID, loadID, offerID uuid.UUID) (*OfferResponse, error) {
	offer, err := s.getOwnedOffer(ctx, tenantID, loadID, offerID)
	if err != nil {
		return nil, err
	}
	return ToOfferResponse(offer), nil
}

func (s *Service) ListOffers(ctx context.Context, tenantID, loadID uuid.UUID) ([]OfferResponse, error) {
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}

	offers, err := s.offerRepo.ListOffers(ctx, loadID)
	if err != nil {
		return nil, err
	}

	out := make([]OfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, *ToOfferResponse(o))
	}
	return out, nil
}

// AcceptOffer accepts a carrier's bid. Acceptance is exclusive per load;
// the repository enforces that under a row lock. On success the load gains
// the offer's carrier, an assignment record opens (unless one is already
// open), and an offer-accepted event is published. The status itself does
// not move here; the dispatcher drives the assigned transition explicitly.
func (s *Service) AcceptOffer(ctx context.Context, tenantID, loadID, offerID uuid.UUID, actorID *uuid.UUID) (*OfferResponse, error) {
	l, err := s.loadRepo.GetByID(ctx, tenantID, loadID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getOwnedOffer(ctx, tenantID, loadID, offerID); err != nil {
		return nil, err
	}

	offer, err := s.offerRepo.AcceptOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	carrierID := offer.CarrierID
	l.CarrierID = &carrierID
	if err := s.loadRepo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("recording carrier on load: %w", err)
	}

	if _, err := s.offerRepo.OpenAssignment(ctx, loadID); err != nil {
		if err != domainLoad.ErrAssignmentNotFound {
			return nil, err
		}
		assignment := &domainLoad.Assignment{
			LoadID:     loadID,
			CarrierID:  &carrierID,
			AssignedAt: time.Now().UTC(),
		}
		if err := s.offerRepo.CreateAssignment(ctx, assignment); err != nil {
			return nil, fmt.Errorf("opening assignment: %w", err)
		}
	}

	logger.Info("offer accepted",
		zap.String("event", "offer_accepted"),
		zap.String("load_id", loadID.String()),
		zap.String("offer_id", offerID.String()),
		zap.String("carrier_id", carrierID.String()),
	)

	if s.publisher != nil {
		s.publisher.Publish(events.Event{
			Type:       events.TypeOfferAccepted,
			LoadID:     loadID,
			TenantID:   tenantID,
			OldStatus:  l.Status,
			NewStatus:  l.Status,
			ActorID:    actorID,
			OccurredAt: time.Now().UTC(),
		})
	}

	return ToOfferResponse(offer), nil
}

func (s *Service) RejectOffer(ctx context.Context, tenantID, loadID, offerID uuid.UUID) (*OfferResponse, error) {
	if _, err := s.getOwnedOffer(ctx, tenantID, loadID, offerID); err != nil {
		return nil, err
	}

	offer, err := s.offerRepo.RejectOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	logger.Info("offer rejected",
		zap.String("event", "offer_rejected"),
		zap.String("load_id", loadID.String()),
		zap.String("offer_id", offerID.String()),
	)

	return ToOfferResponse(offer), nil
}

func (s *Service) getOwnedOffer(ctx context.Context, tenantID, loadID, offerID uuid.UUID) (*domainLoad.Offer, error) {
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}
	offer, err := s.offerRepo.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.LoadID != loadID {
		return nil, domainLoad.ErrOfferNotFound
	}
	return offer, nil
}

// CreateAssignment opens an assignment directly, outside the offer flow.
// At most one assignment may be open per load; unassign first.
func (s *Service) CreateAssignment(ctx context.Context, tenantID, loadID uuid.UUID, req *CreateAssignmentRequest) (*AssignmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.CarrierID == nil && req.DriverID == nil && req.EquipmentID == nil {
		return nil, &utils.ValidationErrors{Violations: []utils.FieldViolation{{
			Field:   "carrier_id",
			Rule:    "required_without_all",
			Message: "at least one of carrier_id, driver_id or equipment_id is required",
		}}}
	}

	l, err := s.loadRepo.GetByID(ctx, tenantID, loadID)
	if err != nil {
		return nil, err
	}
	if req.CarrierID != nil {
		if err := s.validateCarrierType(ctx, *req.CarrierID); err != nil {
			return nil, err
		}
	}

	if _, err := s.offerRepo.OpenAssignment(ctx, loadID); err == nil {
		return nil, domainLoad.ErrAssignmentOpen
	} else if err != domainLoad.ErrAssignmentNotFound {
		return nil, err
	}

	assignedAt := time.Now().UTC()
	if req.AssignedAt != nil {
		assignedAt = *req.AssignedAt
	}
	assignment := &domainLoad.Assignment{
		LoadID:      loadID,
		CarrierID:   req.CarrierID,
		DriverID:    req.DriverID,
		EquipmentID: req.EquipmentID,
		AssignedAt:  assignedAt,
	}

	if err := s.offerRepo.CreateAssignment(ctx, assignment); err != nil {
		return nil, fmt.Errorf("creating assignment: %w", err)
	}

	if req.CarrierID != nil || req.DriverID != nil {
		if req.CarrierID != nil {
			l.CarrierID = req.CarrierID
		}
		if req.DriverID != nil {
			l.DriverID = req.DriverID
		}
		if err := s.loadRepo.Update(ctx, l); err != nil {
			return nil, fmt.Errorf("recording assignment parties on load: %w", err)
		}
	}

	logger.Info("assignment created",
		zap.String("event", "assignment_created"),
		zap.String("load_id", loadID.String()),
		zap.String("assignment_id", assignment.ID.String()),
	)

	return ToAssignmentResponse(assignment), nil
}

func (s *Service) ListAssignments(ctx context.Context, tenantID, loadID uuid.UUID) ([]AssignmentResponse, error) {
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}

	assignments, err := s.offerRepo.ListAssignments(ctx, loadID)
	if err != nil {
		return nil, err
	}

	out := make([]AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, *ToAssignmentResponse(a))
	}
	return out, nil
}

// Unassign closes the load's open assignment. The record stays in the
// history with its unassignment time and reason.
func (s *Service) Unassign(ctx context.Context, tenantID, loadID uuid.UUID, req *UnassignRequest) (*AssignmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}

	open, err := s.offerRepo.OpenAssignment(ctx, loadID)
	if err != nil {
		return nil, err
	}

	closed, err := s.offerRepo.CloseAssignment(ctx, open.ID, time.Now().UTC(), utils.SanitizeTextPtr(req.Reason))
	if err != nil {
		return nil, err
	}

	logger.Info("assignment closed",
		zap.String("event", "assignment_closed"),
		zap.String("load_id", loadID.String()),
		zap.String("assignment_id", closed.ID.String()),
	)

	return ToAssignmentResponse(closed), nil
}
