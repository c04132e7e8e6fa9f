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

// Transition moves a load to a new status. The request may use legacy
// status aliases; the stored value is always canonical. A request for the
// load's current status is an idempotent no-op and writes no history.
//
// The write itself is a single transaction: the row is locked, the stored
// status is compared against the one this call observed, and the history
// row is appended together with the update. A concurrent transition that
// lands first makes this one fail with ErrConcurrencyConflict rather than
// silently overwriting it.
func (s *Service) Transition(ctx context.Context, tenantID, loadID uuid.UUID, actorID *uuid.UUID, req *TransitionRequest) (*LoadResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	requested, err := domainLoad.ParseStatus(req.RequestedStatus)
	if err != nil {
		return nil, err
	}

	l, err := s.loadRepo.GetByID(ctx, tenantID, loadID)
	if err != nil {
		return nil, err
	}

	if requested == l.Status {
		return ToLoadResponse(l), nil
	}

	if !domainLoad.IsValidTransition(l.Status, requested) {
		return nil, &domainLoad.TransitionError{
			From:   l.Status,
			To:     requested,
			Reason: fmt.Sprintf("no edge from %s to %s", l.Status, requested),
		}
	}

	if err := s.checkPreconditions(ctx, l, requested); err != nil {
		return nil, err
	}

	hist := &domainLoad.StatusHistory{
		LoadID:    loadID,
		OldStatus: l.Status,
		NewStatus: requested,
		ActorID:   actorID,
	}
	if req.Reason != "" {
		reason := utils.SanitizeText(req.Reason)
		hist.Reason = &reason
	}

	if err := s.loadRepo.Transition(ctx, loadID, l.Status, hist); err != nil {
		return nil, err
	}

	logger.Info("load status changed",
		zap.String("event", "load_status_changed"),
		zap.String("load_id", loadID.String()),
		zap.String("tenant_id", tenantID.String()),
		zap.String("old_status", string(l.Status)),
		zap.String("new_status", string(requested)),
	)

	s.publishTransition(l, requested, req.Reason, actorID)

	updated, err := s.loadRepo.GetByID(ctx, tenantID, loadID)
	if err != nil {
		return nil, err
	}
	return ToLoadResponse(updated), nil
}

// checkPreconditions gates transitions whose legality depends on more than
// the status graph. Cancellation is exempt from the draft completeness
// gate; an empty draft can always be cancelled.
func (s *Service) checkPreconditions(ctx context.Context, l *domainLoad.Load, to domainLoad.Status) error {
	if l.Status == domainLoad.StatusDraft && to != domainLoad.StatusCancelled {
		pickups, deliveries, err := s.stopRepo.CountStopsByType(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("counting stops: %w", err)
		}
		if pickups < 1 || deliveries < 1 {
			return &domainLoad.TransitionError{
				From:   l.Status,
				To:     to,
				Reason: fmt.Sprintf("draft needs at least one pickup and one delivery stop (have %d pickup, %d delivery)", pickups, deliveries),
			}
		}
	}

	switch to {
	case domainLoad.StatusDelivered:
		open, err := s.stopRepo.CountOpenDeliveryStops(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("counting open delivery stops: %w", err)
		}
		if open > 0 {
			return &domainLoad.TransitionError{
				From:   l.Status,
				To:     to,
				Reason: fmt.Sprintf("%d delivery stop(s) missing an actual arrival", open),
			}
		}

	case domainLoad.StatusInvoiced:
		offers, err := s.offerRepo.ListOffers(ctx, l.ID)
		if err != nil {
			return fmt.Errorf("listing offers: %w", err)
		}
		var accepted *domainLoad.Offer
		for _, o := range offers {
			if o.Status == domainLoad.OfferStatusAccepted {
				accepted = o
				break
			}
		}
		if accepted != nil {
			assignment, err := s.offerRepo.OpenAssignment(ctx, l.ID)
			if err != nil {
				if err == domainLoad.ErrAssignmentNotFound {
					return &domainLoad.TransitionError{
						From:   l.Status,
						To:     to,
						Reason: "accepted offer has no active assignment",
					}
				}
				return err
			}
			if assignment.CarrierID == nil || *assignment.CarrierID != accepted.CarrierID {
				return &domainLoad.TransitionError{
					From:   l.Status,
					To:     to,
					Reason: "active assignment carrier does not match the accepted offer",
				}
			}
		}
	}

	return nil
}

func (s *Service) publishTransition(l *domainLoad.Load, to domainLoad.Status, reason string, actorID *uuid.UUID) {
	if s.publisher == nil {
		return
	}

	now := time.Now().UTC()
	s.publisher.Publish(events.Event{
		Type:       events.TypeStatusChanged,
		LoadID:     l.ID,
		TenantID:   l.TenantID,
		OldStatus:  l.Status,
		NewStatus:  to,
		Reason:     reason,
		ActorID:    actorID,
		OccurredAt: now,
	})

	if to == domainLoad.StatusDelivered {
		s.publisher.Publish(events.Event{
			Type:       events.TypeLoadDelivered,
			LoadID:     l.ID,
			TenantID:   l.TenantID,
			OldStatus:  l.Status,
			NewStatus:  to,
			ActorID:    actorID,
			OccurredAt: now,
		})
	}
}
