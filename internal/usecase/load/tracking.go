package load

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainLoad "freight-tms/internal/domain/load"
	"freight-tms/internal/logger"
	"freight-tms/pkg/utils"
)

// CreateStatusEvent appends an operational event to the load's log. Events
// are immutable once written; there is no update or delete path.
func (s *Service) CreateStatusEvent(ctx context.Context, tenantID, loadID uuid.UUID, actorID *uuid.UUID, req *CreateEventRequest) (*EventResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}

	e := &domainLoad.StatusEvent{
		LoadID:    loadID,
		EventType: utils.SanitizeText(req.EventType),
		Note:      utils.SanitizeTextPtr(req.Note),
		Lat:       req.Lat,
		Lng:       req.Lng,
		Metadata:  req.Metadata,
		ActorID:   actorID,
	}

	if err := s.loadRepo.CreateEvent(ctx, e); err != nil {
		return nil, fmt.Errorf("creating status event: %w", err)
	}

	logger.Info("status event recorded",
		zap.String("event", "status_event_recorded"),
		zap.String("load_id", loadID.String()),
		zap.String("event_type", e.EventType),
	)

	return ToEventResponse(e), nil
}

func (s *Service) GetStatusEvent(ctx context.Context, tenantID, loadID, eventID uuid.UUID) (*EventResponse, error) {
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}
	e, err := s.loadRepo.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if e.LoadID != loadID {
		return nil, domainLoad.ErrLoadNotFound
	}
	return ToEventResponse(e), nil
}

func (s *Service) ListStatusEvents(ctx context.Context, tenantID, loadID uuid.UUID, limit int) ([]EventResponse, error) {
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}

	evts, err := s.loadRepo.ListEvents(ctx, loadID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]EventResponse, 0, len(evts))
	for _, e := range evts {
		out = append(out, *ToEventResponse(e))
	}
	return out, nil
}

// RecordPing stores one telemetry sample submitted over the REST surface.
// Bulk ingestion over MQTT bypasses this path and batches directly into the
// tracking repository.
func (s *Service) RecordPing(ctx context.Context, tenantID, loadID uuid.UUID, req *CreatePingRequest) (*PingResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}

	recordedAt := time.Now().UTC()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	p := &domainLoad.TrackingPing{
		LoadID:        loadID,
		Lat:           req.Lat,
		Lng:           req.Lng,
		SpeedMPH:      req.SpeedMPH,
		HeadingDeg:    req.HeadingDeg,
		OdometerMiles: req.OdometerMiles,
		FuelPercent:   req.FuelPercent,
		TemperatureF:  req.TemperatureF,
		StatusText:    utils.SanitizeTextPtr(req.StatusText),
		RecordedAt:    recordedAt,
	}

	if err := s.trackingRepo.CreatePing(ctx, p); err != nil {
		return nil, fmt.Errorf("recording tracking ping: %w", err)
	}

	return ToPingResponse(p), nil
}

func (s *Service) ListPings(ctx context.Context, tenantID, loadID uuid.UUID, limit int) ([]PingResponse, error) {
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}

	pings, err := s.trackingRepo.ListPings(ctx, loadID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]PingResponse, 0, len(pings))
	for _, p := range pings {
		out = append(out, *ToPingResponse(p))
	}
	return out, nil
}
