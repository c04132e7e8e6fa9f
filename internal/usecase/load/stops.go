package load

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainLoad "freight-tms/internal/domain/load"
	"freight-tms/internal/logger"
	"freight-tms/pkg/utils"
)

func (s *Service) CreateStop(ctx context.Context, tenantID, loadID uuid.UUID, req *CreateStopRequest) (*StopResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}

	stop := &domainLoad.Stop{
		LoadID:         loadID,
		StopNumber:     req.StopNumber,
		StopType:       domainLoad.StopType(req.StopType),
		LocationName:   utils.SanitizeText(req.LocationName),
		Address:        utils.SanitizeText(req.Address),
		Lat:            req.Lat,
		Lng:            req.Lng,
		ContactName:    utils.SanitizeTextPtr(req.ContactName),
		ContactPhone:   utils.SanitizeTextPtr(req.ContactPhone),
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
	}

	if err := s.stopRepo.CreateStop(ctx, stop); err != nil {
		return nil, err
	}

	logger.Info("stop created",
		zap.String("event", "stop_created"),
		zap.String("load_id", loadID.String()),
		zap.String("stop_id", stop.ID.String()),
		zap.Int("stop_number", stop.StopNumber),
	)

	return ToStopResponse(stop), nil
}

func (s *Service) GetStop(ctx context.Context, tenantID, loadID, stopID uuid.UUID) (*StopResponse, error) {
	stop, err := s.getOwnedStop(ctx, tenantID, loadID, stopID)
	if err != nil {
		return nil, err
	}
	return ToStopResponse(stop), nil
}

func (s *Service) UpdateStop(ctx context.Context, tenantID, loadID, stopID uuid.UUID, req *UpdateStopRequest) (*StopResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	stop, err := s.getOwnedStop(ctx, tenantID, loadID, stopID)
	if err != nil {
		return nil, err
	}

	if req.StopNumber != nil {
		stop.StopNumber = *req.StopNumber
	}
	if req.StopType != nil {
		stop.StopType = domainLoad.StopType(*req.StopType)
	}
	if req.LocationName != nil {
		stop.LocationName = utils.SanitizeText(*req.LocationName)
	}
	if req.Address != nil {
		stop.Address = utils.SanitizeText(*req.Address)
	}
	if req.Lat != nil {
		stop.Lat = req.Lat
	}
	if req.Lng != nil {
		stop.Lng = req.Lng
	}
	if req.ContactName != nil {
		stop.ContactName = utils.SanitizeTextPtr(req.ContactName)
	}
	if req.ContactPhone != nil {
		stop.ContactPhone = utils.SanitizeTextPtr(req.ContactPhone)
	}
	if req.ScheduledStart != nil {
		stop.ScheduledStart = req.ScheduledStart
	}
	if req.ScheduledEnd != nil {
		stop.ScheduledEnd = req.ScheduledEnd
	}
	if req.ActualArrival != nil {
		stop.ActualArrival = req.ActualArrival
	}
	if req.ActualDeparture != nil {
		stop.ActualDeparture = req.ActualDeparture
	}

	if stop.ScheduledStart != nil && stop.ScheduledEnd != nil && stop.ScheduledEnd.Before(*stop.ScheduledStart) {
		return nil, &utils.ValidationErrors{Violations: []utils.FieldViolation{{
			Field:   "scheduled_end",
			Rule:    "window",
			Message: "scheduled window end precedes its start",
		}}}
	}

	if err := s.stopRepo.UpdateStop(ctx, stop); err != nil {
		return nil, err
	}

	return ToStopResponse(stop), nil
}

// DeleteStop removes a stop. Deletion is refused while any cargo line
// references the stop; the repository re-checks that inside the delete
// transaction, so a cargo line created between the caller's check and the
// delete still blocks it.
func (s *Service) DeleteStop(ctx context.Context, tenantID, loadID, stopID uuid.UUID) error {
	if _, err := s.getOwnedStop(ctx, tenantID, loadID, stopID); err != nil {
		return err
	}

	if err := s.stopRepo.DeleteStop(ctx, stopID); err != nil {
		return err
	}

	logger.Info("stop deleted",
		zap.String("event", "stop_deleted"),
		zap.String("load_id", loadID.String()),
		zap.String("stop_id", stopID.String()),
	)
	return nil
}

func (s *Service) ListStops(ctx context.Context, tenantID, loadID uuid.UUID) ([]StopResponse, error) {
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}

	stops, err := s.stopRepo.ListStops(ctx, loadID)
	if err != nil {
		return nil, err
	}

	out := make([]StopResponse, 0, len(stops))
	for _, stop := range stops {
		out = append(out, *ToStopResponse(stop))
	}
	return out, nil
}

// getOwnedStop resolves a stop and confirms it belongs to the given load
// within the tenant. A stop of another load answers as not found rather
// than leaking its existence.
func (s *Service) getOwnedStop(ctx context.Context, tenantID, loadID, stopID uuid.UUID) (*domainLoad.Stop, error) {
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}
	stop, err := s.stopRepo.GetStop(ctx, stopID)
	if err != nil {
		return nil, err
	}
	if stop.LoadID != loadID {
		return nil, domainLoad.ErrStopNotFound
	}
	return stop, nil
}

func (s *Service) CreateCargo(ctx context.Context, tenantID, loadID uuid.UUID, req *CreateCargoRequest) (*CargoResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := validateTempRange(req.TempRequired, req.TempMinF, req.TempMaxF); err != nil {
		return nil, err
	}
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}
	if err := s.validateCargoStops(ctx, loadID, req.PickupStopID, req.DeliveryStopID); err != nil {
		return nil, err
	}

	cargo := &domainLoad.Cargo{
		LoadID:         loadID,
		PickupStopID:   req.PickupStopID,
		DeliveryStopID: req.DeliveryStopID,
		Commodity:      utils.SanitizeText(req.Commodity),
		WeightLbs:      req.WeightLbs,
		Pieces:         req.Pieces,
		Pallets:        req.Pallets,
		Hazmat:         req.Hazmat,
		TempRequired:   req.TempRequired,
		TempMinF:       req.TempMinF,
		TempMaxF:       req.TempMaxF,
		DeclaredValue:  req.DeclaredValue,
	}

	if err := s.stopRepo.CreateCargo(ctx, cargo); err != nil {
		return nil, fmt.Errorf("creating cargo: %w", err)
	}

	logger.Info("cargo created",
		zap.String("event", "cargo_created"),
		zap.String("load_id", loadID.String()),
		zap.String("cargo_id", cargo.ID.String()),
	)

	return ToCargoResponse(cargo), nil
}

func (s *Service) GetCargo(ctx context.Context, tenantID, loadID, cargoID uuid.UUID) (*CargoResponse, error) {
	cargo, err := s.getOwnedCargo(ctx, tenantID, loadID, cargoID)
	if err != nil {
		return nil, err
	}
	return ToCargoResponse(cargo), nil
}

func (s *Service) UpdateCargo(ctx context.Context, tenantID, loadID, cargoID uuid.UUID, req *UpdateCargoRequest) (*CargoResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	cargo, err := s.getOwnedCargo(ctx, tenantID, loadID, cargoID)
	if err != nil {
		return nil, err
	}

	if req.PickupStopID != nil || req.DeliveryStopID != nil {
		if err := s.validateCargoStops(ctx, loadID, req.PickupStopID, req.DeliveryStopID); err != nil {
			return nil, err
		}
	}

	if req.PickupStopID != nil {
		cargo.PickupStopID = req.PickupStopID
	}
	if req.DeliveryStopID != nil {
		cargo.DeliveryStopID = req.DeliveryStopID
	}
	if req.Commodity != nil {
		cargo.Commodity = utils.SanitizeText(*req.Commodity)
	}
	if req.WeightLbs != nil {
		cargo.WeightLbs = req.WeightLbs
	}
	if req.Pieces != nil {
		cargo.Pieces = req.Pieces
	}
	if req.Pallets != nil {
		cargo.Pallets = req.Pallets
	}
	if req.Hazmat != nil {
		cargo.Hazmat = *req.Hazmat
	}
	if req.TempRequired != nil {
		cargo.TempRequired = *req.TempRequired
	}
	if req.TempMinF != nil {
		cargo.TempMinF = req.TempMinF
	}
	if req.TempMaxF != nil {
		cargo.TempMaxF = req.TempMaxF
	}

	if err := validateTempRange(cargo.TempRequired, cargo.TempMinF, cargo.TempMaxF); err != nil {
		return nil, err
	}
	if req.DeclaredValue != nil {
		cargo.DeclaredValue = req.DeclaredValue
	}

	if err := s.stopRepo.UpdateCargo(ctx, cargo); err != nil {
		return nil, err
	}

	return ToCargoResponse(cargo), nil
}

func (s *Service) DeleteCargo(ctx context.Context, tenantID, loadID, cargoID uuid.UUID) error {
	if _, err := s.getOwnedCargo(ctx, tenantID, loadID, cargoID); err != nil {
		return err
	}
	return s.stopRepo.DeleteCargo(ctx, cargoID)
}

func (s *Service) ListCargo(ctx context.Context, tenantID, loadID uuid.UUID) ([]CargoResponse, error) {
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}

	lines, err := s.stopRepo.ListCargo(ctx, loadID)
	if err != nil {
		return nil, err
	}

	out := make([]CargoResponse, 0, len(lines))
	for _, c := range lines {
		out = append(out, *ToCargoResponse(c))
	}
	return out, nil
}

func (s *Service) getOwnedCargo(ctx context.Context, tenantID, loadID, cargoID uuid.UUID) (*domainLoad.Cargo, error) {
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}
	cargo, err := s.stopRepo.GetCargo(ctx, cargoID)
	if err != nil {
		return nil, err
	}
	if cargo.LoadID != loadID {
		return nil, domainLoad.ErrCargoNotFound
	}
	return cargo, nil
}
