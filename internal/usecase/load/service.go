package load

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"freight-tms/internal/domain/company"
	domainLoad "freight-tms/internal/domain/load"
	"freight-tms/internal/events"
	"freight-tms/internal/logger"
	"freight-tms/pkg/utils"
)

const (
	defaultPageSize  = 20
	defaultSortBy    = "created_at"
	defaultSortOrder = "desc"
)

// Service is the load command/query service. All mutations are tenant
// scoped; a load id from another tenant behaves as not found.
type Service struct {
	loadRepo     domainLoad.Repository
	stopRepo     domainLoad.StopRepository
	offerRepo    domainLoad.OfferRepository
	trackingRepo domainLoad.TrackingRepository
	companyRepo  company.Repository
	publisher    *events.Publisher
}

func NewService(
	loadRepo domainLoad.Repository,
	stopRepo domainLoad.StopRepository,
	offerRepo domainLoad.OfferRepository,
	trackingRepo domainLoad.TrackingRepository,
	companyRepo company.Repository,
	publisher *events.Publisher,
) *Service {
	return &Service{
		loadRepo:     loadRepo,
		stopRepo:     stopRepo,
		offerRepo:    offerRepo,
		trackingRepo: trackingRepo,
		companyRepo:  companyRepo,
		publisher:    publisher,
	}
}

func (s *Service) CreateLoad(ctx context.Context, tenantID uuid.UUID, req *CreateLoadRequest) (*LoadResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if err := validateWindows(req); err != nil {
		return nil, err
	}
	if err := s.validateParties(ctx, req.BrokerID, req.ShipperID, req.CarrierID); err != nil {
		return nil, err
	}

	l := &domainLoad.Load{
		TenantID:           tenantID,
		LoadNumber:         utils.SanitizeText(req.LoadNumber),
		BrokerID:           req.BrokerID,
		ShipperID:          req.ShipperID,
		CarrierID:          req.CarrierID,
		DriverID:           req.DriverID,
		DispatcherID:       req.DispatcherID,
		Status:             domainLoad.StatusDraft,
		OriginAddress:      utils.SanitizeText(req.OriginAddress),
		OriginLat:          req.OriginLat,
		OriginLng:          req.OriginLng,
		DestAddress:        utils.SanitizeText(req.DestAddress),
		DestLat:            req.DestLat,
		DestLng:            req.DestLng,
		Commodity:          utils.SanitizeText(req.Commodity),
		WeightLbs:          req.WeightLbs,
		EquipmentType:      utils.SanitizeText(req.EquipmentType),
		RoutingType:        req.RoutingType,
		CustomerRate:       req.CustomerRate,
		CarrierRate:        req.CarrierRate,
		PickupEarliest:     req.PickupEarliest,
		PickupLatest:       req.PickupLatest,
		DeliveryEarliest:   req.DeliveryEarliest,
		DeliveryLatest:     req.DeliveryLatest,
		Notes:              utils.SanitizeTextPtr(req.Notes),
		PostedToLoadboards: req.PostedToLoadboards,
	}

	if err := s.loadRepo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("creating load: %w", err)
	}

	logger.Info("load created",
		zap.String("event", "load_created"),
		zap.String("load_id", l.ID.String()),
		zap.String("tenant_id", tenantID.String()),
		zap.String("load_number", l.LoadNumber),
	)

	return ToLoadResponse(l), nil
}

func (s *Service) GetLoad(ctx context.Context, tenantID, loadID uuid.UUID) (*LoadResponse, error) {
	l, err := s.loadRepo.GetByID(ctx, tenantID, loadID)
	if err != nil {
		return nil, err
	}
	return ToLoadResponse(l), nil
}

// UpdateLoad patches the load's scalar fields. The status field is not
// writable here under any circumstances; requests carrying one fail with
// ErrStatusImmutable before anything else is looked at.
func (s *Service) UpdateLoad(ctx context.Context, tenantID, loadID uuid.UUID, req *UpdateLoadRequest) (*LoadResponse, error) {
	if req.Status != nil {
		return nil, domainLoad.ErrStatusImmutable
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	l, err := s.loadRepo.GetByID(ctx, tenantID, loadID)
	if err != nil {
		return nil, err
	}

	applyLoadPatch(l, req)

	if err := validateWindows(&CreateLoadRequest{
		PickupEarliest:   l.PickupEarliest,
		PickupLatest:     l.PickupLatest,
		DeliveryEarliest: l.DeliveryEarliest,
		DeliveryLatest:   l.DeliveryLatest,
	}); err != nil {
		return nil, err
	}
	if err := s.validateParties(ctx, req.BrokerID, req.ShipperID, req.CarrierID); err != nil {
		return nil, err
	}

	if err := s.loadRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	logger.Info("load updated",
		zap.String("event", "load_updated"),
		zap.String("load_id", loadID.String()),
		zap.String("tenant_id", tenantID.String()),
	)

	updated, err := s.loadRepo.GetByID(ctx, tenantID, loadID)
	if err != nil {
		return nil, err
	}
	return ToLoadResponse(updated), nil
}

func applyLoadPatch(l *domainLoad.Load, req *UpdateLoadRequest) {
	if req.LoadNumber != nil {
		l.LoadNumber = utils.SanitizeText(*req.LoadNumber)
	}
	if req.BrokerID != nil {
		l.BrokerID = req.BrokerID
	}
	if req.ShipperID != nil {
		l.ShipperID = req.ShipperID
	}
	if req.CarrierID != nil {
		l.CarrierID = req.CarrierID
	}
	if req.DriverID != nil {
		l.DriverID = req.DriverID
	}
	if req.DispatcherID != nil {
		l.DispatcherID = req.DispatcherID
	}
	if req.OriginAddress != nil {
		l.OriginAddress = utils.SanitizeText(*req.OriginAddress)
	}
	if req.OriginLat != nil {
		l.OriginLat = req.OriginLat
	}
	if req.OriginLng != nil {
		l.OriginLng = req.OriginLng
	}
	if req.DestAddress != nil {
		l.DestAddress = utils.SanitizeText(*req.DestAddress)
	}
	if req.DestLat != nil {
		l.DestLat = req.DestLat
	}
	if req.DestLng != nil {
		l.DestLng = req.DestLng
	}
	if req.Commodity != nil {
		l.Commodity = utils.SanitizeText(*req.Commodity)
	}
	if req.WeightLbs != nil {
		l.WeightLbs = req.WeightLbs
	}
	if req.EquipmentType != nil {
		l.EquipmentType = utils.SanitizeText(*req.EquipmentType)
	}
	if req.RoutingType != nil {
		l.RoutingType = *req.RoutingType
	}
	if req.CustomerRate != nil {
		l.CustomerRate = req.CustomerRate
	}
	if req.CarrierRate != nil {
		l.CarrierRate = req.CarrierRate
	}
	if req.PickupEarliest != nil {
		l.PickupEarliest = req.PickupEarliest
	}
	if req.PickupLatest != nil {
		l.PickupLatest = req.PickupLatest
	}
	if req.DeliveryEarliest != nil {
		l.DeliveryEarliest = req.DeliveryEarliest
	}
	if req.DeliveryLatest != nil {
		l.DeliveryLatest = req.DeliveryLatest
	}
	if req.Notes != nil {
		l.Notes = utils.SanitizeTextPtr(req.Notes)
	}
	if req.PostedToLoadboards != nil {
		l.PostedToLoadboards = *req.PostedToLoadboards
	}
}

func (s *Service) ListLoads(ctx context.Context, tenantID uuid.UUID, req *LoadFilterRequest) (*LoadListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	filter, err := ToDomainFilter(req)
	if err != nil {
		return nil, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.SortBy == "" {
		filter.SortBy = defaultSortBy
	}
	if filter.SortOrder == "" {
		filter.SortOrder = defaultSortOrder
	}

	loads, total, err := s.loadRepo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing loads: %w", err)
	}

	resp := &LoadListResponse{
		Loads:    make([]LoadResponse, 0, len(loads)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for _, l := range loads {
		resp.Loads = append(resp.Loads, *ToLoadResponse(l))
	}
	resp.TotalPages = int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))

	return resp, nil
}

func (s *Service) GetStatistics(ctx context.Context, tenantID uuid.UUID) (*StatisticsResponse, error) {
	stats, err := s.loadRepo.GetStatistics(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("computing load statistics: %w", err)
	}
	return &StatisticsResponse{
		TotalLoads:     stats.TotalLoads,
		ByStatus:       stats.ByStatus,
		ActiveLoads:    stats.ActiveLoads,
		DeliveredToday: stats.DeliveredToday,
	}, nil
}

// ListHistory returns the load's status change log, oldest first.
func (s *Service) ListHistory(ctx context.Context, tenantID, loadID uuid.UUID) ([]HistoryResponse, error) {
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}

	rows, err := s.loadRepo.ListHistory(ctx, loadID)
	if err != nil {
		return nil, err
	}

	out := make([]HistoryResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, *ToHistoryResponse(h))
	}
	return out, nil
}

// GetTimeline interleaves status changes and operational events into one
// chronological feed, oldest first.
func (s *Service) GetTimeline(ctx context.Context, tenantID, loadID uuid.UUID) ([]TimelineEntry, error) {
	if _, err := s.loadRepo.GetByID(ctx, tenantID, loadID); err != nil {
		return nil, err
	}

	history, err := s.loadRepo.ListHistory(ctx, loadID)
	if err != nil {
		return nil, err
	}
	evts, err := s.loadRepo.ListEvents(ctx, loadID, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]TimelineEntry, 0, len(history)+len(evts))
	for _, h := range history {
		entries = append(entries, TimelineEntry{
			Kind:         "status_change",
			CreatedAt:    h.CreatedAt,
			StatusChange: ToHistoryResponse(h),
		})
	}
	for _, e := range evts {
		entries = append(entries, TimelineEntry{
			Kind:      "event",
			CreatedAt: e.CreatedAt,
			Event:     ToEventResponse(e),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	return entries, nil
}

// AllowedTransitions reports where the load can legally move next. The
// answer ignores preconditions; a listed target can still be refused at
// transition time if its gate is not met.
func (s *Service) AllowedTransitions(ctx context.Context, tenantID, loadID uuid.UUID) (*AllowedTransitionsResponse, error) {
	l, err := s.loadRepo.GetByID(ctx, tenantID, loadID)
	if err != nil {
		return nil, err
	}
	return &AllowedTransitionsResponse{
		Current: l.Status,
		Allowed: domainLoad.AllowedTransitions(l.Status),
	}, nil
}
