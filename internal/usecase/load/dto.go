package load

import (
	"time"

	"github.com/google/uuid"

	domainLoad "freight-tms/internal/domain/load"
)

// Request DTOs

// CreateLoadRequest is the load shape minus server-managed fields. Status
// is not accepted here; new loads always start in draft.
type CreateLoadRequest struct {
	LoadNumber string `json:"load_number" validate:"required,min=3,max=64"`

	BrokerID     *uuid.UUID `json:"broker_id" validate:"omitempty"`
	ShipperID    *uuid.UUID `json:"shipper_id" validate:"omitempty"`
	CarrierID    *uuid.UUID `json:"carrier_id" validate:"omitempty"`
	DriverID     *uuid.UUID `json:"driver_id" validate:"omitempty"`
	DispatcherID *uuid.UUID `json:"dispatcher_id" validate:"omitempty"`

	OriginAddress string   `json:"origin_address" validate:"required,min=5"`
	OriginLat     *float64 `json:"origin_lat" validate:"omitempty,latitude"`
	OriginLng     *float64 `json:"origin_lng" validate:"omitempty,longitude"`
	DestAddress   string   `json:"dest_address" validate:"required,min=5"`
	DestLat       *float64 `json:"dest_lat" validate:"omitempty,latitude"`
	DestLng       *float64 `json:"dest_lng" validate:"omitempty,longitude"`

	Commodity     string   `json:"commodity" validate:"omitempty,max=500"`
	WeightLbs     *float64 `json:"weight_lbs" validate:"omitempty,min=0,max=100000"`
	EquipmentType string   `json:"equipment_type" validate:"omitempty,max=64"`
	RoutingType   string   `json:"routing_type" validate:"omitempty,oneof=direct multi_stop relay"`

	CustomerRate *float64 `json:"customer_rate" validate:"omitempty,min=0"`
	CarrierRate  *float64 `json:"carrier_rate" validate:"omitempty,min=0"`

	PickupEarliest   *time.Time `json:"pickup_earliest"`
	PickupLatest     *time.Time `json:"pickup_latest"`
	DeliveryEarliest *time.Time `json:"delivery_earliest"`
	DeliveryLatest   *time.Time `json:"delivery_latest"`

	Notes              *string `json:"notes" validate:"omitempty,max=2000"`
	PostedToLoadboards bool    `json:"posted_to_loadboards"`
}

// UpdateLoadRequest patches scalar fields. A status value, if present, is
// rejected: status only moves through the transition endpoint.
type UpdateLoadRequest struct {
	Status *string `json:"status"`

	LoadNumber *string `json:"load_number" validate:"omitempty,min=3,max=64"`

	BrokerID     *uuid.UUID `json:"broker_id"`
	ShipperID    *uuid.UUID `json:"shipper_id"`
	CarrierID    *uuid.UUID `json:"carrier_id"`
	DriverID     *uuid.UUID `json:"driver_id"`
	DispatcherID *uuid.UUID `json:"dispatcher_id"`

	OriginAddress *string  `json:"origin_address" validate:"omitempty,min=5"`
	OriginLat     *float64 `json:"origin_lat" validate:"omitempty,latitude"`
	OriginLng     *float64 `json:"origin_lng" validate:"omitempty,longitude"`
	DestAddress   *string  `json:"dest_address" validate:"omitempty,min=5"`
	DestLat       *float64 `json:"dest_lat" validate:"omitempty,latitude"`
	DestLng       *float64 `json:"dest_lng" validate:"omitempty,longitude"`

	Commodity     *string  `json:"commodity" validate:"omitempty,max=500"`
	WeightLbs     *float64 `json:"weight_lbs" validate:"omitempty,min=0,max=100000"`
	EquipmentType *string  `json:"equipment_type" validate:"omitempty,max=64"`
	RoutingType   *string  `json:"routing_type" validate:"omitempty,oneof=direct multi_stop relay"`

	CustomerRate *float64 `json:"customer_rate" validate:"omitempty,min=0"`
	CarrierRate  *float64 `json:"carrier_rate" validate:"omitempty,min=0"`

	PickupEarliest   *time.Time `json:"pickup_earliest"`
	PickupLatest     *time.Time `json:"pickup_latest"`
	DeliveryEarliest *time.Time `json:"delivery_earliest"`
	DeliveryLatest   *time.Time `json:"delivery_latest"`

	Notes              *string `json:"notes" validate:"omitempty,max=2000"`
	PostedToLoadboards *bool   `json:"posted_to_loadboards"`
}

// TransitionRequest asks the engine to move a load to a new status.
// RequestedStatus accepts canonical values and legacy aliases.
type TransitionRequest struct {
	RequestedStatus string `json:"requested_status" validate:"required,max=64"`
	Reason          string `json:"reason" validate:"omitempty,max=500"`
}

type CreateStopRequest struct {
	StopNumber int    `json:"stop_number" validate:"required,min=1"`
	StopType   string `json:"stop_type" validate:"required,oneof=pickup delivery"`

	LocationName string   `json:"location_name" validate:"omitempty,max=200"`
	Address      string   `json:"address" validate:"required,min=5"`
	Lat          *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng          *float64 `json:"lng" validate:"omitempty,longitude"`
	ContactName  *string  `json:"contact_name" validate:"omitempty,max=200"`
	ContactPhone *string  `json:"contact_phone" validate:"omitempty,max=32"`

	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
}

type UpdateStopRequest struct {
	StopNumber *int    `json:"stop_number" validate:"omitempty,min=1"`
	StopType   *string `json:"stop_type" validate:"omitempty,oneof=pickup delivery"`

	LocationName *string  `json:"location_name" validate:"omitempty,max=200"`
	Address      *string  `json:"address" validate:"omitempty,min=5"`
	Lat          *float64 `json:"lat" validate:"omitempty,latitude"`
	Lng          *float64 `json:"lng" validate:"omitempty,longitude"`
	ContactName  *string  `json:"contact_name" validate:"omitempty,max=200"`
	ContactPhone *string  `json:"contact_phone" validate:"omitempty,max=32"`

	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`

	ActualArrival   *time.Time `json:"actual_arrival"`
	ActualDeparture *time.Time `json:"actual_departure"`
}

type CreateCargoRequest struct {
	PickupStopID   *uuid.UUID `json:"pickup_stop_id"`
	DeliveryStopID *uuid.UUID `json:"delivery_stop_id"`

	Commodity     string   `json:"commodity" validate:"required,min=2,max=500"`
	WeightLbs     *float64 `json:"weight_lbs" validate:"omitempty,min=0,max=100000"`
	Pieces        *int     `json:"pieces" validate:"omitempty,min=0"`
	Pallets       *int     `json:"pallets" validate:"omitempty,min=0"`
	Hazmat        bool     `json:"hazmat"`
	TempRequired  bool     `json:"temp_required"`
	TempMinF      *float64 `json:"temp_min_f" validate:"omitempty,min=-60,max=150"`
	TempMaxF      *float64 `json:"temp_max_f" validate:"omitempty,min=-60,max=150"`
	DeclaredValue *float64 `json:"declared_value" validate:"omitempty,min=0"`
}

type UpdateCargoRequest struct {
	PickupStopID   *uuid.UUID `json:"pickup_stop_id"`
	DeliveryStopID *uuid.UUID `json:"delivery_stop_id"`

	Commodity     *string  `json:"commodity" validate:"omitempty,min=2,max=500"`
	WeightLbs     *float64 `json:"weight_lbs" validate:"omitempty,min=0,max=100000"`
	Pieces        *int     `json:"pieces" validate:"omitempty,min=0"`
	Pallets       *int     `json:"pallets" validate:"omitempty,min=0"`
	Hazmat        *bool    `json:"hazmat"`
	TempRequired  *bool    `json:"temp_required"`
	TempMinF      *float64 `json:"temp_min_f" validate:"omitempty,min=-60,max=150"`
	TempMaxF      *float64 `json:"temp_max_f" validate:"omitempty,min=-60,max=150"`
	DeclaredValue *float64 `json:"declared_value" validate:"omitempty,min=0"`
}

type CreateOfferRequest struct {
	CarrierID   uuid.UUID  `json:"carrier_id" validate:"required"`
	OfferedRate float64    `json:"offered_rate" validate:"required,gt=0"`
	ExpiresAt   *time.Time `json:"expires_at"`
	Notes       *string    `json:"notes" validate:"omitempty,max=1000"`
}

type CreateAssignmentRequest struct {
	CarrierID   *uuid.UUID `json:"carrier_id"`
	DriverID    *uuid.UUID `json:"driver_id"`
	EquipmentID *uuid.UUID `json:"equipment_id"`
	AssignedAt  *time.Time `json:"assigned_at"`
}

type UnassignRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

type CreateEventRequest struct {
	EventType string            `json:"event_type" validate:"required,min=2,max=64"`
	Note      *string           `json:"note" validate:"omitempty,max=1000"`
	Lat       *float64          `json:"lat" validate:"omitempty,latitude"`
	Lng       *float64          `json:"lng" validate:"omitempty,longitude"`
	Metadata  map[string]string `json:"metadata" validate:"omitempty,max=32"`
}

type CreatePingRequest struct {
	Lat           float64    `json:"lat" validate:"required,latitude"`
	Lng           float64    `json:"lng" validate:"required,longitude"`
	SpeedMPH      *float64   `json:"speed_mph" validate:"omitempty,min=0,max=150"`
	HeadingDeg    *float64   `json:"heading_deg" validate:"omitempty,min=0,max=360"`
	OdometerMiles *float64   `json:"odometer_miles" validate:"omitempty,min=0"`
	FuelPercent   *float64   `json:"fuel_percent" validate:"omitempty,min=0,max=100"`
	TemperatureF  *float64   `json:"temperature_f" validate:"omitempty,min=-60,max=200"`
	StatusText    *string    `json:"status_text" validate:"omitempty,max=200"`
	RecordedAt    *time.Time `json:"recorded_at"`
}

type LoadFilterRequest struct {
	Status       string     `form:"status"`
	BrokerID     *uuid.UUID `form:"broker_id"`
	ShipperID    *uuid.UUID `form:"shipper_id"`
	CarrierID    *uuid.UUID `form:"carrier_id"`
	DriverID     *uuid.UUID `form:"driver_id"`
	DispatcherID *uuid.UUID `form:"dispatcher_id"`

	CreatedAfter  *time.Time `form:"created_after"`
	CreatedBefore *time.Time `form:"created_before"`
	PickupAfter   *time.Time `form:"pickup_after"`
	PickupBefore  *time.Time `form:"pickup_before"`

	PostedOnly      bool `form:"posted_only"`
	ExcludeTerminal bool `form:"exclude_terminal"`

	Search string `form:"search"`

	Page      int    `form:"page" validate:"omitempty,min=1"`
	PageSize  int    `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" validate:"omitempty,oneof=created_at updated_at load_number pickup_earliest delivery_latest customer_rate"`
	SortOrder string `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

// Response DTOs

type LoadResponse struct {
	ID         uuid.UUID         `json:"id"`
	LoadNumber string            `json:"load_number"`
	Status     domainLoad.Status `json:"status"`

	BrokerID     *uuid.UUID `json:"broker_id"`
	ShipperID    *uuid.UUID `json:"shipper_id"`
	CarrierID    *uuid.UUID `json:"carrier_id"`
	DriverID     *uuid.UUID `json:"driver_id"`
	DispatcherID *uuid.UUID `json:"dispatcher_id"`

	OriginAddress string   `json:"origin_address"`
	OriginLat     *float64 `json:"origin_lat"`
	OriginLng     *float64 `json:"origin_lng"`
	DestAddress   string   `json:"dest_address"`
	DestLat       *float64 `json:"dest_lat"`
	DestLng       *float64 `json:"dest_lng"`

	Commodity     string   `json:"commodity"`
	WeightLbs     *float64 `json:"weight_lbs"`
	EquipmentType string   `json:"equipment_type"`
	RoutingType   string   `json:"routing_type"`

	CustomerRate *float64 `json:"customer_rate"`
	CarrierRate  *float64 `json:"carrier_rate"`
	Margin       *float64 `json:"margin,omitempty"`

	PickupEarliest   *time.Time `json:"pickup_earliest"`
	PickupLatest     *time.Time `json:"pickup_latest"`
	DeliveryEarliest *time.Time `json:"delivery_earliest"`
	DeliveryLatest   *time.Time `json:"delivery_latest"`

	Notes              *string `json:"notes"`
	PostedToLoadboards bool    `json:"posted_to_loadboards"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LoadListResponse struct {
	Loads      []LoadResponse `json:"loads"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

type StopResponse struct {
	ID         uuid.UUID           `json:"id"`
	LoadID     uuid.UUID           `json:"load_id"`
	StopNumber int                 `json:"stop_number"`
	StopType   domainLoad.StopType `json:"stop_type"`

	LocationName string   `json:"location_name"`
	Address      string   `json:"address"`
	Lat          *float64 `json:"lat"`
	Lng          *float64 `json:"lng"`
	ContactName  *string  `json:"contact_name"`
	ContactPhone *string  `json:"contact_phone"`

	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`

	ActualArrival   *time.Time `json:"actual_arrival"`
	ActualDeparture *time.Time `json:"actual_departure"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CargoResponse struct {
	ID             uuid.UUID  `json:"id"`
	LoadID         uuid.UUID  `json:"load_id"`
	PickupStopID   *uuid.UUID `json:"pickup_stop_id"`
	DeliveryStopID *uuid.UUID `json:"delivery_stop_id"`

	Commodity     string   `json:"commodity"`
	WeightLbs     *float64 `json:"weight_lbs"`
	Pieces        *int     `json:"pieces"`
	Pallets       *int     `json:"pallets"`
	Hazmat        bool     `json:"hazmat"`
	TempRequired  bool     `json:"temp_required"`
	TempMinF      *float64 `json:"temp_min_f"`
	TempMaxF      *float64 `json:"temp_max_f"`
	DeclaredValue *float64 `json:"declared_value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OfferResponse struct {
	ID          uuid.UUID              `json:"id"`
	LoadID      uuid.UUID              `json:"load_id"`
	CarrierID   uuid.UUID              `json:"carrier_id"`
	OfferedRate float64                `json:"offered_rate"`
	ExpiresAt   *time.Time             `json:"expires_at"`
	Status      domainLoad.OfferStatus `json:"status"`
	Notes       *string                `json:"notes"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

type AssignmentResponse struct {
	ID          uuid.UUID  `json:"id"`
	LoadID      uuid.UUID  `json:"load_id"`
	CarrierID   *uuid.UUID `json:"carrier_id"`
	DriverID    *uuid.UUID `json:"driver_id"`
	EquipmentID *uuid.UUID `json:"equipment_id"`

	AssignedAt     time.Time  `json:"assigned_at"`
	UnassignedAt   *time.Time `json:"unassigned_at"`
	UnassignReason *string    `json:"unassign_reason"`

	CreatedAt time.Time `json:"created_at"`
}

type HistoryResponse struct {
	ID        uuid.UUID         `json:"id"`
	LoadID    uuid.UUID         `json:"load_id"`
	OldStatus domainLoad.Status `json:"old_status"`
	NewStatus domainLoad.Status `json:"new_status"`
	Reason    *string           `json:"reason"`
	ActorID   *uuid.UUID        `json:"actor_id"`
	CreatedAt time.Time         `json:"created_at"`
}

type EventResponse struct {
	ID        uuid.UUID         `json:"id"`
	LoadID    uuid.UUID         `json:"load_id"`
	EventType string            `json:"event_type"`
	Note      *string           `json:"note"`
	Lat       *float64          `json:"lat"`
	Lng       *float64          `json:"lng"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	ActorID   *uuid.UUID        `json:"actor_id"`
	CreatedAt time.Time         `json:"created_at"`
}

type PingResponse struct {
	ID     uuid.UUID `json:"id"`
	LoadID uuid.UUID `json:"load_id"`

	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	SpeedMPH      *float64 `json:"speed_mph"`
	HeadingDeg    *float64 `json:"heading_deg"`
	OdometerMiles *float64 `json:"odometer_miles"`
	FuelPercent   *float64 `json:"fuel_percent"`
	TemperatureF  *float64 `json:"temperature_f"`
	StatusText    *string  `json:"status_text"`

	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type StatisticsResponse struct {
	TotalLoads     int            `json:"total_loads"`
	ByStatus       map[string]int `json:"by_status"`
	ActiveLoads    int            `json:"active_loads"`
	DeliveredToday int            `json:"delivered_today"`
}

type AllowedTransitionsResponse struct {
	Current domainLoad.Status   `json:"current"`
	Allowed []domainLoad.Status `json:"allowed"`
}

// TimelineEntry interleaves status changes and operational events into one
// chronological feed.
type TimelineEntry struct {
	Kind         string           `json:"kind"`
	CreatedAt    time.Time        `json:"created_at"`
	StatusChange *HistoryResponse `json:"status_change,omitempty"`
	Event        *EventResponse   `json:"event,omitempty"`
}

// Conversion functions

func ToLoadResponse(l *domainLoad.Load) *LoadResponse {
	if l == nil {
		return nil
	}

	resp := &LoadResponse{
		ID:                 l.ID,
		LoadNumber:         l.LoadNumber,
		Status:             l.Status,
		BrokerID:           l.BrokerID,
		ShipperID:          l.ShipperID,
		CarrierID:          l.CarrierID,
		DriverID:           l.DriverID,
		DispatcherID:       l.DispatcherID,
		OriginAddress:      l.OriginAddress,
		OriginLat:          l.OriginLat,
		OriginLng:          l.OriginLng,
		DestAddress:        l.DestAddress,
		DestLat:            l.DestLat,
		DestLng:            l.DestLng,
		Commodity:          l.Commodity,
		WeightLbs:          l.WeightLbs,
		EquipmentType:      l.EquipmentType,
		RoutingType:        l.RoutingType,
		CustomerRate:       l.CustomerRate,
		CarrierRate:        l.CarrierRate,
		PickupEarliest:     l.PickupEarliest,
		PickupLatest:       l.PickupLatest,
		DeliveryEarliest:   l.DeliveryEarliest,
		DeliveryLatest:     l.DeliveryLatest,
		Notes:              l.Notes,
		PostedToLoadboards: l.PostedToLoadboards,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}

	if l.CustomerRate != nil && l.CarrierRate != nil {
		margin := *l.CustomerRate - *l.CarrierRate
		resp.Margin = &margin
	}

	return resp
}

func ToStopResponse(s *domainLoad.Stop) *StopResponse {
	if s == nil {
		return nil
	}
	return &StopResponse{
		ID:              s.ID,
		LoadID:          s.LoadID,
		StopNumber:      s.StopNumber,
		StopType:        s.StopType,
		LocationName:    s.LocationName,
		Address:         s.Address,
		Lat:             s.Lat,
		Lng:             s.Lng,
		ContactName:     s.ContactName,
		ContactPhone:    s.ContactPhone,
		ScheduledStart:  s.ScheduledStart,
		ScheduledEnd:    s.ScheduledEnd,
		ActualArrival:   s.ActualArrival,
		ActualDeparture: s.ActualDeparture,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func ToCargoResponse(c *domainLoad.Cargo) *CargoResponse {
	if c == nil {
		return nil
	}
	return &CargoResponse{
		ID:             c.ID,
		LoadID:         c.LoadID,
		PickupStopID:   c.PickupStopID,
		DeliveryStopID: c.DeliveryStopID,
		Commodity:      c.Commodity,
		WeightLbs:      c.WeightLbs,
		Pieces:         c.Pieces,
		Pallets:        c.Pallets,
		Hazmat:         c.Hazmat,
		TempRequired:   c.TempRequired,
		TempMinF:       c.TempMinF,
		TempMaxF:       c.TempMaxF,
		DeclaredValue:  c.DeclaredValue,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func ToOfferResponse(o *domainLoad.Offer) *OfferResponse {
	if o == nil {
		return nil
	}
	return &OfferResponse{
		ID:          o.ID,
		LoadID:      o.LoadID,
		CarrierID:   o.CarrierID,
		OfferedRate: o.OfferedRate,
		ExpiresAt:   o.ExpiresAt,
		Status:      o.Status,
		Notes:       o.Notes,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func ToAssignmentResponse(a *domainLoad.Assignment) *AssignmentResponse {
	if a == nil {
		return nil
	}
	return &AssignmentResponse{
		ID:             a.ID,
		LoadID:         a.LoadID,
		CarrierID:      a.CarrierID,
		DriverID:       a.DriverID,
		EquipmentID:    a.EquipmentID,
		AssignedAt:     a.AssignedAt,
		UnassignedAt:   a.UnassignedAt,
		UnassignReason: a.UnassignReason,
		CreatedAt:      a.CreatedAt,
	}
}

func ToHistoryResponse(h *domainLoad.StatusHistory) *HistoryResponse {
	if h == nil {
		return nil
	}
	return &HistoryResponse{
		ID:        h.ID,
		LoadID:    h.LoadID,
		OldStatus: h.OldStatus,
		NewStatus: h.NewStatus,
		Reason:    h.Reason,
		ActorID:   h.ActorID,
		CreatedAt: h.CreatedAt,
	}
}

func ToEventResponse(e *domainLoad.StatusEvent) *EventResponse {
	if e == nil {
		return nil
	}
	return &EventResponse{
		ID:        e.ID,
		LoadID:    e.LoadID,
		EventType: e.EventType,
		Note:      e.Note,
		Lat:       e.Lat,
		Lng:       e.Lng,
		Metadata:  e.Metadata,
		ActorID:   e.ActorID,
		CreatedAt: e.CreatedAt,
	}
}

func ToPingResponse(p *domainLoad.TrackingPing) *PingResponse {
	if p == nil {
		return nil
	}
	return &PingResponse{
		ID:            p.ID,
		LoadID:        p.LoadID,
		Lat:           p.Lat,
		Lng:           p.Lng,
		SpeedMPH:      p.SpeedMPH,
		HeadingDeg:    p.HeadingDeg,
		OdometerMiles: p.OdometerMiles,
		FuelPercent:   p.FuelPercent,
		TemperatureF:  p.TemperatureF,
		StatusText:    p.StatusText,
		RecordedAt:    p.RecordedAt,
		CreatedAt:     p.CreatedAt,
	}
}

func ToDomainFilter(req *LoadFilterRequest) (*domainLoad.Filter, error) {
	if req == nil {
		return &domainLoad.Filter{}, nil
	}

	filter := &domainLoad.Filter{
		BrokerID:        req.BrokerID,
		ShipperID:       req.ShipperID,
		CarrierID:       req.CarrierID,
		DriverID:        req.DriverID,
		DispatcherID:    req.DispatcherID,
		CreatedAfter:    req.CreatedAfter,
		CreatedBefore:   req.CreatedBefore,
		PickupAfter:     req.PickupAfter,
		PickupBefore:    req.PickupBefore,
		PostedOnly:      req.PostedOnly,
		ExcludeTerminal: req.ExcludeTerminal,
		Search:          req.Search,
		Page:            req.Page,
		PageSize:        req.PageSize,
		SortBy:          req.SortBy,
		SortOrder:       req.SortOrder,
	}

	if req.Status != "" {
		status, err := domainLoad.ParseStatus(req.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	return filter, nil
}
