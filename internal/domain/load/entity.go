package load

import (
	"time"

	"github.com/google/uuid"
)

// StopType distinguishes pickup from delivery waypoints.
type StopType string

const (
	StopTypePickup   StopType = "pickup"
	StopTypeDelivery StopType = "delivery"
)

// OfferStatus is the lifecycle of a carrier's bid.
type OfferStatus string

const (
	OfferStatusOpen     OfferStatus = "open"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusRejected OfferStatus = "rejected"
	OfferStatusExpired  OfferStatus = "expired"
)

// Load is the shipment record and the aggregate root: stops, cargo lines,
// offers, assignments, history, events and tracking pings are each owned by
// exactly one load. Loads are never hard-deleted in normal operation; the
// soft lifecycle ends in cancelled, paid or closed.
type Load struct {
	ID       uuid.UUID
	TenantID uuid.UUID

	// Human-readable identifier, unique per tenant.
	LoadNumber string

	// Party references. Opaque ids validated against the company
	// directory, not enforced as relational constraints at this layer.
	BrokerID     *uuid.UUID
	ShipperID    *uuid.UUID
	CarrierID    *uuid.UUID
	DriverID     *uuid.UUID
	DispatcherID *uuid.UUID

	Status Status

	OriginAddress string
	OriginLat     *float64
	OriginLng     *float64
	DestAddress   string
	DestLat       *float64
	DestLng       *float64

	Commodity     string
	WeightLbs     *float64
	EquipmentType string
	RoutingType   string

	CustomerRate *float64
	CarrierRate  *float64

	PickupEarliest   *time.Time
	PickupLatest     *time.Time
	DeliveryEarliest *time.Time
	DeliveryLatest   *time.Time

	Notes              *string
	PostedToLoadboards bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Stop is an ordered waypoint on a load's route. Stop numbers are unique
// and strictly increasing within one load.
type Stop struct {
	ID         uuid.UUID
	LoadID     uuid.UUID
	StopNumber int
	StopType   StopType

	LocationName string
	Address      string
	Lat          *float64
	Lng          *float64
	ContactName  *string
	ContactPhone *string

	ScheduledStart *time.Time
	ScheduledEnd   *time.Time

	// Filled in as execution proceeds.
	ActualArrival   *time.Time
	ActualDeparture *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Cargo is a line item of goods on a load. Its stop references, when set,
// must resolve to stops of the same load.
type Cargo struct {
	ID             uuid.UUID
	LoadID         uuid.UUID
	PickupStopID   *uuid.UUID
	DeliveryStopID *uuid.UUID

	Commodity     string
	WeightLbs     *float64
	Pieces        *int
	Pallets       *int
	Hazmat        bool
	TempRequired  bool
	TempMinF      *float64
	TempMaxF      *float64
	DeclaredValue *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Offer is a carrier's bid on a load. At most one offer per load may be
// accepted at a time.
type Offer struct {
	ID          uuid.UUID
	LoadID      uuid.UUID
	CarrierID   uuid.UUID
	OfferedRate float64
	ExpiresAt   *time.Time
	Status      OfferStatus
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Assignment records who was assigned to execute a load and when.
// Append-mostly: unassignment closes the open record rather than deleting
// it.
type Assignment struct {
	ID          uuid.UUID
	LoadID      uuid.UUID
	CarrierID   *uuid.UUID
	DriverID    *uuid.UUID
	EquipmentID *uuid.UUID

	AssignedAt     time.Time
	UnassignedAt   *time.Time
	UnassignReason *string

	CreatedAt time.Time
}

// StatusHistory is the authoritative, immutable log of status changes.
type StatusHistory struct {
	ID        uuid.UUID
	LoadID    uuid.UUID
	OldStatus Status
	NewStatus Status
	Reason    *string
	ActorID   *uuid.UUID
	CreatedAt time.Time
}

// StatusEvent is the richer operational event log: arbitrary event types
// beyond status changes, with optional position and free-form metadata.
// Immutable once written.
type StatusEvent struct {
	ID        uuid.UUID
	LoadID    uuid.UUID
	EventType string
	Note      *string
	Lat       *float64
	Lng       *float64
	Metadata  map[string]string
	ActorID   *uuid.UUID
	CreatedAt time.Time
}

// TrackingPing is a telemetry sample from the vehicle executing a load.
// Append-only and high volume.
type TrackingPing struct {
	ID     uuid.UUID
	LoadID uuid.UUID

	Lat           float64
	Lng           float64
	SpeedMPH      *float64
	HeadingDeg    *float64
	OdometerMiles *float64
	FuelPercent   *float64
	TemperatureF  *float64
	StatusText    *string

	RecordedAt time.Time
	CreatedAt  time.Time
}

// Statistics summarizes the tenant's book of loads.
type Statistics struct {
	TotalLoads     int
	ByStatus       map[string]int
	ActiveLoads    int
	DeliveredToday int
}
