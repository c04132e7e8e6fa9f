package load

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for the load aggregate's scalar
// fields and its append-only logs. Direct status writes are rejected by the
// implementation; the only status mutation path is Transition.
type Repository interface {
	Create(ctx context.Context, l *Load) error
	GetByID(ctx context.Context, tenantID, loadID uuid.UUID) (*Load, error)
	// Update writes scalar fields and re-stamps updated_at. It never
	// touches status or created_at.
	Update(ctx context.Context, l *Load) error
	List(ctx context.Context, tenantID uuid.UUID, filter *Filter) ([]*Load, int64, error)
	Exists(ctx context.Context, loadID uuid.UUID) (bool, error)
	GetStatistics(ctx context.Context, tenantID uuid.UUID) (*Statistics, error)

	// Transition atomically moves the load from oldStatus to the history
	// row's new status and appends the row, in a single transaction. If
	// the stored status no longer equals oldStatus the whole unit fails
	// with ErrConcurrencyConflict.
	Transition(ctx context.Context, loadID uuid.UUID, oldStatus Status, hist *StatusHistory) error

	ListHistory(ctx context.Context, loadID uuid.UUID) ([]*StatusHistory, error)

	CreateEvent(ctx context.Context, e *StatusEvent) error
	GetEvent(ctx context.Context, eventID uuid.UUID) (*StatusEvent, error)
	ListEvents(ctx context.Context, loadID uuid.UUID, limit int) ([]*StatusEvent, error)
}

// StopRepository persists stops and cargo lines, which share the
// referential guard on stop deletion.
type StopRepository interface {
	CreateStop(ctx context.Context, s *Stop) error
	GetStop(ctx context.Context, stopID uuid.UUID) (*Stop, error)
	UpdateStop(ctx context.Context, s *Stop) error
	// DeleteStop fails with a ReferentialConflictError while any cargo
	// line references the stop. The check runs inside the delete
	// transaction.
	DeleteStop(ctx context.Context, stopID uuid.UUID) error
	ListStops(ctx context.Context, loadID uuid.UUID) ([]*Stop, error)
	// CountStopsByType returns (pickups, deliveries) for the load.
	CountStopsByType(ctx context.Context, loadID uuid.UUID) (int, int, error)
	// CountOpenDeliveryStops counts delivery stops without an actual
	// arrival.
	CountOpenDeliveryStops(ctx context.Context, loadID uuid.UUID) (int, error)

	CreateCargo(ctx context.Context, c *Cargo) error
	GetCargo(ctx context.Context, cargoID uuid.UUID) (*Cargo, error)
	UpdateCargo(ctx context.Context, c *Cargo) error
	DeleteCargo(ctx context.Context, cargoID uuid.UUID) error
	ListCargo(ctx context.Context, loadID uuid.UUID) ([]*Cargo, error)
}

// OfferRepository persists carrier bids and the assignment records their
// acceptance produces.
type OfferRepository interface {
	CreateOffer(ctx context.Context, o *Offer) error
	GetOffer(ctx context.Context, offerID uuid.UUID) (*Offer, error)
	ListOffers(ctx context.Context, loadID uuid.UUID) ([]*Offer, error)
	// AcceptOffer marks the offer accepted if it is still open and no
	// other offer on the load is accepted; otherwise
	// ErrOfferAlreadyAccepted or ErrOfferClosed.
	AcceptOffer(ctx context.Context, offerID uuid.UUID) (*Offer, error)
	RejectOffer(ctx context.Context, offerID uuid.UUID) (*Offer, error)
	// ExpireOpenOffers closes open offers whose expiry passed; returns
	// how many were expired.
	ExpireOpenOffers(ctx context.Context, now time.Time) (int64, error)

	CreateAssignment(ctx context.Context, a *Assignment) error
	GetAssignment(ctx context.Context, assignmentID uuid.UUID) (*Assignment, error)
	ListAssignments(ctx context.Context, loadID uuid.UUID) ([]*Assignment, error)
	// OpenAssignment returns the load's current (not yet unassigned)
	// assignment, or ErrAssignmentNotFound.
	OpenAssignment(ctx context.Context, loadID uuid.UUID) (*Assignment, error)
	CloseAssignment(ctx context.Context, assignmentID uuid.UUID, when time.Time, reason *string) (*Assignment, error)
}

// TrackingRepository persists telemetry pings.
type TrackingRepository interface {
	CreatePing(ctx context.Context, p *TrackingPing) error
	BatchInsertPings(ctx context.Context, pings []*TrackingPing) error
	ListPings(ctx context.Context, loadID uuid.UUID, limit int) ([]*TrackingPing, error)
}

// Filter narrows and pages load listings.
type Filter struct {
	Status       *Status
	BrokerID     *uuid.UUID
	ShipperID    *uuid.UUID
	CarrierID    *uuid.UUID
	DriverID     *uuid.UUID
	DispatcherID *uuid.UUID

	CreatedAfter    *time.Time
	CreatedBefore   *time.Time
	PickupAfter     *time.Time
	PickupBefore    *time.Time
	PostedOnly      bool
	ExcludeTerminal bool

	// Search matches load number, commodity and both addresses.
	Search string

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
