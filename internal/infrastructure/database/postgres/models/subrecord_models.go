package models

import (
	"time"

	"github.com/google/uuid"
)

// LoadStopModel represents the database model for load stops
type LoadStopModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LoadID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_stops_load_number,priority:1"`
	StopNumber int       `gorm:"not null;uniqueIndex:idx_stops_load_number,priority:2"`
	StopType   string    `gorm:"type:varchar(16);not null"`

	LocationName string   `gorm:"type:text"`
	Address      string   `gorm:"type:text;not null"`
	Lat          *float64 `gorm:"type:decimal(9,6)"`
	Lng          *float64 `gorm:"type:decimal(9,6)"`
	ContactName  *string  `gorm:"type:text"`
	ContactPhone *string  `gorm:"type:varchar(32)"`

	ScheduledStart *time.Time `gorm:"type:timestamptz"`
	ScheduledEnd   *time.Time `gorm:"type:timestamptz"`

	ActualArrival   *time.Time `gorm:"type:timestamptz"`
	ActualDeparture *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Load *LoadModel `gorm:"foreignKey:LoadID"`
}

func (LoadStopModel) TableName() string {
	return "load_stops"
}

// LoadCargoModel represents the database model for cargo lines
type LoadCargoModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LoadID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	PickupStopID   *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryStopID *uuid.UUID `gorm:"type:uuid;index"`

	Commodity     string   `gorm:"type:text;not null"`
	WeightLbs     *float64 `gorm:"type:decimal(10,2)"`
	Pieces        *int     `gorm:"type:integer"`
	Pallets       *int     `gorm:"type:integer"`
	Hazmat        bool     `gorm:"not null;default:false"`
	TempRequired  bool     `gorm:"not null;default:false"`
	TempMinF      *float64 `gorm:"type:decimal(6,2)"`
	TempMaxF      *float64 `gorm:"type:decimal(6,2)"`
	DeclaredValue *float64 `gorm:"type:decimal(12,2)"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Load         *LoadModel     `gorm:"foreignKey:LoadID"`
	PickupStop   *LoadStopModel `gorm:"foreignKey:PickupStopID"`
	DeliveryStop *LoadStopModel `gorm:"foreignKey:DeliveryStopID"`
}

func (LoadCargoModel) TableName() string {
	return "load_cargos"
}

// LoadOfferModel represents the database model for carrier offers.
// idx_load_offers_one_accepted (see migrations.go) backs the
// one-accepted-offer invariant at the schema level; the repository enforces
// it transactionally as well.
type LoadOfferModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LoadID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	CarrierID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	OfferedRate float64    `gorm:"type:decimal(12,2);not null"`
	ExpiresAt   *time.Time `gorm:"type:timestamptz;index"`
	Status      string     `gorm:"type:varchar(16);not null;default:'open';index"`
	Notes       *string    `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Load *LoadModel `gorm:"foreignKey:LoadID"`
}

func (LoadOfferModel) TableName() string {
	return "load_offers"
}

// LoadAssignmentModel represents the database model for assignments
type LoadAssignmentModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LoadID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	CarrierID   *uuid.UUID `gorm:"type:uuid;index"`
	DriverID    *uuid.UUID `gorm:"type:uuid;index"`
	EquipmentID *uuid.UUID `gorm:"type:uuid"`

	AssignedAt     time.Time  `gorm:"type:timestamptz;not null"`
	UnassignedAt   *time.Time `gorm:"type:timestamptz"`
	UnassignReason *string    `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null"`

	Load *LoadModel `gorm:"foreignKey:LoadID"`
}

func (LoadAssignmentModel) TableName() string {
	return "load_assignments"
}

// LoadTrackingModel is the append-only telemetry table, high volume.
type LoadTrackingModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LoadID uuid.UUID `gorm:"type:uuid;not null;index:idx_tracking_load_recorded,priority:1"`

	Lat           float64  `gorm:"type:decimal(9,6);not null"`
	Lng           float64  `gorm:"type:decimal(9,6);not null"`
	SpeedMPH      *float64 `gorm:"type:decimal(6,2)"`
	HeadingDeg    *float64 `gorm:"type:decimal(5,2)"`
	OdometerMiles *float64 `gorm:"type:decimal(10,1)"`
	FuelPercent   *float64 `gorm:"type:decimal(5,2)"`
	TemperatureF  *float64 `gorm:"type:decimal(6,2)"`
	StatusText    *string  `gorm:"type:text"`

	RecordedAt time.Time `gorm:"type:timestamptz;not null;index:idx_tracking_load_recorded,priority:2,sort:desc"`
	CreatedAt  time.Time `gorm:"not null"`

	Load *LoadModel `gorm:"foreignKey:LoadID"`
}

func (LoadTrackingModel) TableName() string {
	return "load_tracking"
}

// CompanyModel represents the database model for the company directory
type CompanyModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:text;not null"`
	Type      string    `gorm:"type:varchar(16);not null;index"`
	MCNumber  *string   `gorm:"type:varchar(32)"`
	DOTNumber *string   `gorm:"type:varchar(32)"`
	Phone     *string   `gorm:"type:varchar(32)"`
	Email     *string   `gorm:"type:text"`
	Active    bool      `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CompanyModel) TableName() string {
	return "companies"
}
