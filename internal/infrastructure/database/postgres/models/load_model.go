package models

import (
	"time"

	"github.com/google/uuid"
)

// LoadModel represents the database model for Loads
type LoadModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_loads_tenant_number,priority:1"`

	LoadNumber string `gorm:"type:varchar(64);not null;uniqueIndex:idx_loads_tenant_number,priority:2"`

	BrokerID     *uuid.UUID `gorm:"type:uuid;index"`
	ShipperID    *uuid.UUID `gorm:"type:uuid;index"`
	CarrierID    *uuid.UUID `gorm:"type:uuid;index"`
	DriverID     *uuid.UUID `gorm:"type:uuid;index"`
	DispatcherID *uuid.UUID `gorm:"type:uuid;index"`

	Status string `gorm:"type:varchar(32);not null;default:'draft';index"`

	OriginAddress string   `gorm:"type:text;not null"`
	OriginLat     *float64 `gorm:"type:decimal(9,6)"`
	OriginLng     *float64 `gorm:"type:decimal(9,6)"`
	DestAddress   string   `gorm:"type:text;not null"`
	DestLat       *float64 `gorm:"type:decimal(9,6)"`
	DestLng       *float64 `gorm:"type:decimal(9,6)"`

	Commodity     string   `gorm:"type:text"`
	WeightLbs     *float64 `gorm:"type:decimal(10,2)"`
	EquipmentType string   `gorm:"type:varchar(64)"`
	RoutingType   string   `gorm:"type:varchar(32)"`

	CustomerRate *float64 `gorm:"type:decimal(12,2)"`
	CarrierRate  *float64 `gorm:"type:decimal(12,2)"`

	PickupEarliest   *time.Time `gorm:"type:timestamptz"`
	PickupLatest     *time.Time `gorm:"type:timestamptz"`
	DeliveryEarliest *time.Time `gorm:"type:timestamptz"`
	DeliveryLatest   *time.Time `gorm:"type:timestamptz"`

	Notes              *string `gorm:"type:text"`
	PostedToLoadboards bool    `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (LoadModel) TableName() string {
	return "loads"
}

// LoadStatusHistoryModel is append-only; rows are never updated.
type LoadStatusHistoryModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LoadID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	OldStatus string     `gorm:"type:varchar(32);not null"`
	NewStatus string     `gorm:"type:varchar(32);not null"`
	Reason    *string    `gorm:"type:text"`
	ActorID   *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"not null;index"`

	Load *LoadModel `gorm:"foreignKey:LoadID"`
}

func (LoadStatusHistoryModel) TableName() string {
	return "load_status_histories"
}

// LoadStatusEventModel is the richer operational event log, append-only.
type LoadStatusEventModel struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LoadID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	EventType string            `gorm:"type:varchar(64);not null;index"`
	Note      *string           `gorm:"type:text"`
	Lat       *float64          `gorm:"type:decimal(9,6)"`
	Lng       *float64          `gorm:"type:decimal(9,6)"`
	Metadata  map[string]string `gorm:"serializer:json;type:jsonb"`
	ActorID   *uuid.UUID        `gorm:"type:uuid"`
	CreatedAt time.Time         `gorm:"not null;index"`

	Load *LoadModel `gorm:"foreignKey:LoadID"`
}

func (LoadStatusEventModel) TableName() string {
	return "load_status_events"
}
