package company

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCompanyNotFound = errors.New("company not found")

// CompanyType labels what part a company plays in a load.
type CompanyType string

const (
	TypeBroker  CompanyType = "broker"
	TypeShipper CompanyType = "shipper"
	TypeCarrier CompanyType = "carrier"
)

// Company is the directory record loads reference as broker, shipper or
// carrier. Validation of those references happens here, not as relational
// constraints on the loads table.
type Company struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      string
	Type      CompanyType
	MCNumber  *string
	DOTNumber *string
	Phone     *string
	Email     *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Repository is the collaborator interface the load service uses to check
// that party ids are real companies.
type Repository interface {
	GetByID(ctx context.Context, companyID uuid.UUID) (*Company, error)
	Exists(ctx context.Context, companyID uuid.UUID) (bool, error)
}
