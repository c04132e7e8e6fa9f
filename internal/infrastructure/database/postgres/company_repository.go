package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freight-tms/internal/domain/company"
	"freight-tms/internal/infrastructure/database/postgres/models"
)

type CompanyRepository struct {
	db *DB
}

func NewCompanyRepository(db *DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) GetByID(ctx context.Context, companyID uuid.UUID) (*company.Company, error) {
	var dbModel models.CompanyModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", companyID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, company.ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return toCompanyEntity(&dbModel), nil
}

func (r *CompanyRepository) Exists(ctx context.Context, companyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.CompanyModel{}).
		Where("id = ? AND active = TRUE", companyID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check company existence: %w", err)
	}
	return count > 0, nil
}
