package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freight-tms/internal/domain/load"
	"freight-tms/internal/infrastructure/database/postgres/models"
)

type TrackingRepository struct {
	db *DB
}

func NewTrackingRepository(db *DB) *TrackingRepository {
	return &TrackingRepository{db: db}
}

func (r *TrackingRepository) CreatePing(ctx context.Context, p *load.TrackingPing) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	if p.RecordedAt.IsZero() {
		p.RecordedAt = p.CreatedAt
	}

	dbModel := toTrackingModel(p)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create tracking ping: %w", err)
	}

	return nil
}

// BatchInsertPings is the ingestion pipeline's bulk write path.
func (r *TrackingRepository) BatchInsertPings(ctx context.Context, pings []*load.TrackingPing) error {
	if len(pings) == 0 {
		return nil
	}

	now := time.Now()
	dbModels := make([]models.LoadTrackingModel, len(pings))
	for i, p := range pings {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.RecordedAt.IsZero() {
			p.RecordedAt = now
		}
		p.CreatedAt = now
		dbModels[i] = *toTrackingModel(p)
	}

	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(dbModels, 500).Error; err != nil {
			return fmt.Errorf("failed to insert tracking batch: %w", err)
		}
		return nil
	})
}

func (r *TrackingRepository) ListPings(ctx context.Context, loadID uuid.UUID, limit int) ([]*load.TrackingPing, error) {
	if limit <= 0 {
		limit = 200
	}

	var dbModels []models.LoadTrackingModel
	err := r.db.DB.WithContext(ctx).
		Where("load_id = ?", loadID).
		Order("recorded_at DESC").
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking pings: %w", err)
	}

	pings := make([]*load.TrackingPing, len(dbModels))
	for i := range dbModels {
		pings[i] = toTrackingEntity(&dbModels[i])
	}
	return pings, nil
}
