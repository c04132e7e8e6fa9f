package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freight-tms/internal/domain/load"
	"freight-tms/internal/infrastructure/database/postgres/models"
)

type OfferRepository struct {
	db *DB
}

func NewOfferRepository(db *DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) CreateOffer(ctx context.Context, o *load.Offer) error {
	o.ID = uuid.New()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	if o.Status == "" {
		o.Status = load.OfferStatusOpen
	}

	dbModel := toOfferModel(o)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}

	return nil
}

func (r *OfferRepository) GetOffer(ctx context.Context, offerID uuid.UUID) (*load.Offer, error) {
	var dbModel models.LoadOfferModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", offerID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, load.ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	return toOfferEntity(&dbModel), nil
}

func (r *OfferRepository) ListOffers(ctx context.Context, loadID uuid.UUID) ([]*load.Offer, error) {
	var dbModels []models.LoadOfferModel
	err := r.db.DB.WithContext(ctx).
		Where("load_id = ?", loadID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	offers := make([]*load.Offer, len(dbModels))
	for i := range dbModels {
		offers[i] = toOfferEntity(&dbModels[i])
	}
	return offers, nil
}

// AcceptOffer enforces the one-accepted-offer invariant inside a
// transaction. Every offer row of the load is locked in one statement, so
// concurrent accepts of different offers on the same load serialize on the
// same row set; locking only the target row would let both commit under
// read committed. The partial unique index on load_offers is the schema
// backstop.
func (r *OfferRepository) AcceptOffer(ctx context.Context, offerID uuid.UUID) (*load.Offer, error) {
	var accepted *load.Offer
	err := r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.LoadOfferModel
		err := tx.Where("id = ?", offerID).First(&target).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return load.ErrOfferNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get offer: %w", err)
		}

		// Deterministic lock order avoids deadlocks between racing accepts.
		var siblings []models.LoadOfferModel
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("load_id = ?", target.LoadID).
			Order("id").
			Find(&siblings).Error
		if err != nil {
			return fmt.Errorf("failed to lock offers: %w", err)
		}

		var locked *models.LoadOfferModel
		for i := range siblings {
			if siblings[i].ID == offerID {
				locked = &siblings[i]
				continue
			}
			if siblings[i].Status == string(load.OfferStatusAccepted) {
				return load.ErrOfferAlreadyAccepted
			}
		}
		if locked == nil {
			return load.ErrOfferNotFound
		}
		if locked.Status != string(load.OfferStatusOpen) {
			return load.ErrOfferClosed
		}

		now := time.Now()
		result := tx.Model(&models.LoadOfferModel{}).
			Where("id = ?", offerID).
			Updates(map[string]interface{}{
				"status":     string(load.OfferStatusAccepted),
				"updated_at": now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to accept offer: %w", result.Error)
		}

		locked.Status = string(load.OfferStatusAccepted)
		locked.UpdatedAt = now
		accepted = toOfferEntity(locked)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

func (r *OfferRepository) RejectOffer(ctx context.Context, offerID uuid.UUID) (*load.Offer, error) {
	now := time.Now()
	result := r.db.DB.WithContext(ctx).
		Model(&models.LoadOfferModel{}).
		Where("id = ? AND status = ?", offerID, string(load.OfferStatusOpen)).
		Updates(map[string]interface{}{
			"status":     string(load.OfferStatusRejected),
			"updated_at": now,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to reject offer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Distinguish missing from already-closed for the caller.
		if _, err := r.GetOffer(ctx, offerID); err != nil {
			return nil, err
		}
		return nil, load.ErrOfferClosed
	}

	return r.GetOffer(ctx, offerID)
}

func (r *OfferRepository) ExpireOpenOffers(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Model(&models.LoadOfferModel{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", string(load.OfferStatusOpen), now).
		Updates(map[string]interface{}{
			"status":     string(load.OfferStatusExpired),
			"updated_at": now,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire offers: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *OfferRepository) CreateAssignment(ctx context.Context, a *load.Assignment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	if a.AssignedAt.IsZero() {
		a.AssignedAt = a.CreatedAt
	}

	dbModel := toAssignmentModel(a)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

func (r *OfferRepository) GetAssignment(ctx context.Context, assignmentID uuid.UUID) (*load.Assignment, error) {
	var dbModel models.LoadAssignmentModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", assignmentID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, load.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	return toAssignmentEntity(&dbModel), nil
}

func (r *OfferRepository) ListAssignments(ctx context.Context, loadID uuid.UUID) ([]*load.Assignment, error) {
	var dbModels []models.LoadAssignmentModel
	err := r.db.DB.WithContext(ctx).
		Where("load_id = ?", loadID).
		Order("assigned_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	assignments := make([]*load.Assignment, len(dbModels))
	for i := range dbModels {
		assignments[i] = toAssignmentEntity(&dbModels[i])
	}
	return assignments, nil
}

func (r *OfferRepository) OpenAssignment(ctx context.Context, loadID uuid.UUID) (*load.Assignment, error) {
	var dbModel models.LoadAssignmentModel
	err := r.db.DB.WithContext(ctx).
		Where("load_id = ? AND unassigned_at IS NULL", loadID).
		Order("assigned_at DESC").
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, load.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open assignment: %w", err)
	}

	return toAssignmentEntity(&dbModel), nil
}

func (r *OfferRepository) CloseAssignment(ctx context.Context, assignmentID uuid.UUID, when time.Time, reason *string) (*load.Assignment, error) {
	result := r.db.DB.WithContext(ctx).
		Model(&models.LoadAssignmentModel{}).
		Where("id = ? AND unassigned_at IS NULL", assignmentID).
		Updates(map[string]interface{}{
			"unassigned_at":   when,
			"unassign_reason": reason,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to close assignment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetAssignment(ctx, assignmentID); err != nil {
			return nil, err
		}
		return nil, load.ErrAssignmentClosed
	}

	return r.GetAssignment(ctx, assignmentID)
}
