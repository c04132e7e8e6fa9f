package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"freight-tms/internal/domain/load"
	"freight-tms/internal/infrastructure/database/postgres/models"
)

type StopRepository struct {
	db *DB
}

func NewStopRepository(db *DB) *StopRepository {
	return &StopRepository{db: db}
}

func (r *StopRepository) CreateStop(ctx context.Context, s *load.Stop) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt

	dbModel := toStopModel(s)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isUniqueViolation(err) {
			return load.ErrDuplicateStopNumber
		}
		return fmt.Errorf("failed to create stop: %w", err)
	}

	return nil
}

func (r *StopRepository) GetStop(ctx context.Context, stopID uuid.UUID) (*load.Stop, error) {
	var dbModel models.LoadStopModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", stopID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, load.ErrStopNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stop: %w", err)
	}

	return toStopEntity(&dbModel), nil
}

func (r *StopRepository) UpdateStop(ctx context.Context, s *load.Stop) error {
	s.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.LoadStopModel{}).
		Where("id = ? AND load_id = ?", s.ID, s.LoadID).
		Updates(map[string]interface{}{
			"stop_number":      s.StopNumber,
			"stop_type":        string(s.StopType),
			"location_name":    s.LocationName,
			"address":          s.Address,
			"lat":              s.Lat,
			"lng":              s.Lng,
			"contact_name":     s.ContactName,
			"contact_phone":    s.ContactPhone,
			"scheduled_start":  s.ScheduledStart,
			"scheduled_end":    s.ScheduledEnd,
			"actual_arrival":   s.ActualArrival,
			"actual_departure": s.ActualDeparture,
			"updated_at":       s.UpdatedAt,
		})

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return load.ErrDuplicateStopNumber
		}
		return fmt.Errorf("failed to update stop: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return load.ErrStopNotFound
	}

	return nil
}

// DeleteStop re-checks for referencing cargo inside the delete transaction
// so a cargo row created between check and delete cannot slip through.
func (r *StopRepository) DeleteStop(ctx context.Context, stopID uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cargoIDs []uuid.UUID
		err := tx.Model(&models.LoadCargoModel{}).
			Where("pickup_stop_id = ? OR delivery_stop_id = ?", stopID, stopID).
			Pluck("id", &cargoIDs).Error
		if err != nil {
			return fmt.Errorf("failed to check cargo references: %w", err)
		}
		if len(cargoIDs) > 0 {
			return &load.ReferentialConflictError{StopID: stopID, CargoIDs: cargoIDs}
		}

		result := tx.Where("id = ?", stopID).Delete(&models.LoadStopModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete stop: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return load.ErrStopNotFound
		}

		return nil
	})
}

func (r *StopRepository) ListStops(ctx context.Context, loadID uuid.UUID) ([]*load.Stop, error) {
	var dbModels []models.LoadStopModel
	err := r.db.DB.WithContext(ctx).
		Where("load_id = ?", loadID).
		Order("stop_number ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stops: %w", err)
	}

	stops := make([]*load.Stop, len(dbModels))
	for i := range dbModels {
		stops[i] = toStopEntity(&dbModels[i])
	}
	return stops, nil
}

func (r *StopRepository) CountStopsByType(ctx context.Context, loadID uuid.UUID) (int, int, error) {
	var counts []struct {
		StopType string
		Count    int
	}
	err := r.db.DB.WithContext(ctx).
		Model(&models.LoadStopModel{}).
		Select("stop_type, COUNT(*) as count").
		Where("load_id = ?", loadID).
		Group("stop_type").
		Scan(&counts).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count stops: %w", err)
	}

	var pickups, deliveries int
	for _, c := range counts {
		switch load.StopType(c.StopType) {
		case load.StopTypePickup:
			pickups = c.Count
		case load.StopTypeDelivery:
			deliveries = c.Count
		}
	}
	return pickups, deliveries, nil
}

func (r *StopRepository) CountOpenDeliveryStops(ctx context.Context, loadID uuid.UUID) (int, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.LoadStopModel{}).
		Where("load_id = ? AND stop_type = ? AND actual_arrival IS NULL", loadID, string(load.StopTypeDelivery)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count open delivery stops: %w", err)
	}
	return int(count), nil
}

func (r *StopRepository) CreateCargo(ctx context.Context, c *load.Cargo) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt

	dbModel := toCargoModel(c)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create cargo: %w", err)
	}

	return nil
}

func (r *StopRepository) GetCargo(ctx context.Context, cargoID uuid.UUID) (*load.Cargo, error) {
	var dbModel models.LoadCargoModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", cargoID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, load.ErrCargoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cargo: %w", err)
	}

	return toCargoEntity(&dbModel), nil
}

func (r *StopRepository) UpdateCargo(ctx context.Context, c *load.Cargo) error {
	c.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.LoadCargoModel{}).
		Where("id = ? AND load_id = ?", c.ID, c.LoadID).
		Updates(map[string]interface{}{
			"pickup_stop_id":   c.PickupStopID,
			"delivery_stop_id": c.DeliveryStopID,
			"commodity":        c.Commodity,
			"weight_lbs":       c.WeightLbs,
			"pieces":           c.Pieces,
			"pallets":          c.Pallets,
			"hazmat":           c.Hazmat,
			"temp_required":    c.TempRequired,
			"temp_min_f":       c.TempMinF,
			"temp_max_f":       c.TempMaxF,
			"declared_value":   c.DeclaredValue,
			"updated_at":       c.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update cargo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return load.ErrCargoNotFound
	}

	return nil
}

func (r *StopRepository) DeleteCargo(ctx context.Context, cargoID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", cargoID).
		Delete(&models.LoadCargoModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete cargo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return load.ErrCargoNotFound
	}

	return nil
}

func (r *StopRepository) ListCargo(ctx context.Context, loadID uuid.UUID) ([]*load.Cargo, error) {
	var dbModels []models.LoadCargoModel
	err := r.db.DB.WithContext(ctx).
		Where("load_id = ?", loadID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cargo: %w", err)
	}

	cargo := make([]*load.Cargo, len(dbModels))
	for i := range dbModels {
		cargo[i] = toCargoEntity(&dbModels[i])
	}
	return cargo, nil
}
