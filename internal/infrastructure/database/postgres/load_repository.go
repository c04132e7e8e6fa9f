package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"freight-tms/internal/domain/load"
	"freight-tms/internal/infrastructure/database/postgres/models"
)

type LoadRepository struct {
	db *DB
}

func NewLoadRepository(db *DB) *LoadRepository {
	return &LoadRepository{db: db}
}

func (r *LoadRepository) Create(ctx context.Context, l *load.Load) error {
	l.ID = uuid.New()
	l.CreatedAt = time.Now()
	l.UpdatedAt = l.CreatedAt
	if l.Status == "" {
		l.Status = load.StatusDraft
	}

	dbModel := toLoadModel(l)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isUniqueViolation(err) {
			return load.ErrDuplicateLoadNumber
		}
		return fmt.Errorf("failed to create load: %w", err)
	}

	l.ID = dbModel.ID
	l.CreatedAt = dbModel.CreatedAt
	l.UpdatedAt = dbModel.UpdatedAt

	return nil
}

func (r *LoadRepository) GetByID(ctx context.Context, tenantID, loadID uuid.UUID) (*load.Load, error) {
	var dbModel models.LoadModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", loadID, tenantID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, load.ErrLoadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get load: %w", err)
	}

	return toLoadEntity(&dbModel), nil
}

// Update writes scalar fields only. Status and created_at stay untouched;
// the transition path owns status.
func (r *LoadRepository) Update(ctx context.Context, l *load.Load) error {
	l.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.LoadModel{}).
		Where("id = ? AND tenant_id = ?", l.ID, l.TenantID).
		Updates(map[string]interface{}{
			"load_number":          l.LoadNumber,
			"broker_id":            l.BrokerID,
			"shipper_id":           l.ShipperID,
			"carrier_id":           l.CarrierID,
			"driver_id":            l.DriverID,
			"dispatcher_id":        l.DispatcherID,
			"origin_address":       l.OriginAddress,
			"origin_lat":           l.OriginLat,
			"origin_lng":           l.OriginLng,
			"dest_address":         l.DestAddress,
			"dest_lat":             l.DestLat,
			"dest_lng":             l.DestLng,
			"commodity":            l.Commodity,
			"weight_lbs":           l.WeightLbs,
			"equipment_type":       l.EquipmentType,
			"routing_type":         l.RoutingType,
			"customer_rate":        l.CustomerRate,
			"carrier_rate":         l.CarrierRate,
			"pickup_earliest":      l.PickupEarliest,
			"pickup_latest":        l.PickupLatest,
			"delivery_earliest":    l.DeliveryEarliest,
			"delivery_latest":      l.DeliveryLatest,
			"notes":                l.Notes,
			"posted_to_loadboards": l.PostedToLoadboards,
			"updated_at":           l.UpdatedAt,
		})

	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return load.ErrDuplicateLoadNumber
		}
		return fmt.Errorf("failed to update load: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return load.ErrLoadNotFound
	}

	return nil
}

func (r *LoadRepository) Exists(ctx context.Context, loadID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.LoadModel{}).
		Where("id = ?", loadID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check load existence: %w", err)
	}
	return count > 0, nil
}

func (r *LoadRepository) List(ctx context.Context, tenantID uuid.UUID, filter *load.Filter) ([]*load.Load, int64, error) {
	var dbModels []models.LoadModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.LoadModel{}).
		Where("tenant_id = ?", tenantID)

	// Apply filters
	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.BrokerID != nil {
		db = db.Where("broker_id = ?", *filter.BrokerID)
	}
	if filter.ShipperID != nil {
		db = db.Where("shipper_id = ?", *filter.ShipperID)
	}
	if filter.CarrierID != nil {
		db = db.Where("carrier_id = ?", *filter.CarrierID)
	}
	if filter.DriverID != nil {
		db = db.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.DispatcherID != nil {
		db = db.Where("dispatcher_id = ?", *filter.DispatcherID)
	}
	if filter.CreatedAfter != nil {
		db = db.Where("created_at >= ?", filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		db = db.Where("created_at <= ?", filter.CreatedBefore)
	}
	if filter.PickupAfter != nil {
		db = db.Where("pickup_earliest >= ?", filter.PickupAfter)
	}
	if filter.PickupBefore != nil {
		db = db.Where("pickup_earliest <= ?", filter.PickupBefore)
	}
	if filter.PostedOnly {
		db = db.Where("posted_to_loadboards = TRUE")
	}
	if filter.ExcludeTerminal {
		terminal := make([]string, 0, 3)
		for _, s := range load.TerminalStatuses() {
			terminal = append(terminal, string(s))
		}
		db = db.Where("status NOT IN ?", terminal)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		db = db.Where("load_number ILIKE ? OR commodity ILIKE ? OR origin_address ILIKE ? OR dest_address ILIKE ?",
			search, search, search, search)
	}

	// Count total
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count loads: %w", err)
	}

	// Apply sorting
	sortBy := "created_at"
	switch filter.SortBy {
	case "updated_at", "load_number", "pickup_earliest", "delivery_latest", "customer_rate":
		sortBy = filter.SortBy
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	// Apply pagination
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	err := db.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Limit(pageSize).
		Offset(offset).
		Find(&dbModels).Error

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list loads: %w", err)
	}

	loads := make([]*load.Load, len(dbModels))
	for i := range dbModels {
		loads[i] = toLoadEntity(&dbModels[i])
	}

	return loads, total, nil
}

// Transition is the single write path for status. It locks the load row,
// re-checks the caller's observed status, writes the new status with a
// compare-and-set and appends the history row, all in one transaction.
// Either both writes land or neither does.
func (r *LoadRepository) Transition(ctx context.Context, loadID uuid.UUID, oldStatus load.Status, hist *load.StatusHistory) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dbModel models.LoadModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", loadID).
			First(&dbModel).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return load.ErrLoadNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to lock load: %w", err)
		}

		if dbModel.Status != string(oldStatus) {
			return load.ErrConcurrencyConflict
		}

		now := time.Now()
		result := tx.Model(&models.LoadModel{}).
			Where("id = ? AND status = ?", loadID, string(oldStatus)).
			Updates(map[string]interface{}{
				"status":     string(hist.NewStatus),
				"updated_at": now,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update load status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return load.ErrConcurrencyConflict
		}

		hm := toHistoryModel(hist)
		hm.ID = uuid.New()
		hm.CreatedAt = now
		if err := tx.Create(hm).Error; err != nil {
			return fmt.Errorf("failed to append status history: %w", err)
		}

		hist.ID = hm.ID
		hist.CreatedAt = hm.CreatedAt
		return nil
	})
}

func (r *LoadRepository) ListHistory(ctx context.Context, loadID uuid.UUID) ([]*load.StatusHistory, error) {
	var dbModels []models.LoadStatusHistoryModel
	err := r.db.DB.WithContext(ctx).
		Where("load_id = ?", loadID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list status history: %w", err)
	}

	history := make([]*load.StatusHistory, len(dbModels))
	for i := range dbModels {
		history[i] = toHistoryEntity(&dbModels[i])
	}
	return history, nil
}

func (r *LoadRepository) CreateEvent(ctx context.Context, e *load.StatusEvent) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()

	dbModel := toEventModel(e)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create status event: %w", err)
	}
	return nil
}

func (r *LoadRepository) GetEvent(ctx context.Context, eventID uuid.UUID) (*load.StatusEvent, error) {
	var dbModel models.LoadStatusEventModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", eventID).
		First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, load.ErrLoadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get status event: %w", err)
	}
	return toEventEntity(&dbModel), nil
}

func (r *LoadRepository) ListEvents(ctx context.Context, loadID uuid.UUID, limit int) ([]*load.StatusEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	var dbModels []models.LoadStatusEventModel
	err := r.db.DB.WithContext(ctx).
		Where("load_id = ?", loadID).
		Order("created_at DESC").
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list status events: %w", err)
	}

	events := make([]*load.StatusEvent, len(dbModels))
	for i := range dbModels {
		events[i] = toEventEntity(&dbModels[i])
	}
	return events, nil
}

func (r *LoadRepository) GetStatistics(ctx context.Context, tenantID uuid.UUID) (*load.Statistics, error) {
	stats := &load.Statistics{
		ByStatus: make(map[string]int),
	}

	var statusCounts []struct {
		Status string
		Count  int
	}
	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) as count
		FROM loads
		WHERE tenant_id = ?
		GROUP BY status
	`, tenantID).Scan(&statusCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get status counts: %w", err)
	}

	for _, sc := range statusCounts {
		stats.TotalLoads += sc.Count
		stats.ByStatus[sc.Status] = sc.Count
	}

	err = r.db.DB.WithContext(ctx).Raw(`
		SELECT COUNT(*) as count
		FROM loads
		WHERE tenant_id = ? AND status IN ('assigned', 'dispatched', 'in_transit')
	`, tenantID).Scan(&stats.ActiveLoads).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active loads: %w", err)
	}

	today := time.Now().Truncate(24 * time.Hour)
	err = r.db.DB.WithContext(ctx).Raw(`
		SELECT COUNT(*) as count
		FROM load_status_histories h
		JOIN loads l ON l.id = h.load_id
		WHERE l.tenant_id = ? AND h.new_status = 'delivered' AND h.created_at >= ?
	`, tenantID, today).Scan(&stats.DeliveredToday).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get delivered today: %w", err)
	}

	return stats, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value")
}
