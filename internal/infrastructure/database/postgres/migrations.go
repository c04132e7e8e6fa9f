package postgres

import (
	"fmt"

	"freight-tms/internal/infrastructure/database/postgres/models"
)

// migrations is a list of SQL statements applied in order after the schema
// sync. Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: at most one accepted offer per load. AcceptOffer
	// enforces this transactionally; the partial unique index is the
	// schema-level backstop gorm tags cannot express.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_load_offers_one_accepted
	     ON load_offers (load_id) WHERE status = 'accepted'`,
}

// Migrate syncs the schema from the gorm models, then applies the
// hand-written migrations.
func (d *DB) Migrate() error {
	err := d.DB.AutoMigrate(
		&models.CompanyModel{},
		&models.LoadModel{},
		&models.LoadStopModel{},
		&models.LoadCargoModel{},
		&models.LoadOfferModel{},
		&models.LoadAssignmentModel{},
		&models.LoadStatusEventModel{},
		&models.LoadStatusHistoryModel{},
		&models.LoadTrackingModel{},
	)
	if err != nil {
		return fmt.Errorf("syncing schema: %w", err)
	}

	for i, m := range migrations {
		if err := d.DB.Exec(m).Error; err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
