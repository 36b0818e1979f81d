package infra

import (
	"fmt"

	"simplifique/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches that GORM
// cannot express (partial indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates / updates the schema. Also used by integration tests
// against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Brinde{},
		&model.Movimentacao{},
		&model.Ponto{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot express.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// Partial index for the reservation-expiry cron: only processing rows
		// are ever scanned by created_at.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_movimentacoes_processing') THEN
		    CREATE INDEX idx_movimentacoes_processing
		        ON movimentacoes (created_at)
		        WHERE status = 'processing';
		  END IF;
		END $$`,
		// Reconciliation replays confirmed movements per variant constantly.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'idx_movimentacoes_brinde_status') THEN
		    CREATE INDEX idx_movimentacoes_brinde_status
		        ON movimentacoes (brinde_id, status);
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
