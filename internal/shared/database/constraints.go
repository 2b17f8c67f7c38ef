package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds the database constraints gorm tags cannot express
func MigrateConstraints(db *gorm.DB) error {
	// Wallet balances never go negative even if application checks are bypassed
	err := db.Exec(`
		DO $$
		BEGIN
			IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_wallets_balance_non_negative') THEN
				ALTER TABLE wallets ADD CONSTRAINT chk_wallets_balance_non_negative CHECK (balance >= 0);
			END IF;
		END $$;
	`).Error
	if err != nil {
		return err
	}

	// Partial index for orders that can still be cancelled
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_orders_tourist_processing
		ON orders (tourist_id) WHERE status = 'PROCESSING';
	`).Error
	if err != nil {
		return err
	}

	return nil
}
