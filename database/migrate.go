package database

import (
	"fmt"

	"gorm.io/gorm"
)

// Harden applies (idempotent) schema hardening on top of AutoMigrate:
// - Money column types (NUMERIC(10,2))
// - Helpful indexes for the alert sweeps and the tracking log
// - Basic CHECK constraints
func Harden() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- Enforce money columns as NUMERIC(10,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE services            ALTER COLUMN base_price     TYPE numeric(10,2)`,
			`ALTER TABLE contracted_services ALTER COLUMN price          TYPE numeric(10,2)`,
			`ALTER TABLE invoices            ALTER COLUMN amount         TYPE numeric(10,2)`,
			`ALTER TABLE invoices            ALTER COLUMN paid_amount    TYPE numeric(10,2)`,
			`ALTER TABLE collection_trackings ALTER COLUMN promise_amount TYPE numeric(10,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_invoices_status_due_date ON invoices (status, due_date)`,
			`CREATE INDEX IF NOT EXISTS idx_contracted_services_status_next_payment ON contracted_services (status, next_payment)`,
			`CREATE INDEX IF NOT EXISTS idx_trackings_user_next_action ON collection_trackings (user_id, next_action_date)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Invoice amount strictly positive
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoices'::regclass
					  AND conname  = 'chk_invoices_amount_pos'
				) THEN
					ALTER TABLE invoices
					ADD CONSTRAINT chk_invoices_amount_pos
					CHECK (amount > 0);
				END IF;
			END $$;`,
			// Paid total stays within [0, amount]
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoices'::regclass
					  AND conname  = 'chk_invoices_paid_amount_range'
				) THEN
					ALTER TABLE invoices
					ADD CONSTRAINT chk_invoices_paid_amount_range
					CHECK (paid_amount >= 0 AND paid_amount <= amount);
				END IF;
			END $$;`,
			// Grace days are never negative
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'contracted_services'::regclass
					  AND conname  = 'chk_contracted_services_invoice_days_nonneg'
				) THEN
					ALTER TABLE contracted_services
					ADD CONSTRAINT chk_contracted_services_invoice_days_nonneg
					CHECK (invoice_days >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed on: %s - %w", stmt, err)
			}
		}

		return nil
	})
}
