package migration

import (
	"Pantry-Backend/entities"
	"fmt"

	"gorm.io/gorm"
)

// activeEntryIndex keeps at most one active shopping entry per item in a
// household. The automatic reconciliation relies on it to stay idempotent.
const activeEntryIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_shopping_entries_active_item
	ON shopping_entries (household_id, item_key) WHERE status = 'active'`

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.Product{}); err != nil {
		return fmt.Errorf("migrate products: %w", err)
	}
	if err := db.AutoMigrate(&entities.Batch{}); err != nil {
		return fmt.Errorf("migrate batches: %w", err)
	}
	if err := db.AutoMigrate(&entities.ShoppingEntry{}); err != nil {
		return fmt.Errorf("migrate shopping entries: %w", err)
	}
	if err := db.Exec(activeEntryIndex).Error; err != nil {
		return fmt.Errorf("create active shopping entry index: %w", err)
	}

	fmt.Println("Database migration complete")
	return nil
}
