package stock

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/entities"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	StockRepository interface {
		// Snapshot reads products and batches of a household from one
		// consistent view.
		Snapshot(ctx context.Context, householdID string) ([]*entities.Product, []*entities.Batch, error)
		// GetOpenEntries lists entries that are active, checked or postponed.
		GetOpenEntries(ctx context.Context, householdID string) ([]*entities.ShoppingEntry, error)

		// InsertEntryIfAbsent inserts an active entry unless one with the same
		// item already exists. It reports whether a row was written.
		InsertEntryIfAbsent(ctx context.Context, entry *entities.ShoppingEntry) (bool, error)
		DeleteAutoEntries(ctx context.Context, ids []uuid.UUID) (int64, error)
	}

	stockRepository struct {
		db *gorm.DB
	}
)

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Snapshot(ctx context.Context, householdID string) ([]*entities.Product, []*entities.Batch, error) {
	var products []*entities.Product
	var batches []*entities.Batch

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("household_id = ?", householdID).Find(&products).Error; err != nil {
			return err
		}
		return tx.Where("household_id = ?", householdID).Find(&batches).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return products, batches, nil
}

func (r *stockRepository) GetOpenEntries(ctx context.Context, householdID string) ([]*entities.ShoppingEntry, error) {
	var entries []*entities.ShoppingEntry
	if err := r.db.WithContext(ctx).
		Where("household_id = ? AND status IN ?", householdID, domain.OpenStatuses).
		Order("created_at asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *stockRepository) InsertEntryIfAbsent(ctx context.Context, entry *entities.ShoppingEntry) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *stockRepository) DeleteAutoEntries(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("id IN ? AND is_manual = ? AND status = ?", ids, false, domain.StatusActive).
		Delete(&entities.ShoppingEntry{})
	return res.RowsAffected, res.Error
}
