package shopping

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	ShoppingRepository interface {
		Transaction(ctx context.Context, fn func(repo ShoppingRepository) error) error

		GetEntries(ctx context.Context, householdID string, status string) ([]*entities.ShoppingEntry, error)
		GetEntryByID(ctx context.Context, id string) (*entities.ShoppingEntry, error)
		GetActiveEntryByName(ctx context.Context, householdID, itemName string) (*entities.ShoppingEntry, error)
		// CreateEntryIfAbsent reports false when an active entry for the same
		// item already exists.
		CreateEntryIfAbsent(ctx context.Context, entry *entities.ShoppingEntry) (bool, error)
		UpdateEntry(ctx context.Context, entry *entities.ShoppingEntry) error
		DeleteEntry(ctx context.Context, id uuid.UUID) error
	}

	shoppingRepository struct {
		db *gorm.DB
	}
)

func NewShoppingRepository(db *gorm.DB) ShoppingRepository {
	return &shoppingRepository{db: db}
}

func (r *shoppingRepository) Transaction(ctx context.Context, fn func(repo ShoppingRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&shoppingRepository{db: tx})
	})
}

func (r *shoppingRepository) GetEntries(ctx context.Context, householdID string, status string) ([]*entities.ShoppingEntry, error) {
	var entries []*entities.ShoppingEntry

	query := r.db.WithContext(ctx).Where("household_id = ?", householdID)

	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Order("created_at asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *shoppingRepository) GetEntryByID(ctx context.Context, id string) (*entities.ShoppingEntry, error) {
	var entry entities.ShoppingEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShoppingEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *shoppingRepository) GetActiveEntryByName(ctx context.Context, householdID, itemName string) (*entities.ShoppingEntry, error) {
	var entry entities.ShoppingEntry
	if err := r.db.WithContext(ctx).
		Where("household_id = ? AND item_key = ? AND status = ?", householdID, entities.NormalizeName(itemName), domain.StatusActive).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShoppingEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *shoppingRepository) CreateEntryIfAbsent(ctx context.Context, entry *entities.ShoppingEntry) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entry)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *shoppingRepository) UpdateEntry(ctx context.Context, entry *entities.ShoppingEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *shoppingRepository) DeleteEntry(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ShoppingEntry{}).Error
}
