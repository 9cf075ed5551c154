package inventory

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	InventoryRepository interface {
		// Transaction runs fn against a repository bound to a single database
		// transaction. Any error returned by fn rolls everything back.
		Transaction(ctx context.Context, fn func(repo InventoryRepository) error) error

		GetProductByID(ctx context.Context, id string) (*entities.Product, error)
		GetProductByName(ctx context.Context, householdID, name string) (*entities.Product, error)
		CreateProduct(ctx context.Context, product *entities.Product) error
		DeleteProduct(ctx context.Context, id uuid.UUID) error

		GetBatchByID(ctx context.Context, id string) (*entities.Batch, error)
		GetBatchesByProduct(ctx context.Context, productID uuid.UUID) ([]*entities.Batch, error)
		CreateBatch(ctx context.Context, batch *entities.Batch) error
		UpdateBatch(ctx context.Context, batch *entities.Batch) error
		DeleteBatches(ctx context.Context, ids []uuid.UUID) error

		GetShoppingEntryByID(ctx context.Context, id string) (*entities.ShoppingEntry, error)
		DeleteShoppingEntry(ctx context.Context, id uuid.UUID) error
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Transaction(ctx context.Context, fn func(repo InventoryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&inventoryRepository{db: tx})
	})
}

func (r *inventoryRepository) GetProductByID(ctx context.Context, id string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *inventoryRepository) GetProductByName(ctx context.Context, householdID, name string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).
		Where("household_id = ? AND name_key = ?", householdID, entities.NormalizeName(name)).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *inventoryRepository) CreateProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *inventoryRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("product_id = ?", id).Delete(&entities.Batch{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Product{}).Error
}

func (r *inventoryRepository) GetBatchByID(ctx context.Context, id string) (*entities.Batch, error) {
	var batch entities.Batch
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBatchNotFound
		}
		return nil, err
	}
	return &batch, nil
}

func (r *inventoryRepository) GetBatchesByProduct(ctx context.Context, productID uuid.UUID) ([]*entities.Batch, error) {
	var batches []*entities.Batch
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at asc").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *inventoryRepository) CreateBatch(ctx context.Context, batch *entities.Batch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *inventoryRepository) UpdateBatch(ctx context.Context, batch *entities.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

func (r *inventoryRepository) DeleteBatches(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&entities.Batch{}).Error
}

func (r *inventoryRepository) GetShoppingEntryByID(ctx context.Context, id string) (*entities.ShoppingEntry, error) {
	var entry entities.ShoppingEntry
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrShoppingEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *inventoryRepository) DeleteShoppingEntry(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.ShoppingEntry{}).Error
}
