package product

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/entities"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ProductRepository interface {
		CreateProduct(ctx context.Context, product *entities.Product) error
		GetProductByID(ctx context.Context, id string) (*entities.Product, error)
		GetProductByName(ctx context.Context, householdID, name string) (*entities.Product, error)
		GetProducts(ctx context.Context, householdID string, page, limit int) ([]*entities.Product, int64, error)
		UpdateProduct(ctx context.Context, product *entities.Product) error
		DeleteProduct(ctx context.Context, id uuid.UUID) error
	}

	productRepository struct {
		db *gorm.DB
	}
)

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetProductByName(ctx context.Context, householdID, name string) (*entities.Product, error) {
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

func (r *productRepository) GetProducts(ctx context.Context, householdID string, page, limit int) ([]*entities.Product, int64, error) {
	var products []*entities.Product
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Product{}).Where("household_id = ?", householdID)

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("name_key asc").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// DeleteProduct removes the product with all of its batches. Shopping entries
// that pointed at it keep their name and lose the link.
func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&entities.Batch{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ? AND is_manual = ? AND status = ?", id, false, domain.StatusActive).
			Delete(&entities.ShoppingEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&entities.ShoppingEntry{}).
			Where("product_id = ?", id).
			UpdateColumn("product_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Product{}).Error
	})
}
