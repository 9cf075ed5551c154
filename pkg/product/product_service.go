package product

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/entities"
	"Pantry-Backend/internal/notify"
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	ProductService interface {
		CreateProduct(ctx context.Context, req domain.CreateProductRequest, householdID string) (domain.ProductResponse, error)
		GetProductByID(ctx context.Context, id string, householdID string) (domain.ProductResponse, error)
		GetProducts(ctx context.Context, householdID string, page, limit int) ([]domain.ProductResponse, int64, error)
		UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest, householdID string) (domain.ProductResponse, error)
		DeleteProduct(ctx context.Context, id string, householdID string) error
	}

	productService struct {
		productRepository ProductRepository
		publisher         notify.Publisher
	}
)

func NewProductService(productRepository ProductRepository, publisher notify.Publisher) ProductService {
	if publisher == nil {
		publisher = notify.Discard{}
	}
	return &productService{
		productRepository: productRepository,
		publisher:         publisher,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req domain.CreateProductRequest, householdID string) (domain.ProductResponse, error) {
	householdUUID, err := uuid.Parse(householdID)
	if err != nil {
		return domain.ProductResponse{}, domain.ErrParseUUID
	}

	product, err := entities.NewProduct(householdUUID, req.Name, req.Category, req.Unit, req.Importance, req.MinQuantity, req.IsGhost)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	if err := s.ensureNameFree(ctx, householdID, product.Name, uuid.Nil); err != nil {
		return domain.ProductResponse{}, err
	}

	if err := s.productRepository.CreateProduct(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ProductResponse{}, domain.ErrProductNameTaken
		}
		return domain.ProductResponse{}, err
	}

	log.Infow("product created", "household_id", householdID, "product_id", product.ID.String())
	s.publisher.Publish(ctx, notify.Change{HouseholdID: householdID, Kind: notify.KindProduct})
	return product.ToResponse(), nil
}

func (s *productService) GetProductByID(ctx context.Context, id string, householdID string) (domain.ProductResponse, error) {
	product, err := s.ownedProduct(ctx, id, householdID)
	if err != nil {
		return domain.ProductResponse{}, err
	}
	return product.ToResponse(), nil
}

func (s *productService) GetProducts(ctx context.Context, householdID string, page, limit int) ([]domain.ProductResponse, int64, error) {
	if _, err := uuid.Parse(householdID); err != nil {
		return nil, 0, domain.ErrParseUUID
	}

	products, count, err := s.productRepository.GetProducts(ctx, householdID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, p.ToResponse())
	}
	return response, count, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest, householdID string) (domain.ProductResponse, error) {
	product, err := s.ownedProduct(ctx, id, householdID)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.ProductResponse{}, domain.ErrEmptyProductName
		}
		if err := s.ensureNameFree(ctx, householdID, name, product.ID); err != nil {
			return domain.ProductResponse{}, err
		}
		product.Name = name
		product.NameKey = entities.NormalizeName(name)
	}

	if req.Category != nil {
		product.Category = strings.TrimSpace(*req.Category)
	}

	if req.Unit != nil {
		if !req.Unit.Valid() {
			return domain.ProductResponse{}, domain.ErrInvalidUnit
		}
		product.Unit = *req.Unit
	}

	if req.Importance != nil {
		if !req.Importance.Valid() {
			return domain.ProductResponse{}, domain.ErrInvalidImportance
		}
		product.Importance = *req.Importance
	}

	switch {
	case req.ClearMinQuantity:
		product.MinQuantity = decimal.NullDecimal{}
	case req.MinQuantity != nil:
		if req.MinQuantity.IsNegative() {
			return domain.ProductResponse{}, domain.ErrInvalidThreshold
		}
		product.MinQuantity = decimal.NewNullDecimal(*req.MinQuantity)
	}

	if req.IsGhost != nil {
		product.IsGhost = *req.IsGhost
	}

	if err := s.productRepository.UpdateProduct(ctx, product); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ProductResponse{}, domain.ErrProductNameTaken
		}
		return domain.ProductResponse{}, err
	}

	log.Infow("product updated", "household_id", householdID, "product_id", product.ID.String())
	s.publisher.Publish(ctx, notify.Change{HouseholdID: householdID, Kind: notify.KindProduct})
	return product.ToResponse(), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string, householdID string) error {
	product, err := s.ownedProduct(ctx, id, householdID)
	if err != nil {
		return err
	}

	if err := s.productRepository.DeleteProduct(ctx, product.ID); err != nil {
		return err
	}

	log.Infow("product deleted", "household_id", householdID, "product_id", product.ID.String())
	s.publisher.Publish(ctx, notify.Change{HouseholdID: householdID, Kind: notify.KindProduct})
	return nil
}

func (s *productService) ownedProduct(ctx context.Context, id, householdID string) (*entities.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}
	product, err := s.productRepository.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.HouseholdID.String() != householdID {
		return nil, domain.ErrHouseholdMismatch
	}
	return product, nil
}

// ensureNameFree fails when another product of the household already uses
// the name, compared case-insensitively.
func (s *productService) ensureNameFree(ctx context.Context, householdID, name string, self uuid.UUID) error {
	existing, err := s.productRepository.GetProductByName(ctx, householdID, name)
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return domain.ErrProductNameTaken
	}
	return nil
}
