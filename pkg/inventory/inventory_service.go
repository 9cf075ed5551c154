package inventory

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
)

type (
	InventoryService interface {
		AddBatch(ctx context.Context, req domain.AddBatchRequest, householdID string) (domain.BatchResponse, error)
		GetBatches(ctx context.Context, productID string, householdID string) ([]domain.BatchResponse, error)
		Consume(ctx context.Context, productID string, req domain.ConsumeRequest, householdID string) (domain.ConsumeResponse, error)
		MoveBatch(ctx context.Context, batchID string, req domain.MoveBatchRequest, householdID string) (domain.MoveBatchResponse, error)
		DeleteBatch(ctx context.Context, batchID string, householdID string) (domain.DeleteBatchResponse, error)
		ReceiveEntry(ctx context.Context, entryID string, req domain.ReceiveEntryRequest, householdID string) (domain.BatchResponse, error)
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
		publisher           notify.Publisher
	}
)

func NewInventoryService(inventoryRepository InventoryRepository, publisher notify.Publisher) InventoryService {
	if publisher == nil {
		publisher = notify.Discard{}
	}
	return &inventoryService{
		inventoryRepository: inventoryRepository,
		publisher:           publisher,
	}
}

// productAttrs carries the registry attributes used when a batch arrives
// for a product name the household has never seen.
type productAttrs struct {
	Name        string
	Category    string
	Unit        domain.Unit
	Importance  domain.Importance
	IsGhost     bool
	MinQuantity *decimal.Decimal
}

type batchAttrs struct {
	Quantity   decimal.Decimal
	Location   string
	ExpiryDate string
	Store      string
	UnitPrice  *decimal.Decimal
}

func (s *inventoryService) AddBatch(ctx context.Context, req domain.AddBatchRequest, householdID string) (domain.BatchResponse, error) {
	householdUUID, err := uuid.Parse(householdID)
	if err != nil {
		return domain.BatchResponse{}, domain.ErrParseUUID
	}

	attrs := productAttrs{
		Name:        req.ProductName,
		Category:    req.Category,
		Unit:        req.Unit,
		Importance:  req.Importance,
		IsGhost:     req.IsGhost,
		MinQuantity: req.MinQuantity,
	}
	batch, err := newBatch(householdUUID, batchAttrs{
		Quantity:   req.Quantity,
		Location:   req.Location,
		ExpiryDate: req.ExpiryDate,
		Store:      req.Store,
		UnitPrice:  req.UnitPrice,
	})
	if err != nil {
		return domain.BatchResponse{}, err
	}

	err = s.inventoryRepository.Transaction(ctx, func(repo InventoryRepository) error {
		product, err := resolveProduct(ctx, repo, householdUUID, attrs)
		if err != nil {
			return err
		}
		batch.ProductID = product.ID
		return repo.CreateBatch(ctx, batch)
	})
	if err != nil {
		return domain.BatchResponse{}, err
	}

	log.Infow("batch added", "household_id", householdID, "product_id", batch.ProductID.String(), "batch_id", batch.ID.String())
	s.publisher.Publish(ctx, notify.Change{HouseholdID: householdID, Kind: notify.KindBatch})
	return batch.ToResponse(), nil
}

func (s *inventoryService) GetBatches(ctx context.Context, productID string, householdID string) ([]domain.BatchResponse, error) {
	product, err := s.ownedProduct(ctx, s.inventoryRepository, productID, householdID)
	if err != nil {
		return nil, err
	}

	batches, err := s.inventoryRepository.GetBatchesByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	entities.SortBatchesForConsumption(batches)

	response := make([]domain.BatchResponse, 0, len(batches))
	for _, b := range batches {
		response = append(response, b.ToResponse())
	}
	return response, nil
}

func (s *inventoryService) Consume(ctx context.Context, productID string, req domain.ConsumeRequest, householdID string) (domain.ConsumeResponse, error) {
	if !req.Amount.IsPositive() {
		return domain.ConsumeResponse{}, domain.ErrInvalidQuantity
	}

	var response domain.ConsumeResponse
	err := s.inventoryRepository.Transaction(ctx, func(repo InventoryRepository) error {
		product, err := s.ownedProduct(ctx, repo, productID, householdID)
		if err != nil {
			return err
		}

		batches, err := repo.GetBatchesByProduct(ctx, product.ID)
		if err != nil {
			return err
		}

		plan, err := PlanConsumption(product, batches, req.Amount)
		if err != nil {
			return err
		}

		for _, b := range plan.Updated {
			if err := repo.UpdateBatch(ctx, b); err != nil {
				return err
			}
		}
		if err := repo.DeleteBatches(ctx, plan.Deleted); err != nil {
			return err
		}

		left, err := repo.GetBatchesByProduct(ctx, product.ID)
		if err != nil {
			return err
		}
		entities.SortBatchesForConsumption(left)

		response = domain.ConsumeResponse{
			ProductID: product.ID.String(),
			Consumed:  req.Amount,
			Remaining: plan.Remaining,
			Batches:   make([]domain.BatchResponse, 0, len(left)),
		}
		for _, b := range left {
			response.Batches = append(response.Batches, b.ToResponse())
		}
		return nil
	})
	if err != nil {
		return domain.ConsumeResponse{}, err
	}

	log.Infow("stock consumed", "household_id", householdID, "product_id", productID, "amount", req.Amount.String())
	s.publisher.Publish(ctx, notify.Change{HouseholdID: householdID, Kind: notify.KindBatch})
	return response, nil
}

func (s *inventoryService) MoveBatch(ctx context.Context, batchID string, req domain.MoveBatchRequest, householdID string) (domain.MoveBatchResponse, error) {
	originExpiry, err := domain.ParseDate(req.OriginExpiry)
	if err != nil {
		return domain.MoveBatchResponse{}, err
	}
	destinationExpiry, err := domain.ParseDate(req.DestinationExpiry)
	if err != nil {
		return domain.MoveBatchResponse{}, err
	}

	var response domain.MoveBatchResponse
	err = s.inventoryRepository.Transaction(ctx, func(repo InventoryRepository) error {
		source, err := s.ownedBatch(ctx, repo, batchID, householdID)
		if err != nil {
			return err
		}

		plan, err := PlanMove(source, MoveParams{
			Destination:       req.Destination,
			Quantity:          req.Quantity,
			OriginExpiry:      originExpiry,
			DestinationExpiry: destinationExpiry,
		})
		if err != nil {
			return err
		}

		if err := repo.UpdateBatch(ctx, plan.Origin); err != nil {
			return err
		}
		response.Origin = plan.Origin.ToResponse()

		if plan.Moved != nil {
			if err := repo.CreateBatch(ctx, plan.Moved); err != nil {
				return err
			}
			moved := plan.Moved.ToResponse()
			response.Moved = &moved
		}
		return nil
	})
	if err != nil {
		return domain.MoveBatchResponse{}, err
	}

	log.Infow("batch moved", "household_id", householdID, "batch_id", batchID, "split", response.Moved != nil)
	s.publisher.Publish(ctx, notify.Change{HouseholdID: householdID, Kind: notify.KindBatch})
	return response, nil
}

func (s *inventoryService) DeleteBatch(ctx context.Context, batchID string, householdID string) (domain.DeleteBatchResponse, error) {
	var plan DeletionPlan
	err := s.inventoryRepository.Transaction(ctx, func(repo InventoryRepository) error {
		target, err := s.ownedBatch(ctx, repo, batchID, householdID)
		if err != nil {
			return err
		}

		product, err := repo.GetProductByID(ctx, target.ProductID.String())
		if err != nil {
			return err
		}
		batches, err := repo.GetBatchesByProduct(ctx, product.ID)
		if err != nil {
			return err
		}

		plan = PlanBatchDeletion(product, batches, target)
		switch {
		case plan.DeleteProduct:
			return repo.DeleteProduct(ctx, product.ID)
		case plan.Sentinel != nil:
			return repo.UpdateBatch(ctx, plan.Sentinel)
		default:
			return repo.DeleteBatches(ctx, []uuid.UUID{target.ID})
		}
	})
	if err != nil {
		return domain.DeleteBatchResponse{}, err
	}

	log.Infow("batch deleted", "household_id", householdID, "batch_id", batchID, "outcome", string(plan.Outcome))
	s.publisher.Publish(ctx, notify.Change{HouseholdID: householdID, Kind: notify.KindBatch})
	return domain.DeleteBatchResponse{Outcome: plan.Outcome}, nil
}

// ReceiveEntry turns a bought shopping entry into stock. Product resolution,
// batch creation and removal of the entry share one transaction.
func (s *inventoryService) ReceiveEntry(ctx context.Context, entryID string, req domain.ReceiveEntryRequest, householdID string) (domain.BatchResponse, error) {
	householdUUID, err := uuid.Parse(householdID)
	if err != nil {
		return domain.BatchResponse{}, domain.ErrParseUUID
	}
	if _, err := uuid.Parse(entryID); err != nil {
		return domain.BatchResponse{}, domain.ErrParseUUID
	}

	batch, err := newBatch(householdUUID, batchAttrs{
		Quantity:   req.Quantity,
		Location:   req.Location,
		ExpiryDate: req.ExpiryDate,
		Store:      req.Store,
		UnitPrice:  req.UnitPrice,
	})
	if err != nil {
		return domain.BatchResponse{}, err
	}

	err = s.inventoryRepository.Transaction(ctx, func(repo InventoryRepository) error {
		entry, err := repo.GetShoppingEntryByID(ctx, entryID)
		if err != nil {
			return err
		}
		if entry.HouseholdID != householdUUID {
			return domain.ErrHouseholdMismatch
		}
		if entry.Status != domain.StatusBought {
			return domain.ErrEntryNotBought
		}

		product, err := resolveProduct(ctx, repo, householdUUID, productAttrs{
			Name:        entry.ItemName,
			Category:    entry.Category,
			Unit:        req.Unit,
			Importance:  req.Importance,
			IsGhost:     req.IsGhost || entry.IsGhost,
			MinQuantity: req.MinQuantity,
		})
		if err != nil {
			return err
		}

		batch.ProductID = product.ID
		if err := repo.CreateBatch(ctx, batch); err != nil {
			return err
		}
		return repo.DeleteShoppingEntry(ctx, entry.ID)
	})
	if err != nil {
		return domain.BatchResponse{}, err
	}

	log.Infow("purchase received", "household_id", householdID, "entry_id", entryID, "batch_id", batch.ID.String())
	s.publisher.Publish(ctx, notify.Change{HouseholdID: householdID, Kind: notify.KindBatch})
	return batch.ToResponse(), nil
}

func (s *inventoryService) ownedProduct(ctx context.Context, repo InventoryRepository, productID, householdID string) (*entities.Product, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrParseUUID
	}
	product, err := repo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.HouseholdID.String() != householdID {
		return nil, domain.ErrHouseholdMismatch
	}
	return product, nil
}

func (s *inventoryService) ownedBatch(ctx context.Context, repo InventoryRepository, batchID, householdID string) (*entities.Batch, error) {
	if _, err := uuid.Parse(batchID); err != nil {
		return nil, domain.ErrParseUUID
	}
	batch, err := repo.GetBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch.HouseholdID.String() != householdID {
		return nil, domain.ErrHouseholdMismatch
	}
	return batch, nil
}

// resolveProduct finds the product by case-insensitive name or registers it.
func resolveProduct(ctx context.Context, repo InventoryRepository, householdID uuid.UUID, attrs productAttrs) (*entities.Product, error) {
	name := strings.TrimSpace(attrs.Name)
	if name == "" {
		return nil, domain.ErrEmptyProductName
	}

	product, err := repo.GetProductByName(ctx, householdID.String(), name)
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, err
	}

	product, err = entities.NewProduct(householdID, attrs.Name, attrs.Category, attrs.Unit, attrs.Importance, attrs.MinQuantity, attrs.IsGhost)
	if err != nil {
		return nil, err
	}
	if err := repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	log.Infow("product registered", "household_id", householdID.String(), "product_id", product.ID.String(), "name", product.Name)
	return product, nil
}

func newBatch(householdID uuid.UUID, attrs batchAttrs) (*entities.Batch, error) {
	if !attrs.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	location := strings.TrimSpace(attrs.Location)
	if location == "" {
		return nil, domain.ErrMissingDestination
	}
	expiry, err := domain.ParseDate(attrs.ExpiryDate)
	if err != nil {
		return nil, err
	}

	batch := &entities.Batch{
		ID:          uuid.New(),
		HouseholdID: householdID,
		Quantity:    attrs.Quantity,
		Location:    location,
		ExpiryDate:  expiry,
	}
	if store := strings.TrimSpace(attrs.Store); store != "" {
		batch.Store = &store
	}
	if attrs.UnitPrice != nil {
		if attrs.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidPrice
		}
		batch.UnitPrice = decimal.NewNullDecimal(*attrs.UnitPrice)
	}
	return batch, nil
}
