package shopping

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/entities"
	"Pantry-Backend/internal/notify"
	"Pantry-Backend/pkg/product"
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	ShoppingService interface {
		GetEntries(ctx context.Context, householdID string, status string) ([]domain.ShoppingEntryResponse, error)
		AddEntry(ctx context.Context, req domain.AddShoppingEntryRequest, householdID string) (domain.ShoppingEntryResponse, error)
		AddFromSuggestion(ctx context.Context, productID string, householdID string) (domain.ShoppingEntryResponse, error)
		UpdateStatus(ctx context.Context, id string, req domain.UpdateEntryStatusRequest, householdID string) (domain.ShoppingEntryResponse, error)
		DeleteEntry(ctx context.Context, id string, householdID string) error
	}

	shoppingService struct {
		shoppingRepository ShoppingRepository
		productRepository  product.ProductRepository
		publisher          notify.Publisher
	}
)

func NewShoppingService(shoppingRepository ShoppingRepository, productRepository product.ProductRepository, publisher notify.Publisher) ShoppingService {
	if publisher == nil {
		publisher = notify.Discard{}
	}
	return &shoppingService{
		shoppingRepository: shoppingRepository,
		productRepository:  productRepository,
		publisher:          publisher,
	}
}

func (s *shoppingService) GetEntries(ctx context.Context, householdID string, status string) ([]domain.ShoppingEntryResponse, error) {
	if _, err := uuid.Parse(householdID); err != nil {
		return nil, domain.ErrParseUUID
	}
	if status != "" && status != "all" && !domain.ShoppingStatus(status).Valid() {
		return nil, domain.ErrInvalidStatus
	}

	entries, err := s.shoppingRepository.GetEntries(ctx, householdID, status)
	if err != nil {
		return nil, err
	}

	response := make([]domain.ShoppingEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, e.ToResponse())
	}
	return response, nil
}

// AddEntry puts an item on the list by hand. Adding an item that is already
// active returns the existing entry instead of a duplicate.
func (s *shoppingService) AddEntry(ctx context.Context, req domain.AddShoppingEntryRequest, householdID string) (domain.ShoppingEntryResponse, error) {
	householdUUID, err := uuid.Parse(householdID)
	if err != nil {
		return domain.ShoppingEntryResponse{}, domain.ErrParseUUID
	}

	name := strings.TrimSpace(req.ItemName)
	if name == "" {
		return domain.ShoppingEntryResponse{}, domain.ErrEmptyItemName
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityNormal
	}
	if !priority.Valid() {
		return domain.ShoppingEntryResponse{}, domain.ErrInvalidPriority
	}

	entry := &entities.ShoppingEntry{
		ID:          uuid.New(),
		HouseholdID: householdUUID,
		ItemName:    name,
		ItemKey:     entities.NormalizeName(name),
		Category:    strings.TrimSpace(req.Category),
		Priority:    priority,
		Status:      domain.StatusActive,
		IsManual:    true,
		IsGhost:     req.IsGhost,
	}
	return s.addManual(ctx, entry)
}

func (s *shoppingService) AddFromSuggestion(ctx context.Context, productID string, householdID string) (domain.ShoppingEntryResponse, error) {
	householdUUID, err := uuid.Parse(householdID)
	if err != nil {
		return domain.ShoppingEntryResponse{}, domain.ErrParseUUID
	}
	if _, err := uuid.Parse(productID); err != nil {
		return domain.ShoppingEntryResponse{}, domain.ErrParseUUID
	}

	p, err := s.productRepository.GetProductByID(ctx, productID)
	if err != nil {
		return domain.ShoppingEntryResponse{}, err
	}
	if p.HouseholdID != householdUUID {
		return domain.ShoppingEntryResponse{}, domain.ErrHouseholdMismatch
	}

	entry := &entities.ShoppingEntry{
		ID:          uuid.New(),
		HouseholdID: householdUUID,
		ProductID:   &p.ID,
		ItemName:    p.Name,
		ItemKey:     entities.NormalizeName(p.Name),
		Category:    p.Category,
		Priority:    domain.PriorityFor(p.Importance),
		Status:      domain.StatusActive,
		IsManual:    true,
		IsGhost:     p.IsGhost,
	}
	return s.addManual(ctx, entry)
}

func (s *shoppingService) addManual(ctx context.Context, entry *entities.ShoppingEntry) (domain.ShoppingEntryResponse, error) {
	householdID := entry.HouseholdID.String()

	var result *entities.ShoppingEntry
	err := s.shoppingRepository.Transaction(ctx, func(repo ShoppingRepository) error {
		existing, err := repo.GetActiveEntryByName(ctx, householdID, entry.ItemName)
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, domain.ErrShoppingEntryNotFound) {
			return err
		}

		inserted, err := repo.CreateEntryIfAbsent(ctx, entry)
		if err != nil {
			return err
		}
		if inserted {
			result = entry
			return nil
		}
		result, err = repo.GetActiveEntryByName(ctx, householdID, entry.ItemName)
		return err
	})
	if err != nil {
		return domain.ShoppingEntryResponse{}, err
	}

	if result.ID == entry.ID {
		log.Infow("shopping entry added", "household_id", householdID, "entry_id", entry.ID.String())
		s.publisher.Publish(ctx, notify.Change{HouseholdID: householdID, Kind: notify.KindShopping})
	}
	return result.ToResponse(), nil
}

// UpdateStatus moves an entry along the shopping workflow. Reactivating an
// entry whose item is already active elsewhere folds it into that entry.
func (s *shoppingService) UpdateStatus(ctx context.Context, id string, req domain.UpdateEntryStatusRequest, householdID string) (domain.ShoppingEntryResponse, error) {
	if !req.Status.Valid() {
		return domain.ShoppingEntryResponse{}, domain.ErrInvalidStatus
	}

	var result *entities.ShoppingEntry
	changed := false
	err := s.shoppingRepository.Transaction(ctx, func(repo ShoppingRepository) error {
		entry, err := ownedEntry(ctx, repo, id, householdID)
		if err != nil {
			return err
		}
		result = entry

		if entry.Status == req.Status {
			return nil
		}
		if !entry.Status.CanTransition(req.Status) {
			return domain.ErrInvalidStatusTransition
		}
		changed = true

		if req.Status == domain.StatusActive {
			existing, err := repo.GetActiveEntryByName(ctx, householdID, entry.ItemName)
			switch {
			case err == nil:
				result, err = mergeInto(ctx, repo, existing, entry)
				return err
			case !errors.Is(err, domain.ErrShoppingEntryNotFound):
				return err
			}
		}

		entry.Status = req.Status
		return repo.UpdateEntry(ctx, entry)
	})
	if err != nil {
		return domain.ShoppingEntryResponse{}, err
	}

	if changed {
		log.Infow("shopping entry status changed", "household_id", householdID, "entry_id", id, "status", string(req.Status))
		s.publisher.Publish(ctx, notify.Change{HouseholdID: householdID, Kind: notify.KindShopping})
	}
	return result.ToResponse(), nil
}

func (s *shoppingService) DeleteEntry(ctx context.Context, id string, householdID string) error {
	err := s.shoppingRepository.Transaction(ctx, func(repo ShoppingRepository) error {
		entry, err := ownedEntry(ctx, repo, id, householdID)
		if err != nil {
			return err
		}
		return repo.DeleteEntry(ctx, entry.ID)
	})
	if err != nil {
		return err
	}

	log.Infow("shopping entry deleted", "household_id", householdID, "entry_id", id)
	s.publisher.Publish(ctx, notify.Change{HouseholdID: householdID, Kind: notify.KindShopping})
	return nil
}

func ownedEntry(ctx context.Context, repo ShoppingRepository, id, householdID string) (*entities.ShoppingEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrParseUUID
	}
	entry, err := repo.GetEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.HouseholdID.String() != householdID {
		return nil, domain.ErrHouseholdMismatch
	}
	return entry, nil
}

// mergeInto keeps the active entry and drops the reactivated duplicate. The
// survivor takes the more urgent priority, and it becomes manual if either
// side was, so reconciliation leaves it alone.
func mergeInto(ctx context.Context, repo ShoppingRepository, survivor, duplicate *entities.ShoppingEntry) (*entities.ShoppingEntry, error) {
	if priorityRank(duplicate.Priority) < priorityRank(survivor.Priority) {
		survivor.Priority = duplicate.Priority
	}
	survivor.IsManual = survivor.IsManual || duplicate.IsManual
	if survivor.ProductID == nil {
		survivor.ProductID = duplicate.ProductID
	}
	if survivor.Category == "" {
		survivor.Category = duplicate.Category
	}

	if err := repo.DeleteEntry(ctx, duplicate.ID); err != nil {
		return nil, err
	}
	if err := repo.UpdateEntry(ctx, survivor); err != nil {
		return nil, err
	}
	return survivor, nil
}

func priorityRank(p domain.Priority) int {
	switch p {
	case domain.PriorityUrgent:
		return 0
	case domain.PriorityHigh:
		return 1
	}
	return 2
}
