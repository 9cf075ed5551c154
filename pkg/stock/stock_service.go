package stock

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/internal/notify"
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	StockService interface {
		// Recompute builds the stock overview from the ledger without writing anything.
		Recompute(ctx context.Context, householdID string) (domain.StockReport, error)
		// Refresh recomputes and then brings the shopping list in line with the
		// critical alerts.
		Refresh(ctx context.Context, householdID string) (domain.RefreshResponse, error)
		// HandleChange is the change-notification entry point.
		HandleChange(ctx context.Context, change notify.Change) error
	}

	stockService struct {
		stockRepository StockRepository
		now             func() time.Time
	}
)

func NewStockService(stockRepository StockRepository, now func() time.Time) StockService {
	if now == nil {
		now = time.Now
	}
	return &stockService{
		stockRepository: stockRepository,
		now:             now,
	}
}

func (s *stockService) Recompute(ctx context.Context, householdID string) (domain.StockReport, error) {
	if _, err := uuid.Parse(householdID); err != nil {
		return domain.StockReport{}, domain.ErrParseUUID
	}

	products, batches, err := s.stockRepository.Snapshot(ctx, householdID)
	if err != nil {
		return domain.StockReport{}, err
	}

	report := Aggregate(products, batches, s.now())
	report.HouseholdID = householdID
	return report, nil
}

func (s *stockService) Refresh(ctx context.Context, householdID string) (domain.RefreshResponse, error) {
	report, err := s.Recompute(ctx, householdID)
	if err != nil {
		return domain.RefreshResponse{}, err
	}

	open, err := s.stockRepository.GetOpenEntries(ctx, householdID)
	if err != nil {
		return domain.RefreshResponse{}, err
	}

	householdUUID, _ := uuid.Parse(householdID)
	plan := PlanReconciliation(householdUUID, report, open)
	result := domain.ReconcileResult{Inserted: []string{}, Removed: []string{}}
	if plan.Empty() {
		return domain.RefreshResponse{Report: report, Reconcile: result}, nil
	}

	for _, entry := range plan.Insert {
		inserted, err := s.stockRepository.InsertEntryIfAbsent(ctx, entry)
		if err != nil {
			return domain.RefreshResponse{}, err
		}
		if inserted {
			result.Inserted = append(result.Inserted, entry.ItemName)
		}
	}

	if len(plan.Remove) > 0 {
		ids := make([]uuid.UUID, 0, len(plan.Remove))
		for _, e := range plan.Remove {
			ids = append(ids, e.ID)
		}
		if _, err := s.stockRepository.DeleteAutoEntries(ctx, ids); err != nil {
			return domain.RefreshResponse{}, err
		}
		for _, e := range plan.Remove {
			result.Removed = append(result.Removed, e.ItemName)
		}
	}

	log.Infow("shopping list reconciled",
		"household_id", householdID,
		"inserted", len(result.Inserted),
		"removed", len(result.Removed),
	)

	return domain.RefreshResponse{Report: report, Reconcile: result}, nil
}

func (s *stockService) HandleChange(ctx context.Context, change notify.Change) error {
	_, err := s.Refresh(ctx, change.HouseholdID)
	return err
}
