package product

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/entities"
	"Pantry-Backend/internal/notify"
	"Pantry-Backend/internal/testutil"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testHousehold = uuid.MustParse("3d6f1a2b-8c4e-4f90-b1d2-7a5e9c3f6b08")

type countingPublisher struct {
	kinds []notify.Kind
}

func (p *countingPublisher) Publish(ctx context.Context, change notify.Change) {
	p.kinds = append(p.kinds, change.Kind)
}

func setupProducts(t *testing.T) (*gorm.DB, ProductService, *countingPublisher) {
	t.Helper()
	db := testutil.NewDatabase(t)
	publisher := &countingPublisher{}
	return db, NewProductService(NewProductRepository(db), publisher), publisher
}

func createProduct(t *testing.T, svc ProductService, name string, importance domain.Importance) domain.ProductResponse {
	t.Helper()
	res, err := svc.CreateProduct(context.Background(), domain.CreateProductRequest{
		Name:       name,
		Unit:       domain.UnitPiece,
		Importance: importance,
	}, testHousehold.String())
	require.NoError(t, err)
	return res
}

func TestCreateProduct(t *testing.T) {
	_, svc, publisher := setupProducts(t)
	threshold := decimal.NewFromInt(6)

	res, err := svc.CreateProduct(context.Background(), domain.CreateProductRequest{
		Name:        " Eggs ",
		Category:    "dairy",
		Unit:        domain.UnitPiece,
		MinQuantity: &threshold,
	}, testHousehold.String())
	require.NoError(t, err)

	assert.Equal(t, "Eggs", res.Name)
	assert.Equal(t, domain.ImportanceNormal, res.Importance)
	require.NotNil(t, res.MinQuantity)
	assert.True(t, res.MinQuantity.Equal(threshold))
	assert.Equal(t, []notify.Kind{notify.KindProduct}, publisher.kinds)
}

func TestCreateProductRejectsDuplicateName(t *testing.T) {
	_, svc, _ := setupProducts(t)
	createProduct(t, svc, "Milk", domain.ImportanceCritical)

	_, err := svc.CreateProduct(context.Background(), domain.CreateProductRequest{
		Name: "mIlK",
		Unit: domain.UnitLiter,
	}, testHousehold.String())
	assert.ErrorIs(t, err, domain.ErrProductNameTaken)

	_, err = svc.CreateProduct(context.Background(), domain.CreateProductRequest{
		Name: "Milk",
		Unit: domain.UnitLiter,
	}, uuid.NewString())
	assert.NoError(t, err, "names are unique per household only")
}

func TestCreateProductValidation(t *testing.T) {
	_, svc, _ := setupProducts(t)
	negative := decimal.NewFromInt(-1)

	_, err := svc.CreateProduct(context.Background(), domain.CreateProductRequest{Name: "Rice", Unit: "bag"}, testHousehold.String())
	assert.ErrorIs(t, err, domain.ErrInvalidUnit)

	_, err = svc.CreateProduct(context.Background(), domain.CreateProductRequest{Name: "Rice", Importance: "vital"}, testHousehold.String())
	assert.ErrorIs(t, err, domain.ErrInvalidImportance)

	_, err = svc.CreateProduct(context.Background(), domain.CreateProductRequest{Name: "Rice", MinQuantity: &negative}, testHousehold.String())
	assert.ErrorIs(t, err, domain.ErrInvalidThreshold)

	_, err = svc.CreateProduct(context.Background(), domain.CreateProductRequest{Name: "Rice"}, "household")
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestGetProductsOrderedByName(t *testing.T) {
	_, svc, _ := setupProducts(t)
	createProduct(t, svc, "rice", domain.ImportanceNormal)
	createProduct(t, svc, "Apples", domain.ImportanceNormal)
	createProduct(t, svc, "bread", domain.ImportanceHigh)

	products, count, err := svc.GetProducts(context.Background(), testHousehold.String(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	require.Len(t, products, 2)
	assert.Equal(t, "Apples", products[0].Name)
	assert.Equal(t, "bread", products[1].Name)

	products, _, err = svc.GetProducts(context.Background(), testHousehold.String(), 2, 2)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "rice", products[0].Name)
}

func TestUpdateProduct(t *testing.T) {
	_, svc, _ := setupProducts(t)
	milk := createProduct(t, svc, "Milk", domain.ImportanceCritical)
	createProduct(t, svc, "Bread", domain.ImportanceHigh)
	ctx := context.Background()

	taken := "BREAD"
	_, err := svc.UpdateProduct(ctx, milk.ID, domain.UpdateProductRequest{Name: &taken}, testHousehold.String())
	assert.ErrorIs(t, err, domain.ErrProductNameTaken)

	sameName := "milk"
	importance := domain.ImportanceHigh
	threshold := decimal.NewFromInt(3)
	ghost := true
	res, err := svc.UpdateProduct(ctx, milk.ID, domain.UpdateProductRequest{
		Name:        &sameName,
		Importance:  &importance,
		MinQuantity: &threshold,
		IsGhost:     &ghost,
	}, testHousehold.String())
	require.NoError(t, err)
	assert.Equal(t, "milk", res.Name)
	assert.Equal(t, domain.ImportanceHigh, res.Importance)
	assert.True(t, res.IsGhost)
	require.NotNil(t, res.MinQuantity)

	res, err = svc.UpdateProduct(ctx, milk.ID, domain.UpdateProductRequest{ClearMinQuantity: true}, testHousehold.String())
	require.NoError(t, err)
	assert.Nil(t, res.MinQuantity)

	stored, err := svc.GetProductByID(ctx, milk.ID, testHousehold.String())
	require.NoError(t, err)
	assert.Nil(t, stored.MinQuantity)
	assert.Equal(t, "milk", stored.Name)
}

func TestDeleteProductCascades(t *testing.T) {
	db, svc, publisher := setupProducts(t)
	ctx := context.Background()
	milk := createProduct(t, svc, "Milk", domain.ImportanceCritical)
	milkID := uuid.MustParse(milk.ID)

	require.NoError(t, db.Create(&entities.Batch{
		ProductID:   milkID,
		HouseholdID: testHousehold,
		Quantity:    decimal.NewFromInt(1),
		Location:    "fridge",
	}).Error)
	auto := &entities.ShoppingEntry{
		HouseholdID: testHousehold,
		ProductID:   &milkID,
		ItemName:    "Milk",
		Priority:    domain.PriorityUrgent,
		Status:      domain.StatusActive,
	}
	require.NoError(t, db.Create(auto).Error)
	entry := &entities.ShoppingEntry{
		HouseholdID: testHousehold,
		ProductID:   &milkID,
		ItemName:    "Milk",
		Priority:    domain.PriorityUrgent,
		Status:      domain.StatusPostponed,
		IsManual:    true,
	}
	require.NoError(t, db.Create(entry).Error)

	_, err := svc.GetProductByID(ctx, milk.ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, milk.ID, uuid.NewString()), domain.ErrNotFound)

	require.NoError(t, svc.DeleteProduct(ctx, milk.ID, testHousehold.String()))

	var batches int64
	require.NoError(t, db.Model(&entities.Batch{}).Count(&batches).Error)
	assert.Zero(t, batches)

	var stored entities.ShoppingEntry
	require.NoError(t, db.First(&stored, "id = ?", entry.ID).Error)
	assert.Nil(t, stored.ProductID)
	assert.Equal(t, "milk", stored.ItemKey)
	assert.ErrorIs(t, db.First(&entities.ShoppingEntry{}, "id = ?", auto.ID).Error, gorm.ErrRecordNotFound)

	_, err = svc.GetProductByID(ctx, milk.ID, testHousehold.String())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Len(t, publisher.kinds, 2)
}
