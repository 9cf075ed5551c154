package config

import (
	"Pantry-Backend/domain"
	"Pantry-Backend/internal/testutil"
	"Pantry-Backend/pkg/jwt"
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "pantry-test-secret"

var testNow = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type client struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newClient(t *testing.T) *client {
	t.Helper()
	app, err := NewApp(testutil.NewDatabase(t), AppOptions{
		LogOutput: io.Discard,
		JWTSecret: testSecret,
		Now:       func() time.Time { return testNow },
	})
	require.NoError(t, err)

	token, err := jwt.NewJWTService(testSecret).GenerateTokenHousehold(uuid.NewString(), time.Hour)
	require.NoError(t, err)
	return &client{t: t, app: app, token: token}
}

func (c *client) do(method, path string, body any, out any) int {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if c.token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&env))
	if out != nil && len(env.Data) > 0 {
		require.NoError(c.t, json.Unmarshal(env.Data, out))
	}
	return resp.StatusCode
}

func TestShoppingListFollowsStock(t *testing.T) {
	c := newClient(t)

	var batch domain.BatchResponse
	status := c.do(fiber.MethodPost, "/api/v1/batches", fiber.Map{
		"product_name": "Milk",
		"category":     "dairy",
		"unit":         "l",
		"quantity":     1,
		"location":     "fridge",
		"expiry_date":  "2026-10-17",
		"importance":   "critical",
	}, &batch)
	require.Equal(t, fiber.StatusCreated, status)

	var report domain.StockReport
	require.Equal(t, fiber.StatusOK, c.do(fiber.MethodGet, "/api/v1/stock", nil, &report))
	require.Len(t, report.Critical, 1)
	assert.Equal(t, domain.ReasonLowFromExpiry, report.Critical[0].Reason)
	assert.Equal(t, "Milk: low because stock is about to expire", report.Critical[0].Message)

	var entries []domain.ShoppingEntryResponse
	require.Equal(t, fiber.StatusOK, c.do(fiber.MethodGet, "/api/v1/shopping-list?status=active", nil, &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Milk", entries[0].ItemName)
	assert.Equal(t, domain.PriorityUrgent, entries[0].Priority)
	assert.False(t, entries[0].IsManual)

	status = c.do(fiber.MethodPost, "/api/v1/batches", fiber.Map{
		"product_name": "milk",
		"quantity":     "10",
		"location":     "pantry",
	}, nil)
	require.Equal(t, fiber.StatusCreated, status)

	entries = nil
	require.Equal(t, fiber.StatusOK, c.do(fiber.MethodGet, "/api/v1/shopping-list", nil, &entries))
	assert.Empty(t, entries, "automatic entry goes away once stock is healthy")

	var consumed domain.ConsumeResponse
	require.Equal(t, fiber.StatusOK, c.do(fiber.MethodPost, "/api/v1/products/"+batch.ProductID+"/consume", fiber.Map{"amount": 11}, &consumed))
	assert.True(t, consumed.Remaining.IsZero())

	require.Equal(t, fiber.StatusOK, c.do(fiber.MethodGet, "/api/v1/shopping-list", nil, &entries))
	require.Len(t, entries, 1)

	var refreshed domain.RefreshResponse
	require.Equal(t, fiber.StatusOK, c.do(fiber.MethodPost, "/api/v1/stock/refresh", nil, &refreshed))
	assert.Empty(t, refreshed.Reconcile.Inserted)
	require.Len(t, refreshed.Report.Critical, 1)
	assert.Equal(t, domain.ReasonOutOfStock, refreshed.Report.Critical[0].Reason)
}

func TestPurchaseReception(t *testing.T) {
	c := newClient(t)

	var entry domain.ShoppingEntryResponse
	require.Equal(t, fiber.StatusCreated, c.do(fiber.MethodPost, "/api/v1/shopping-list", fiber.Map{"item_name": "Butter"}, &entry))

	for _, s := range []domain.ShoppingStatus{domain.StatusChecked, domain.StatusBought} {
		require.Equal(t, fiber.StatusOK, c.do(fiber.MethodPatch, "/api/v1/shopping-list/"+entry.ID+"/status", fiber.Map{"status": s}, nil))
	}

	var batch domain.BatchResponse
	require.Equal(t, fiber.StatusCreated, c.do(fiber.MethodPost, "/api/v1/shopping-list/"+entry.ID+"/receive", fiber.Map{
		"quantity": 2,
		"location": "fridge",
	}, &batch))

	var product domain.ProductResponse
	require.Equal(t, fiber.StatusOK, c.do(fiber.MethodGet, "/api/v1/products/"+batch.ProductID, nil, &product))
	assert.Equal(t, "Butter", product.Name)
	assert.Equal(t, domain.ImportanceNormal, product.Importance)

	var entries []domain.ShoppingEntryResponse
	require.Equal(t, fiber.StatusOK, c.do(fiber.MethodGet, "/api/v1/shopping-list", nil, &entries))
	assert.Empty(t, entries)
}

func TestErrorStatuses(t *testing.T) {
	c := newClient(t)

	assert.Equal(t, fiber.StatusBadRequest, c.do(fiber.MethodPost, "/api/v1/batches", fiber.Map{"product_name": "Rice"}, nil))
	assert.Equal(t, fiber.StatusBadRequest, c.do(fiber.MethodPost, "/api/v1/batches", fiber.Map{
		"product_name": "Rice",
		"quantity":     0,
		"location":     "pantry",
	}, nil))
	assert.Equal(t, fiber.StatusNotFound, c.do(fiber.MethodPost, "/api/v1/products/"+uuid.NewString()+"/consume", fiber.Map{"amount": 1}, nil))
	assert.Equal(t, fiber.StatusBadRequest, c.do(fiber.MethodDelete, "/api/v1/batches/not-an-id", nil, nil))

	require.Equal(t, fiber.StatusCreated, c.do(fiber.MethodPost, "/api/v1/products", fiber.Map{"name": "Rice", "unit": "kg"}, nil))
	assert.Equal(t, fiber.StatusConflict, c.do(fiber.MethodPost, "/api/v1/products", fiber.Map{"name": "RICE", "unit": "kg"}, nil))

	c.token = ""
	assert.Equal(t, fiber.StatusUnauthorized, c.do(fiber.MethodGet, "/api/v1/stock", nil, nil))
}

func TestPing(t *testing.T) {
	c := newClient(t)
	resp, err := c.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
