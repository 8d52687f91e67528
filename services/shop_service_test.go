package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"grindspace-cafe/ledger"
	"grindspace-cafe/middleware"
	"grindspace-cafe/models"
	"grindspace-cafe/storage"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newShopFixture(t *testing.T) (*fiber.App, *ledger.SpendRecorder, *ShopService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ShopItem{}, &models.Purchase{}, &models.Tip{}))

	store := storage.NewMemoryKV()
	recorder := ledger.NewSpendRecorder(store, LogNotifier{})
	settlement := NewSimulatedSettlement(0)

	shop := NewShopService(db, recorder, settlement, LogNotifier{})
	require.NoError(t, shop.SeedItems())
	tips := NewTipService(db, recorder, settlement, LogNotifier{})

	app := fiber.New()
	app.Get("/shop/items", shop.GetItems)
	secured := app.Group("/", middleware.WalletContextMiddleware())
	secured.Post("/shop/items/:slug/purchase", shop.PurchaseItem)
	secured.Get("/shop/purchases", shop.GetPurchases)
	secured.Post("/tip", tips.SendTip)

	return app, recorder, shop
}

func shopRequest(t *testing.T, app *fiber.App, method, path, wallet string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if wallet != "" {
		req.Header.Set("X-Wallet-Address", wallet)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestShopCatalogIsSeededAndSorted(t *testing.T) {
	app, _, shop := newShopFixture(t)

	resp, raw := shopRequest(t, app, "GET", "/shop/items", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var items []models.ShopItem
	require.NoError(t, json.Unmarshal(raw, &items))
	require.Len(t, items, 4)
	assert.Equal(t, "exclusive-coffee-blend", items[0].Slug)
	assert.Equal(t, float64(5), items[0].Price)
	assert.Equal(t, "premium-coffee-nft", items[3].Slug)

	// Reseeding must not duplicate the catalog.
	require.NoError(t, shop.SeedItems())
	resp, raw = shopRequest(t, app, "GET", "/shop/items", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Len(t, items, 4)
}

func TestPurchaseSpendsAndWritesReceipt(t *testing.T) {
	app, recorder, _ := newShopFixture(t)
	require.NoError(t, recorder.EnsureStarterBalance("0xAAA"))

	resp, raw := shopRequest(t, app, "POST", "/shop/items/exclusive-coffee-blend/purchase", "0xAAA", nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var purchase models.Purchase
	require.NoError(t, json.Unmarshal(raw, &purchase))
	assert.Equal(t, "0xAAA", purchase.WalletAddress)
	assert.Equal(t, "Exclusive Coffee Blend", purchase.ItemName)
	assert.Equal(t, float64(5), purchase.Amount)
	assert.True(t, purchase.Simulated)

	balance, err := recorder.Balance("0xAAA")
	require.NoError(t, err)
	assert.InDelta(t, 5, balance, 1e-9)

	burned, err := recorder.BurnedBy("0xAAA")
	require.NoError(t, err)
	assert.InDelta(t, 5, burned, 1e-9)

	resp, raw = shopRequest(t, app, "GET", "/shop/purchases", "0xAAA", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var purchases []models.Purchase
	require.NoError(t, json.Unmarshal(raw, &purchases))
	assert.Len(t, purchases, 1)
}

func TestPurchaseRejectsInsufficientBalance(t *testing.T) {
	app, recorder, _ := newShopFixture(t)
	require.NoError(t, recorder.EnsureStarterBalance("0xAAA"))

	resp, raw := shopRequest(t, app, "POST", "/shop/items/premium-coffee-nft/purchase", "0xAAA", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "You need at least 20 $GRIND")

	balance, err := recorder.Balance("0xAAA")
	require.NoError(t, err)
	assert.InDelta(t, 10, balance, 1e-9)
}

func TestPurchaseUnknownItem(t *testing.T) {
	app, _, _ := newShopFixture(t)

	resp, _ := shopRequest(t, app, "POST", "/shop/items/decaf-sampler/purchase", "0xAAA", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTipRecordsSpend(t *testing.T) {
	app, recorder, _ := newShopFixture(t)
	require.NoError(t, recorder.EnsureStarterBalance("0xAAA"))

	resp, raw := shopRequest(t, app, "POST", "/tip", "0xAAA", fiber.Map{
		"farmer": "Finca La Esmeralda",
		"amount": "3.5",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var tip models.Tip
	require.NoError(t, json.Unmarshal(raw, &tip))
	assert.Equal(t, "Finca La Esmeralda", tip.Farmer)
	assert.Equal(t, "GRIND", tip.Currency)
	assert.InDelta(t, 3.5, tip.Amount, 1e-9)

	balance, err := recorder.Balance("0xAAA")
	require.NoError(t, err)
	assert.InDelta(t, 6.5, balance, 1e-9)
}

func TestTipRejectsFiatCurrency(t *testing.T) {
	app, recorder, _ := newShopFixture(t)
	require.NoError(t, recorder.EnsureStarterBalance("0xAAA"))

	resp, raw := shopRequest(t, app, "POST", "/tip", "0xAAA", fiber.Map{
		"farmer":   "Finca La Esmeralda",
		"amount":   "3.5",
		"currency": "USD",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "Only $GRIND tips")

	balance, err := recorder.Balance("0xAAA")
	require.NoError(t, err)
	assert.InDelta(t, 10, balance, 1e-9)
}
