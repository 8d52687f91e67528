package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"grindspace-cafe/ledger"
	"grindspace-cafe/services"
	"grindspace-cafe/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *storage.MemoryKV) {
	t.Helper()

	store := storage.NewMemoryKV()
	notifier := services.LogNotifier{}
	referrals := ledger.NewReferralLedger(store, notifier, "https://makingcoffee.com")
	recorder := ledger.NewSpendRecorder(store, notifier)
	board := ledger.NewBurnLeaderboard(store)
	settlement := services.NewSimulatedSettlement(0)

	app := fiber.New()
	SetupLedgerRoutes(app,
		services.NewSessionService(store, referrals, recorder),
		services.NewReferralService(referrals),
		services.NewBurnService(recorder, referrals, board, settlement, notifier),
		services.NewReadingService(recorder, settlement, notifier),
		services.NewLeaderboardService(board, recorder),
	)
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path, wallet string, payload any) (*http.Response, map[string]any) {
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

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestSecuredRoutesRequireWallet(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/session/connect", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body["error"], "X-Wallet-Address")
}

func TestConnectSeedsBalanceAndStoresReferrer(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/session/connect", "0xAAA", fiber.Map{"ref": "0xBBB"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "10.00", body["balance"])
	assert.Equal(t, "https://makingcoffee.com/?ref=0xAAA", body["referral_link"])

	resp, body = doJSON(t, app, "GET", "/referral", "0xAAA", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "0xBBB", body["referrer"])
	assert.Equal(t, false, body["has_rewarded"])
}

func TestDisconnectKeepsLedgerData(t *testing.T) {
	app, store := newTestApp(t)

	_, _ = doJSON(t, app, "POST", "/session/connect", "0xAAA", fiber.Map{"ref": "0xBBB"})

	resp, _ := doJSON(t, app, "POST", "/session/disconnect", "0xAAA", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	flag, err := store.Get(ledger.ConnectionKey("0xAAA"))
	require.NoError(t, err)
	assert.Empty(t, flag)

	// Referrer and balance survive the disconnect.
	resp, body := doJSON(t, app, "GET", "/referral", "0xAAA", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "0xBBB", body["referrer"])

	resp, body = doJSON(t, app, "GET", "/balance", "0xAAA", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "10.00", body["balance"])
}

func TestBurnDebitsAndTriggersReferralPayout(t *testing.T) {
	app, _ := newTestApp(t)

	_, _ = doJSON(t, app, "POST", "/session/connect", "0xAAA", fiber.Map{"ref": "0xBBB"})

	resp, body := doJSON(t, app, "POST", "/burn", "0xAAA", fiber.Map{"amount": "2.5"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "7.50", body["balance"])
	assert.Equal(t, "2.5", body["burned"])
	assert.Equal(t, "2.5", body["total_burned"])
	assert.NotEmpty(t, body["quote"])

	entries, ok := body["leaderboard"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)

	// The burn was 0xAAA's qualifying action: 0xBBB got paid.
	resp, body = doJSON(t, app, "GET", "/referral", "0xBBB", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(10), body["earnings"])
	assert.Equal(t, float64(1), body["total_referrals"])

	// And 0xAAA's claim is spent.
	resp, body = doJSON(t, app, "GET", "/referral", "0xAAA", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["has_rewarded"])
}

func TestBurnRejectsInsufficientBalance(t *testing.T) {
	app, _ := newTestApp(t)

	_, _ = doJSON(t, app, "POST", "/session/connect", "0xAAA", nil)

	resp, body := doJSON(t, app, "POST", "/burn", "0xAAA", fiber.Map{"amount": "100"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "You need at least")

	// Nothing moved.
	resp, body = doJSON(t, app, "GET", "/balance", "0xAAA", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "10.00", body["balance"])
}

func TestBurnRejectsInvalidAmount(t *testing.T) {
	app, _ := newTestApp(t)
	_, _ = doJSON(t, app, "POST", "/session/connect", "0xAAA", nil)

	for _, amount := range []string{"", "abc", "-5", "0"} {
		resp, _ := doJSON(t, app, "POST", "/burn", "0xAAA", fiber.Map{"amount": amount})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "amount %q", amount)
	}
}

func TestClaimWithoutReferrerConflicts(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/referral/claim", "0xAAA", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "No referral reward available", body["error"])
}

func TestExplicitClaimPaysOnce(t *testing.T) {
	app, _ := newTestApp(t)

	_, _ = doJSON(t, app, "POST", "/session/connect", "0xAAA", fiber.Map{"ref": "0xBBB"})

	resp, body := doJSON(t, app, "POST", "/referral/claim", "0xAAA", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(10), body["reward_amount"])

	resp, _ = doJSON(t, app, "POST", "/referral/claim", "0xAAA", nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestReadingChargesFixedCost(t *testing.T) {
	app, _ := newTestApp(t)

	_, _ = doJSON(t, app, "POST", "/session/connect", "0xAAA", nil)

	resp, body := doJSON(t, app, "POST", "/reading", "0xAAA", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "5.80", body["balance"])

	reading, ok := body["reading"].(map[string]any)
	require.True(t, ok)
	assert.NotEmpty(t, reading["text"])
	assert.NotEmpty(t, reading["image"])

	// Two readings exhaust the starter balance (10 - 2*4.20 = 1.60 < 4.20).
	resp, _ = doJSON(t, app, "POST", "/reading", "0xAAA", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp, body = doJSON(t, app, "POST", "/reading", "0xAAA", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "4.20 $GRIND")
}

func TestLeaderboardIsPublic(t *testing.T) {
	app, _ := newTestApp(t)

	_, _ = doJSON(t, app, "POST", "/session/connect", "0xAAA", nil)
	_, _ = doJSON(t, app, "POST", "/burn", "0xAAA", fiber.Map{"amount": "4"})

	// No wallet header on purpose.
	resp, body := doJSON(t, app, "GET", "/leaderboard", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "4", body["total_burned"])

	entries, ok := body["entries"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	first := entries[0].(map[string]any)
	assert.Equal(t, "0xAAA", first["address"])
	assert.Equal(t, "4", first["amount"])
}
