package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"grindspace-cafe/ledger"
	"grindspace-cafe/storage"
)

// WalletBalance is one entry from the wallet service's change feed: the
// on-chain $GRIND balance for a connected wallet, already formatted as a
// decimal string.
type WalletBalance struct {
	Address   string    `json:"address"`
	Balance   string    `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BalanceSyncClient mirrors on-chain balances into the mock balance keys.
// This is the only top-up path: the ledger itself never credits a balance.
type BalanceSyncClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Store      storage.KV
}

func NewBalanceSyncClient(store storage.KV) *BalanceSyncClient {
	baseURL := os.Getenv("BALANCE_SYNC_URL")
	if baseURL == "" {
		log.Fatal("BALANCE_SYNC_URL environment variable is required")
	}
	token := os.Getenv("CAFE_SERVICE_TOKEN")
	if token == "" {
		log.Fatal("CAFE_SERVICE_TOKEN environment variable is required for balance sync")
	}

	return &BalanceSyncClient{
		BaseURL: baseURL,
		Token:   token,
		Store:   store,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *BalanceSyncClient) GetChangedBalances(ctx context.Context, since time.Time) ([]WalletBalance, error) {
	since = since.UTC()

	u, err := url.Parse(fmt.Sprintf("%s/api/v1/public/balances", c.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("since", since.Format(time.RFC3339))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-Service-Token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call wallet service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("wallet service returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Balances []WalletBalance `json:"balances"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode wallet service response: %w", err)
	}

	return response.Balances, nil
}

// PollBalances mirrors changed balances into the KV store on a fixed tick.
func PollBalances(ctx context.Context, client *BalanceSyncClient, pollInterval time.Duration) {
	log.Println("Starting balance polling (KV-backed)...")
	lastSyncTime := time.Now().UTC().Add(-24 * time.Hour)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Balance polling stopped.")
			return
		case <-ticker.C:
			logTime := time.Now().UTC()

			balances, err := client.GetChangedBalances(ctx, lastSyncTime)
			if err != nil {
				log.Printf("❌ Error polling balances: %v", err)
				continue
			}

			count := len(balances)
			if count == 0 {
				continue
			}
			log.Printf("📥 Received %d balance change(s) from wallet service.", count)

			failed := 0
			for _, wb := range balances {
				value, err := strconv.ParseFloat(wb.Balance, 64)
				if err != nil || wb.Address == "" {
					log.Printf("⚠️ Skipping unusable balance entry %q=%q", wb.Address, wb.Balance)
					continue
				}
				// Balances are display money: stored at 2 decimal places.
				if err := client.Store.Set(ledger.BalanceKey(wb.Address), strconv.FormatFloat(value, 'f', 2, 64)); err != nil {
					log.Printf("❌ Failed to mirror balance for %s: %v", wb.Address, err)
					failed++
				}
			}

			if failed > 0 {
				// Do NOT advance lastSyncTime on failure — retry same window next tick
				log.Printf("❌ %d of %d balance(s) failed to mirror, retrying window.", failed, count)
				continue
			}

			// ✅ Success: advance lastSyncTime to *now* to avoid reprocessing same batch
			lastSyncTime = logTime
			log.Printf("✅ Mirrored %d balance(s) into the KV store.", count)
		}
	}
}
