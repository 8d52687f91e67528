// ledger/spend.go
package ledger

import (
	"fmt"
	"log"
	"math"
	"strconv"

	"grindspace-cafe/storage"
)

// SpendScope names the feature a debit came from. Every $GRIND sink in the
// café (burn altar, coffee reading, shop, tipping) funnels through the same
// recorder so the counters stay uniform.
type SpendScope string

const (
	ScopeBurn     SpendScope = "burn"
	ScopeReading  SpendScope = "reading"
	ScopePurchase SpendScope = "purchase"
	ScopeTip      SpendScope = "tip"
)

// SpendRecorder applies debits to a wallet's mock balance and to the global
// and per-address burn totals. It does not check sufficiency — callers verify
// the balance before invoking it, and a misused call will drive the mock
// balance negative. The three writes are independent and non-transactional.
type SpendRecorder struct {
	Store    storage.KV
	Notifier Notifier
}

func NewSpendRecorder(store storage.KV, notifier Notifier) *SpendRecorder {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &SpendRecorder{Store: store, Notifier: notifier}
}

// RecordSpend debits amount from address's mock balance and adds it to the
// global and per-address burned totals. Invalid inputs (empty address,
// non-positive or non-finite amount) are logged no-ops, not errors.
func (r *SpendRecorder) RecordSpend(address string, amount float64, scope SpendScope) error {
	if address == "" || amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		log.Printf("⚠️ Ignoring invalid spend: address=%q amount=%v scope=%s", address, amount, scope)
		return nil
	}

	balance, err := r.Balance(address)
	if err != nil {
		return err
	}
	// Balance is displayed money, kept at 2 decimal places like the UI did.
	if err := r.Store.Set(BalanceKey(address), strconv.FormatFloat(balance-amount, 'f', 2, 64)); err != nil {
		r.notifyStorageFailure()
		return fmt.Errorf("debit balance for %s: %w", address, err)
	}

	total, err := r.TotalBurned()
	if err != nil {
		return err
	}
	if err := r.Store.Set(totalBurnedKey, formatAmount(total+amount)); err != nil {
		r.notifyStorageFailure()
		return fmt.Errorf("bump global burned total: %w", err)
	}

	burned, err := r.BurnedBy(address)
	if err != nil {
		return err
	}
	if err := r.Store.Set(burnedKey(address), formatAmount(burned+amount)); err != nil {
		r.notifyStorageFailure()
		return fmt.Errorf("bump burned total for %s: %w", address, err)
	}

	log.Printf("🔥 Spend recorded: %s $GRIND by %s (scope=%s)", formatAmount(amount), address, scope)
	return nil
}

// Balance returns address's spendable mock balance, 0 for unknown wallets.
// First-connect seeding happens in EnsureStarterBalance, not here.
func (r *SpendRecorder) Balance(address string) (float64, error) {
	raw, err := r.Store.Get(BalanceKey(address))
	if err != nil {
		return 0, fmt.Errorf("read balance for %s: %w", address, err)
	}
	return parseAmount(raw), nil
}

// BurnedBy returns the cumulative burned total for one address.
func (r *SpendRecorder) BurnedBy(address string) (float64, error) {
	raw, err := r.Store.Get(burnedKey(address))
	if err != nil {
		return 0, fmt.Errorf("read burned total for %s: %w", address, err)
	}
	return parseAmount(raw), nil
}

// TotalBurned returns the global cumulative burned total across all users.
func (r *SpendRecorder) TotalBurned() (float64, error) {
	raw, err := r.Store.Get(totalBurnedKey)
	if err != nil {
		return 0, fmt.Errorf("read global burned total: %w", err)
	}
	return parseAmount(raw), nil
}

// EnsureStarterBalance seeds the mock balance on first connect. Existing
// balances are never touched — top-ups come only from the sync worker.
func (r *SpendRecorder) EnsureStarterBalance(address string) error {
	if address == "" {
		return nil
	}
	raw, err := r.Store.Get(BalanceKey(address))
	if err != nil {
		return fmt.Errorf("read balance for %s: %w", address, err)
	}
	if raw != "" {
		return nil
	}
	if err := r.Store.Set(BalanceKey(address), StarterBalance); err != nil {
		r.notifyStorageFailure()
		return fmt.Errorf("seed balance for %s: %w", address, err)
	}
	log.Printf("☕ Starter balance of %s $GRIND seeded for %s", StarterBalance, address)
	return nil
}

func (r *SpendRecorder) notifyStorageFailure() {
	r.Notifier.Notify(Notification{
		Title:   "Something went wrong",
		Body:    "Please try again",
		Variant: "destructive",
	})
}

func parseAmount(raw string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		log.Printf("⚠️ Unparseable amount %q, treating as 0", raw)
		return 0
	}
	return v
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
