// ledger/leaderboard.go
package ledger

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"grindspace-cafe/storage"
)

// leaderboardSize caps the stored board at the top burners the UI shows.
const leaderboardSize = 5

// LeaderboardEntry mirrors the JSON shape the front-end reads: amounts stay
// decimal strings.
type LeaderboardEntry struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

// BurnLeaderboard is a derived view over the per-address burn counters. It is
// not part of the accounting core: losing it loses nothing, the rebuild job
// regenerates it from the authoritative keys.
type BurnLeaderboard struct {
	Store storage.KV
}

func NewBurnLeaderboard(store storage.KV) *BurnLeaderboard {
	return &BurnLeaderboard{Store: store}
}

// Top returns the current board, empty when never written.
func (b *BurnLeaderboard) Top() ([]LeaderboardEntry, error) {
	raw, err := b.Store.Get(LeaderboardKey)
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	if raw == "" {
		return []LeaderboardEntry{}, nil
	}
	var entries []LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("decode leaderboard: %w", err)
	}
	return entries, nil
}

// RecordBurn folds one burn into the stored board: upsert the burner's entry,
// sort descending, keep the top five.
func (b *BurnLeaderboard) RecordBurn(address string, amount float64) error {
	if address == "" || amount <= 0 {
		return nil
	}
	entries, err := b.Top()
	if err != nil {
		return err
	}

	found := false
	for i := range entries {
		if entries[i].Address == address {
			entries[i].Amount = formatAmount(parseAmount(entries[i].Amount) + amount)
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, LeaderboardEntry{Address: address, Amount: formatAmount(amount)})
	}

	return b.store(entries)
}

// Rebuild regenerates the board from the per-address burn counters so it
// reconciles with the authoritative totals even if incremental updates were
// lost.
func (b *BurnLeaderboard) Rebuild(lister storage.PrefixLister) error {
	burned, err := lister.ListPrefix(burnedKeyPrefix)
	if err != nil {
		return fmt.Errorf("list burn counters: %w", err)
	}

	entries := make([]LeaderboardEntry, 0, len(burned))
	for key, value := range burned {
		address := strings.TrimPrefix(key, burnedKeyPrefix)
		if address == "" || parseAmount(value) <= 0 {
			continue
		}
		entries = append(entries, LeaderboardEntry{Address: address, Amount: value})
	}

	return b.store(entries)
}

func (b *BurnLeaderboard) store(entries []LeaderboardEntry) error {
	sort.SliceStable(entries, func(i, j int) bool {
		return parseAmount(entries[i].Amount) > parseAmount(entries[j].Amount)
	})
	if len(entries) > leaderboardSize {
		entries = entries[:leaderboardSize]
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode leaderboard: %w", err)
	}
	if err := b.Store.Set(LeaderboardKey, string(raw)); err != nil {
		return fmt.Errorf("write leaderboard: %w", err)
	}
	return nil
}
