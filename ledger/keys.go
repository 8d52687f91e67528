// ledger/keys.go
package ledger

// Key layout shared with the legacy front-end's localStorage. The browser
// store was scoped to one profile, so its "global" referrer and balance keys
// are per-address here — the server store is shared across every user.
const (
	// RewardAmount is the $GRIND paid to a referrer per referred user.
	RewardAmount = 10

	// StarterBalance seeds a fresh wallet's mock balance on first connect.
	StarterBalance = "10.0"

	referrerKeyPrefix   = "grindspace-referrer-"
	claimedKeyPrefix    = "grindspace-referral-claimed-"
	earnedKeyPrefix     = "grindspace-referral-earned-"
	balanceKeyPrefix    = "mock-grind-balance-"
	burnedKeyPrefix     = "grindspace-burned-"
	connectionKeyPrefix = "agw-connection-"

	totalBurnedKey = "grindspace-total-burned"

	// LeaderboardKey holds the top-5 burn leaderboard as a JSON array.
	LeaderboardKey = "grindspace-burn-leaderboard"
)

func referrerKey(address string) string { return referrerKeyPrefix + address }
func claimedKey(address string) string  { return claimedKeyPrefix + address }
func earnedKey(address string) string   { return earnedKeyPrefix + address }
func burnedKey(address string) string   { return burnedKeyPrefix + address }

// BalanceKey is exported for the balance sync worker, which mirrors on-chain
// balances into the mock balance slots.
func BalanceKey(address string) string { return balanceKeyPrefix + address }

// ConnectionKey holds the per-wallet connection flag. It is the only key the
// disconnect path is allowed to clear — ledger data survives disconnects.
func ConnectionKey(address string) string { return connectionKeyPrefix + address }
