// ledger/referral.go
package ledger

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"grindspace-cafe/storage"
)

// ReferralLedger attributes a new user to a referrer exactly once and pays
// that referrer a fixed reward exactly once per referred user.
//
// Per referred user the record moves NEW → REFERRED → REWARDED, one way:
// RegisterReferral with a valid distinct referrer makes the first hop,
// the first successful ClaimReward makes the second, and REWARDED is
// terminal for that user.
type ReferralLedger struct {
	Store    storage.KV
	Notifier Notifier
	Origin   string // front-end origin used for referral links
}

func NewReferralLedger(store storage.KV, notifier Notifier, origin string) *ReferralLedger {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if origin == "" {
		origin = "https://makingcoffee.com"
	}
	return &ReferralLedger{Store: store, Notifier: notifier, Origin: strings.TrimRight(origin, "/")}
}

// RegisterReferral stores refParam as currentUser's referrer. First writer
// wins: later visits with a different ref must not overwrite. Self-referrals
// are dropped silently (logged only), never stored.
func (l *ReferralLedger) RegisterReferral(currentUser, refParam string) error {
	if refParam == "" || currentUser == "" {
		return nil
	}

	if strings.EqualFold(refParam, currentUser) {
		log.Printf("🔁 Self-referral detected for %s, ignoring", currentUser)
		return nil
	}

	stored, err := l.Store.Get(referrerKey(currentUser))
	if err != nil {
		return fmt.Errorf("read referrer for %s: %w", currentUser, err)
	}
	if stored != "" {
		// First referrer wins.
		return nil
	}

	if err := l.Store.Set(referrerKey(currentUser), refParam); err != nil {
		l.notifyStorageFailure()
		return fmt.Errorf("store referrer for %s: %w", currentUser, err)
	}

	log.Printf("📨 Referrer %s stored for %s", refParam, currentUser)
	return nil
}

// ClaimReward pays currentUser's referrer RewardAmount $GRIND, at most once.
// It returns false without mutating anything when there is no referrer on
// record, the reward was already claimed, or the stored referrer turns out to
// be the user themselves. A second call in a row observes the claimed flag
// and short-circuits, so the operation is idempotent for callers.
func (l *ReferralLedger) ClaimReward(currentUser string) (bool, error) {
	if currentUser == "" {
		return false, nil
	}

	referrer, err := l.Store.Get(referrerKey(currentUser))
	if err != nil {
		return false, fmt.Errorf("read referrer for %s: %w", currentUser, err)
	}
	claimed, err := l.Store.Get(claimedKey(currentUser))
	if err != nil {
		return false, fmt.Errorf("read claim flag for %s: %w", currentUser, err)
	}

	if referrer == "" || claimed == "true" {
		return false, nil
	}
	if strings.EqualFold(referrer, currentUser) {
		return false, nil
	}

	earnings, err := l.Earnings(referrer)
	if err != nil {
		return false, err
	}
	if err := l.Store.Set(earnedKey(referrer), strconv.Itoa(earnings+RewardAmount)); err != nil {
		l.notifyStorageFailure()
		return false, fmt.Errorf("credit referrer %s: %w", referrer, err)
	}
	if err := l.Store.Set(claimedKey(currentUser), "true"); err != nil {
		l.notifyStorageFailure()
		return false, fmt.Errorf("mark claim for %s: %w", currentUser, err)
	}

	log.Printf("🎁 Referral reward: %d $GRIND credited to %s (referred %s)", RewardAmount, referrer, currentUser)
	l.Notifier.Notify(Notification{
		Title:   "Referral Reward Sent!",
		Body:    fmt.Sprintf("%d $GRIND tokens sent to your referrer", RewardAmount),
		Variant: "default",
	})
	return true, nil
}

// ReferralLink builds the shareable link for an address. Empty address yields
// an empty string by convention, not an error.
func (l *ReferralLedger) ReferralLink(currentUser string) string {
	if currentUser == "" {
		return ""
	}
	return fmt.Sprintf("%s/?ref=%s", l.Origin, currentUser)
}

// Earnings returns the cumulative referral reward units credited to address,
// defaulting to 0 for unknown addresses.
func (l *ReferralLedger) Earnings(address string) (int, error) {
	if address == "" {
		return 0, nil
	}
	raw, err := l.Store.Get(earnedKey(address))
	if err != nil {
		return 0, fmt.Errorf("read earnings for %s: %w", address, err)
	}
	if raw == "" {
		return 0, nil
	}
	earnings, err := strconv.Atoi(raw)
	if err != nil || earnings < 0 {
		log.Printf("⚠️ Unparseable earnings %q for %s, treating as 0", raw, address)
		return 0, nil
	}
	return earnings, nil
}

// TotalReferrals derives the referred-user count from earnings.
func (l *ReferralLedger) TotalReferrals(address string) (int, error) {
	earnings, err := l.Earnings(address)
	if err != nil {
		return 0, err
	}
	return earnings / RewardAmount, nil
}

// Referrer returns the address credited with referring the given user, or ""
// when none is on record.
func (l *ReferralLedger) Referrer(address string) (string, error) {
	if address == "" {
		return "", nil
	}
	return l.Store.Get(referrerKey(address))
}

// HasRewarded reports whether the referral reward for this user's referrer
// has already been paid.
func (l *ReferralLedger) HasRewarded(address string) (bool, error) {
	if address == "" {
		return false, nil
	}
	claimed, err := l.Store.Get(claimedKey(address))
	if err != nil {
		return false, err
	}
	return claimed == "true", nil
}

func (l *ReferralLedger) notifyStorageFailure() {
	l.Notifier.Notify(Notification{
		Title:   "Something went wrong",
		Body:    "Please try again",
		Variant: "destructive",
	})
}
