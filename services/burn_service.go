// services/burn_service.go
package services

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"strconv"

	"grindspace-cafe/ledger"

	"github.com/gofiber/fiber/v2"
)

// Beanjahmon quotes shown after a burn offering.
var beanjahmonQuotes = []string{
	"A worthy tribute, mi fren. Beanjahmon sees all...",
	"The beans speak through the flames, ya know?",
	"When you burn, you learn. That's the cosmic cycle, mon.",
	"Fire purifies the soul, just like heat roasts the bean.",
	"Your sacrifice feeds the eternal grind. Respect.",
}

type BurnService struct {
	Recorder   *ledger.SpendRecorder
	Referrals  *ledger.ReferralLedger
	Board      *ledger.BurnLeaderboard
	Settlement *Settlement
	Notifier   ledger.Notifier
}

func NewBurnService(recorder *ledger.SpendRecorder, referrals *ledger.ReferralLedger, board *ledger.BurnLeaderboard, settlement *Settlement, notifier ledger.Notifier) *BurnService {
	return &BurnService{Recorder: recorder, Referrals: referrals, Board: board, Settlement: settlement, Notifier: notifier}
}

// Burn handles a burn offering: validate, check the balance, settle the
// (simulated or real) transaction, then record the spend, refresh the
// leaderboard, and fire any pending referral claim — a burn is a qualifying
// action for the referrer payout.
func (s *BurnService) Burn(c *fiber.Ctx) error {
	address := c.Locals("wallet_address").(string)

	var req struct {
		Amount string `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	amount, ok := parseSpendAmount(req.Amount)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please enter a valid amount to sacrifice"})
	}

	balance, err := s.Recorder.Balance(address)
	if err != nil {
		log.Printf("❌ Failed to read balance for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read balance"})
	}
	if balance < amount {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("You need at least %s $GRIND to make this offering", req.Amount),
		})
	}

	if err := s.Settlement.Settle(address, amount); err != nil {
		log.Printf("❌ Burn transfer failed for %s: %v", address, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Transaction failed, please try again later"})
	}

	if err := s.Recorder.RecordSpend(address, amount, ledger.ScopeBurn); err != nil {
		log.Printf("❌ Failed to record burn for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record burn, please try again"})
	}

	if err := s.Board.RecordBurn(address, amount); err != nil {
		// The scheduled rebuild reconciles the board from the counters.
		log.Printf("⚠️ Leaderboard update failed for %s: %v", address, err)
	}

	if claimed, err := s.Referrals.ClaimReward(address); err != nil {
		log.Printf("⚠️ Referral claim after burn failed for %s: %v", address, err)
	} else if claimed {
		log.Printf("🎁 Burn by %s triggered the referral payout", address)
	}

	s.Notifier.Notify(ledger.Notification{
		Title:   "Tokens Burned Successfully! 🔥",
		Body:    fmt.Sprintf("You burned %s $GRIND tokens", req.Amount),
		Variant: "default",
	})

	return s.burnStateJSON(c, address)
}

// GetBurnStats backs the burn page: balance, totals, board, and a quote.
func (s *BurnService) GetBurnStats(c *fiber.Ctx) error {
	address := c.Locals("wallet_address").(string)
	return s.burnStateJSON(c, address)
}

func (s *BurnService) burnStateJSON(c *fiber.Ctx, address string) error {
	balance, err := s.Recorder.Balance(address)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read balance"})
	}
	burned, err := s.Recorder.BurnedBy(address)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read burn totals"})
	}
	total, err := s.Recorder.TotalBurned()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read burn totals"})
	}
	entries, err := s.Board.Top()
	if err != nil {
		log.Printf("⚠️ Failed to read leaderboard: %v", err)
		entries = []ledger.LeaderboardEntry{}
	}

	return c.JSON(fiber.Map{
		"balance":      strconv.FormatFloat(balance, 'f', 2, 64),
		"burned":       strconv.FormatFloat(burned, 'f', -1, 64),
		"total_burned": strconv.FormatFloat(total, 'f', -1, 64),
		"leaderboard":  entries,
		"quote":        beanjahmonQuotes[rand.Intn(len(beanjahmonQuotes))],
	})
}

// parseSpendAmount accepts the decimal-string amounts the front-end sends.
func parseSpendAmount(raw string) (float64, bool) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	return amount, true
}
