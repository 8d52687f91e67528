// services/session_service.go
package services

import (
	"log"
	"strconv"

	"grindspace-cafe/ledger"
	"grindspace-cafe/storage"

	"github.com/gofiber/fiber/v2"
)

// SessionService handles connect/disconnect and the balance read. Connect is
// also where the referral link parameter lands: the front-end carries the
// ?ref= value through wallet connection and hands it to us here.
type SessionService struct {
	Store     storage.KV
	Referrals *ledger.ReferralLedger
	Recorder  *ledger.SpendRecorder
}

func NewSessionService(store storage.KV, referrals *ledger.ReferralLedger, recorder *ledger.SpendRecorder) *SessionService {
	return &SessionService{Store: store, Referrals: referrals, Recorder: recorder}
}

// Connect marks the wallet as connected, seeds the starter balance on first
// visit, and registers the referrer if a ref parameter came along.
func (s *SessionService) Connect(c *fiber.Ctx) error {
	address := c.Locals("wallet_address").(string)

	var req struct {
		Ref string `json:"ref"`
	}
	// Body is optional — a connect without a referral link has no payload.
	_ = c.BodyParser(&req)

	if err := s.Store.Set(ledger.ConnectionKey(address), "true"); err != nil {
		log.Printf("❌ Failed to mark connection for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to connect, please try again"})
	}

	if err := s.Recorder.EnsureStarterBalance(address); err != nil {
		log.Printf("❌ Failed to seed starter balance for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to connect, please try again"})
	}

	if err := s.Referrals.RegisterReferral(address, req.Ref); err != nil {
		// Referral attribution is best-effort on connect; the session is fine.
		log.Printf("❌ Failed to register referral for %s: %v", address, err)
	}

	balance, err := s.Recorder.Balance(address)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read balance"})
	}

	log.Printf("🔌 Wallet connected: %s", address)
	return c.JSON(fiber.Map{
		"connected":     true,
		"balance":       strconv.FormatFloat(balance, 'f', 2, 64),
		"referral_link": s.Referrals.ReferralLink(address),
	})
}

// Disconnect clears the connection flag only. Ledger data (referrer, claim
// flags, earnings, burn totals) survives disconnects by design.
func (s *SessionService) Disconnect(c *fiber.Ctx) error {
	address := c.Locals("wallet_address").(string)

	if err := s.Store.Delete(ledger.ConnectionKey(address)); err != nil {
		log.Printf("❌ Failed to clear connection for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to disconnect, please try again"})
	}

	log.Printf("🔌 Wallet disconnected: %s", address)
	return c.JSON(fiber.Map{"connected": false})
}

// GetBalance returns the wallet's spendable mock balance.
func (s *SessionService) GetBalance(c *fiber.Ctx) error {
	address := c.Locals("wallet_address").(string)

	balance, err := s.Recorder.Balance(address)
	if err != nil {
		log.Printf("❌ Failed to read balance for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read balance"})
	}

	return c.JSON(fiber.Map{
		"address": address,
		"balance": strconv.FormatFloat(balance, 'f', 2, 64),
	})
}
