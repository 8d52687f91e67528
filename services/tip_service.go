// services/tip_service.go
package services

import (
	"fmt"
	"log"
	"strings"

	"grindspace-cafe/ledger"
	"grindspace-cafe/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TipService struct {
	DB         *gorm.DB
	Recorder   *ledger.SpendRecorder
	Settlement *Settlement
	Notifier   ledger.Notifier
}

func NewTipService(db *gorm.DB, recorder *ledger.SpendRecorder, settlement *Settlement, notifier ledger.Notifier) *TipService {
	return &TipService{DB: db, Recorder: recorder, Settlement: settlement, Notifier: notifier}
}

// SendTip records a $GRIND tip to a partner farmer. Fiat tips go through the
// payment provider on the front-end and never reach this service.
func (s *TipService) SendTip(c *fiber.Ctx) error {
	address := c.Locals("wallet_address").(string)

	var req struct {
		Farmer   string `json:"farmer"`
		Amount   string `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Farmer == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please pick a farmer to tip"})
	}
	if req.Currency != "" && !strings.EqualFold(req.Currency, "GRIND") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only $GRIND tips are supported here"})
	}

	amount, ok := parseSpendAmount(req.Amount)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please enter a valid tip amount"})
	}

	balance, err := s.Recorder.Balance(address)
	if err != nil {
		log.Printf("❌ Failed to read balance for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read balance"})
	}
	if balance < amount {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("You need at least %s $GRIND to send this tip", req.Amount),
		})
	}

	if err := s.Settlement.Settle(address, amount); err != nil {
		log.Printf("❌ Tip transfer failed for %s: %v", address, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Transaction failed, please try again later"})
	}

	if err := s.Recorder.RecordSpend(address, amount, ledger.ScopeTip); err != nil {
		log.Printf("❌ Failed to record tip spend for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record tip, please try again"})
	}

	tip := models.Tip{
		ID:            uuid.NewString(),
		WalletAddress: address,
		Farmer:        req.Farmer,
		Amount:        amount,
		Currency:      "GRIND",
	}
	if err := s.DB.Create(&tip).Error; err != nil {
		log.Printf("❌ Failed to write tip record for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Tip recorded but receipt failed, contact support"})
	}

	s.Notifier.Notify(ledger.Notification{
		Title:   "Tip Sent! ☕",
		Body:    fmt.Sprintf("You tipped %s $GRIND to %s", req.Amount, req.Farmer),
		Variant: "default",
	})

	return c.Status(fiber.StatusCreated).JSON(tip)
}
