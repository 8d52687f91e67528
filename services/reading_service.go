// services/reading_service.go
package services

import (
	"fmt"
	"log"
	"math/rand"
	"strconv"

	"grindspace-cafe/ledger"
	"grindspace-cafe/models"

	"github.com/gofiber/fiber/v2"
)

// ReadingCost is what Beanjahmon charges for one coffee-bean reading.
const ReadingCost = 4.20

type ReadingService struct {
	Recorder   *ledger.SpendRecorder
	Settlement *Settlement
	Notifier   ledger.Notifier
}

func NewReadingService(recorder *ledger.SpendRecorder, settlement *Settlement, notifier ledger.Notifier) *ReadingService {
	return &ReadingService{Recorder: recorder, Settlement: settlement, Notifier: notifier}
}

// GetReading charges the fixed reading cost and draws a random fortune.
func (s *ReadingService) GetReading(c *fiber.Ctx) error {
	address := c.Locals("wallet_address").(string)

	balance, err := s.Recorder.Balance(address)
	if err != nil {
		log.Printf("❌ Failed to read balance for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read balance"})
	}
	if balance < ReadingCost {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("You need at least %.2f $GRIND to get a reading", ReadingCost),
		})
	}

	if err := s.Settlement.Settle(address, ReadingCost); err != nil {
		log.Printf("❌ Reading transfer failed for %s: %v", address, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Transaction failed, please try again later"})
	}

	if err := s.Recorder.RecordSpend(address, ReadingCost, ledger.ScopeReading); err != nil {
		log.Printf("❌ Failed to record reading spend for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record reading, please try again"})
	}

	s.Notifier.Notify(ledger.Notification{
		Title:   "Reading Initiated! ✨",
		Body:    fmt.Sprintf("You spent %.2f $GRIND tokens for a mystical reading", ReadingCost),
		Variant: "default",
	})

	fortune := models.CoffeeReadings[rand.Intn(len(models.CoffeeReadings))]
	newBalance, err := s.Recorder.Balance(address)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read balance"})
	}

	return c.JSON(fiber.Map{
		"reading": fortune,
		"balance": strconv.FormatFloat(newBalance, 'f', 2, 64),
	})
}
