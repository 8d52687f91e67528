// services/leaderboard_service.go
package services

import (
	"log"
	"strconv"

	"grindspace-cafe/ledger"

	"github.com/gofiber/fiber/v2"
)

type LeaderboardService struct {
	Board    *ledger.BurnLeaderboard
	Recorder *ledger.SpendRecorder
}

func NewLeaderboardService(board *ledger.BurnLeaderboard, recorder *ledger.SpendRecorder) *LeaderboardService {
	return &LeaderboardService{Board: board, Recorder: recorder}
}

// GetLeaderboard is public: the marketing pages render it without a wallet.
func (s *LeaderboardService) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := s.Board.Top()
	if err != nil {
		log.Printf("❌ Failed to read leaderboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch leaderboard"})
	}

	total, err := s.Recorder.TotalBurned()
	if err != nil {
		log.Printf("❌ Failed to read global burned total: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch burn totals"})
	}

	return c.JSON(fiber.Map{
		"entries":      entries,
		"total_burned": strconv.FormatFloat(total, 'f', -1, 64),
	})
}
