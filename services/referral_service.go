// services/referral_service.go
package services

import (
	"log"

	"grindspace-cafe/ledger"

	"github.com/gofiber/fiber/v2"
)

type ReferralService struct {
	Ledger *ledger.ReferralLedger
}

func NewReferralService(l *ledger.ReferralLedger) *ReferralService {
	return &ReferralService{Ledger: l}
}

// GetReferralSummary returns everything the dashboard's referral card shows:
// the shareable link, the stored referrer, the claim state, and earnings.
func (s *ReferralService) GetReferralSummary(c *fiber.Ctx) error {
	address := c.Locals("wallet_address").(string)

	referrer, err := s.Ledger.Referrer(address)
	if err != nil {
		log.Printf("❌ Failed to read referrer for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load referral data"})
	}
	rewarded, err := s.Ledger.HasRewarded(address)
	if err != nil {
		log.Printf("❌ Failed to read claim flag for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load referral data"})
	}
	earnings, err := s.Ledger.Earnings(address)
	if err != nil {
		log.Printf("❌ Failed to read earnings for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load referral data"})
	}

	return c.JSON(fiber.Map{
		"referral_link":   s.Ledger.ReferralLink(address),
		"referrer":        referrer,
		"has_rewarded":    rewarded,
		"earnings":        earnings,
		"total_referrals": earnings / ledger.RewardAmount,
	})
}

// ClaimReward fires the one-shot referral payout for the connected wallet.
// Business rejections (no referrer, already claimed) come back as 409 with no
// mutation; only storage trouble is a 500.
func (s *ReferralService) ClaimReward(c *fiber.Ctx) error {
	address := c.Locals("wallet_address").(string)

	ok, err := s.Ledger.ClaimReward(address)
	if err != nil {
		log.Printf("❌ Referral claim failed for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process referral reward, please try again"})
	}
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "No referral reward available"})
	}

	return c.JSON(fiber.Map{
		"message":       "Referral reward sent",
		"reward_amount": ledger.RewardAmount,
	})
}
