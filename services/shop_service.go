// services/shop_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"grindspace-cafe/ledger"
	"grindspace-cafe/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShopService struct {
	DB         *gorm.DB
	Recorder   *ledger.SpendRecorder
	Settlement *Settlement
	Notifier   ledger.Notifier
}

func NewShopService(db *gorm.DB, recorder *ledger.SpendRecorder, settlement *Settlement, notifier ledger.Notifier) *ShopService {
	return &ShopService{DB: db, Recorder: recorder, Settlement: settlement, Notifier: notifier}
}

// defaultShopItems is the launch catalog.
var defaultShopItems = []models.ShopItem{
	{Name: "Exclusive Coffee Blend", Description: "Limited edition Ethiopian blend, only available with $GRIND", Price: 5, ImageURL: "/ethiopian-coffee-harvest.png"},
	{Name: "Barista Masterclass", Description: "Virtual coffee brewing masterclass with award-winning baristas", Price: 10, ImageURL: "/rich-dark-roast.png"},
	{Name: "Premium Coffee NFT", Description: "Rare digital collectible with special perks in the Grindspace ecosystem", Price: 20, ImageURL: "/emerald-hills-brew.png"},
	{Name: "Coffee Farm Tour", Description: "Virtual tour of partner coffee farms around the world", Price: 15, ImageURL: "/brazilian-coffee-harvest.png"},
}

// SeedItems upserts the launch catalog (idempotent across restarts).
func (s *ShopService) SeedItems() error {
	for _, item := range defaultShopItems {
		item.ID = uuid.NewString()
		item.Slug = slug.Make(item.Name)
		if err := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "price", "image_url", "updated_at"}),
		}).Create(&item).Error; err != nil {
			return fmt.Errorf("seed shop item %q: %w", item.Name, err)
		}
	}
	return nil
}

// GetItems lists the catalog (public — the marketing pages read it too).
func (s *ShopService) GetItems(c *fiber.Ctx) error {
	var items []models.ShopItem
	if err := s.DB.Order("price ASC").Find(&items).Error; err != nil {
		log.Printf("❌ DB error fetching shop items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch shop items"})
	}
	return c.JSON(items)
}

// PurchaseItem spends $GRIND on a catalog item and writes the receipt row.
func (s *ShopService) PurchaseItem(c *fiber.Ctx) error {
	address := c.Locals("wallet_address").(string)
	itemSlug := c.Params("slug")

	var item models.ShopItem
	if err := s.DB.First(&item, "slug = ?", itemSlug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shop item not found"})
		}
		log.Printf("❌ DB error fetching shop item %s: %v", itemSlug, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	balance, err := s.Recorder.Balance(address)
	if err != nil {
		log.Printf("❌ Failed to read balance for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read balance"})
	}
	if balance < item.Price {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("You need at least %s $GRIND to purchase this item", strconv.FormatFloat(item.Price, 'f', -1, 64)),
		})
	}

	if err := s.Settlement.Settle(address, item.Price); err != nil {
		log.Printf("❌ Purchase transfer failed for %s: %v", address, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Transaction failed, please try again later"})
	}

	if err := s.Recorder.RecordSpend(address, item.Price, ledger.ScopePurchase); err != nil {
		log.Printf("❌ Failed to record purchase spend for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record purchase, please try again"})
	}

	purchase := models.Purchase{
		ID:            uuid.NewString(),
		WalletAddress: address,
		ItemID:        item.ID,
		ItemName:      item.Name,
		Amount:        item.Price,
		Simulated:     s.Settlement.Transfer == nil,
	}
	if err := s.DB.Create(&purchase).Error; err != nil {
		// The spend already went through; the receipt is for fulfilment.
		log.Printf("❌ Failed to write purchase receipt for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Purchase recorded but receipt failed, contact support"})
	}

	s.Notifier.Notify(ledger.Notification{
		Title:   "Purchase successful! ✨",
		Body:    fmt.Sprintf("You've purchased %s. Check your email for details.", item.Name),
		Variant: "default",
	})

	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// GetPurchases lists the connected wallet's receipts, newest first.
func (s *ShopService) GetPurchases(c *fiber.Ctx) error {
	address := c.Locals("wallet_address").(string)

	var purchases []models.Purchase
	if err := s.DB.Where("wallet_address = ?", address).Order("created_at DESC").Find(&purchases).Error; err != nil {
		log.Printf("❌ DB error fetching purchases for %s: %v", address, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch purchases"})
	}
	return c.JSON(purchases)
}
