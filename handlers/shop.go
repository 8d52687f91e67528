// handlers/shop.go
package handlers

import (
	"grindspace-cafe/middleware"
	"grindspace-cafe/services"

	"github.com/gofiber/fiber/v2"
)

func SetupShopRoutes(app *fiber.App, shopService *services.ShopService, tipService *services.TipService) {
	// 🔓 Public catalog — marketing pages read it without a wallet
	app.Get("/shop/items", shopService.GetItems)

	// 🔐 Spending requires a connected wallet
	secured := app.Group("/", middleware.WalletContextMiddleware())

	secured.Post("/shop/items/:slug/purchase", shopService.PurchaseItem)
	secured.Get("/shop/purchases", shopService.GetPurchases)

	secured.Post("/tip", tipService.SendTip)
}
