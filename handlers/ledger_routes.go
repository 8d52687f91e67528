// handlers/ledger_routes.go
package handlers

import (
	"grindspace-cafe/middleware"
	"grindspace-cafe/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLedgerRoutes(
	app *fiber.App,
	sessionService *services.SessionService,
	referralService *services.ReferralService,
	burnService *services.BurnService,
	readingService *services.ReadingService,
	leaderboardService *services.LeaderboardService,
) {
	// 🔓 Public routes — *no wallet context*, but **still require Gateway auth**
	app.Get("/leaderboard", leaderboardService.GetLeaderboard)

	// 🔐 Secured routes — require a connected wallet, enforced via middleware
	secured := app.Group("/", middleware.WalletContextMiddleware())

	secured.Post("/session/connect", sessionService.Connect)
	secured.Post("/session/disconnect", sessionService.Disconnect)
	secured.Get("/balance", sessionService.GetBalance)

	secured.Get("/referral", referralService.GetReferralSummary)
	secured.Post("/referral/claim", referralService.ClaimReward)

	secured.Post("/burn", burnService.Burn)
	secured.Get("/burn/stats", burnService.GetBurnStats)

	secured.Post("/reading", readingService.GetReading)
}
