package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"grindspace-cafe/handlers"
	"grindspace-cafe/ledger"
	"grindspace-cafe/middleware"
	"grindspace-cafe/models"
	"grindspace-cafe/services"
	"grindspace-cafe/storage"
	"grindspace-cafe/utils"
	"grindspace-cafe/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 1 * 1024 * 1024, // ledger requests are small JSON payloads
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Service-Token, X-Wallet-Address",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if utils.R2Enabled() {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client:", err)
		}
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.KVEntry{},
		&models.ShopItem{},
		&models.Purchase{},
		&models.Tip{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	store := storage.NewGormKV(db)
	notifier := services.NewNotifierFromEnv()

	referrals := ledger.NewReferralLedger(store, notifier, os.Getenv("APP_ORIGIN"))
	recorder := ledger.NewSpendRecorder(store, notifier)
	board := ledger.NewBurnLeaderboard(store)

	// Simulated settlement stands in for the on-chain transfer path; the
	// front-end waits it out the same way it waited on wallet confirmations.
	settlement := services.NewSimulatedSettlement(simulatedTxDelay())

	sessionService := services.NewSessionService(store, referrals, recorder)
	referralService := services.NewReferralService(referrals)
	burnService := services.NewBurnService(recorder, referrals, board, settlement, notifier)
	readingService := services.NewReadingService(recorder, settlement, notifier)
	shopService := services.NewShopService(db, recorder, settlement, notifier)
	tipService := services.NewTipService(db, recorder, settlement, notifier)
	leaderboardService := services.NewLeaderboardService(board, recorder)

	if err := shopService.SeedItems(); err != nil {
		log.Fatal("failed to seed shop items:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Optional: mirror on-chain balances when a wallet service is configured.
	if os.Getenv("BALANCE_SYNC_URL") != "" {
		balanceSyncClient := workers.NewBalanceSyncClient(store)
		go workers.PollBalances(ctx, balanceSyncClient, 10*time.Second)
		log.Println("✅ Balance polling running (every 10s)")
	}

	leaderboardService.StartLeaderboardScheduler(store)

	handlers.SetupLedgerRoutes(app, sessionService, referralService, burnService, readingService, leaderboardService)
	handlers.SetupShopRoutes(app, shopService, tipService)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Leaderboard reconciliation scheduler running")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}

// simulatedTxDelay reads the fake confirmation time, defaulting to the 1s the
// front-end always used.
func simulatedTxDelay() time.Duration {
	raw := os.Getenv("SIMULATED_TX_DELAY")
	if raw == "" {
		return 1 * time.Second
	}
	delay, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("⚠️  Invalid SIMULATED_TX_DELAY %q, using 1s", raw)
		return 1 * time.Second
	}
	return delay
}
