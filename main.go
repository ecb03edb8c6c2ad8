package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"game-tournament-system/handlers"
	"game-tournament-system/middleware"
	"game-tournament-system/models"
	"game-tournament-system/services"
	"game-tournament-system/utils"
	"game-tournament-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // covers the cover-art upload
	})

	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		log.Println("⚠️  ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOrigins = "http://localhost:3000"
	}
	origins := strings.Split(allowedOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Requested-With",
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	if utils.R2Configured() {
		if err := utils.InitR2(); err != nil {
			log.Fatal("failed to initialize R2 client: ", err)
		}
	} else {
		log.Println("⚠️  R2 not configured — cover uploads disabled")
	}

	if strings.EqualFold(os.Getenv("SEED_DEMO_DATA"), "true") {
		if err := services.SeedDemoData(db); err != nil {
			log.Fatal("failed to seed demo data: ", err)
		}
	}

	gameService := services.NewGameService(db)
	playerService := services.NewPlayerService(db)
	developerService := services.NewDeveloperService(db)
	tournamentService := services.NewTournamentService(db)

	tournamentService.StartCompletionScheduler()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auditor := workers.NewReferenceAuditor(db)
	go auditor.Poll(ctx, 10*time.Minute)

	handlers.SetupGameRoutes(app, gameService)
	handlers.SetupPlayerRoutes(app, playerService)
	handlers.SetupDeveloperRoutes(app, developerService)
	handlers.SetupTournamentRoutes(app, tournamentService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Tournament completion scheduler running (hourly)")
	log.Println("✅ Dangling-reference auditor running (every 10m)")

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}
