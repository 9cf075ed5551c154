package main

import (
	"Pantry-Backend/cmd/config"
	migration "Pantry-Backend/cmd/database/migrate"
	"Pantry-Backend/internal/utils"
	"flag"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "run database migrations and exit")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	if *migrateOnly {
		return
	}

	app, err := config.NewApp(db, config.AppOptions{
		JWTSecret:          utils.GetConfig("JWT_SECRET"),
		RateLimitPerSecond: utils.GetConfigInt("RATE_LIMIT_PER_SECOND"),
	})
	if err != nil {
		log.Fatalf("failed to create app: %v", err)
	}

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
