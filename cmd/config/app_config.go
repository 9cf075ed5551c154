package config

import (
	"Pantry-Backend/internal/api/handlers"
	"Pantry-Backend/internal/api/routes"
	"Pantry-Backend/internal/middleware"
	"Pantry-Backend/internal/notify"
	"Pantry-Backend/internal/utils"
	"Pantry-Backend/pkg/inventory"
	"Pantry-Backend/pkg/jwt"
	"Pantry-Backend/pkg/product"
	"Pantry-Backend/pkg/shopping"
	"Pantry-Backend/pkg/stock"
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

type AppOptions struct {
	// LogOutput receives the access log. Nil means ./logs/app.log.
	LogOutput          io.Writer
	JWTSecret          string
	RateLimitPerSecond int
	Now                func() time.Time
}

func NewApp(db *gorm.DB, opts AppOptions) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: opts.LogOutput == nil,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	output := opts.LogOutput
	if output == nil {
		err := os.MkdirAll("./logs", os.ModePerm)
		if err != nil {
			log.Fatalf("error creating logs directory: %v", err)
		}
		file, err := os.OpenFile(
			"./logs/app.log",
			os.O_RDWR|os.O_CREATE|os.O_APPEND,
			0666,
		)
		if err != nil {
			log.Fatalf("error opening file: %v", err)
		}
		output = file
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     output,
	}))

	if opts.RateLimitPerSecond > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        opts.RateLimitPerSecond,
			Expiration: 1 * time.Second,
		}))
	}

	// Repository
	productRepository := product.NewProductRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)
	stockRepository := stock.NewStockRepository(db)

	// Service
	hub := notify.NewHub()
	jwtService := jwt.NewJWTService(opts.JWTSecret)
	stockService := stock.NewStockService(stockRepository, opts.Now)
	productService := product.NewProductService(productRepository, hub)
	inventoryService := inventory.NewInventoryService(inventoryRepository, hub)
	shoppingService := shopping.NewShoppingService(shoppingRepository, productRepository, hub)
	hub.Subscribe(stockService.HandleChange)

	// Handler
	productHandler := handlers.NewProductHandler(productService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService, validator)
	stockHandler := handlers.NewStockHandler(stockService)

	// routes
	routesConfig := routes.Config{
		App:              app,
		ProductHandler:   productHandler,
		InventoryHandler: inventoryHandler,
		ShoppingHandler:  shoppingHandler,
		StockHandler:     stockHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
