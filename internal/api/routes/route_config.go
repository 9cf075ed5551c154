package routes

import (
	"Pantry-Backend/internal/api/handlers"
	"Pantry-Backend/internal/middleware"
	"Pantry-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	ProductHandler   handlers.ProductHandler
	InventoryHandler handlers.InventoryHandler
	ShoppingHandler  handlers.ShoppingHandler
	StockHandler     handlers.StockHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Stock()
	c.Products()
	c.Batches()
	c.ShoppingList()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Stock() {
	stock := c.App.Group("/api/v1/stock", c.Middleware.AuthMiddleware(c.JWTService))
	stock.Get("", c.StockHandler.GetStock)
	stock.Post("/refresh", c.StockHandler.RefreshStock)
}

func (c *Config) Products() {
	products := c.App.Group("/api/v1/products", c.Middleware.AuthMiddleware(c.JWTService))

	// Registry
	products.Post("", c.ProductHandler.CreateProduct)
	products.Get("", c.ProductHandler.GetProducts)
	products.Get("/:id", c.ProductHandler.GetProductDetails)
	products.Put("/:id", c.ProductHandler.UpdateProduct)
	products.Delete("/:id", c.ProductHandler.DeleteProduct)

	// Stock of one product
	products.Get("/:id/batches", c.InventoryHandler.GetBatches)
	products.Post("/:id/consume", c.InventoryHandler.Consume)
}

func (c *Config) Batches() {
	batches := c.App.Group("/api/v1/batches", c.Middleware.AuthMiddleware(c.JWTService))
	batches.Post("", c.InventoryHandler.AddBatch)
	batches.Post("/:id/move", c.InventoryHandler.MoveBatch)
	batches.Delete("/:id", c.InventoryHandler.DeleteBatch)
}

func (c *Config) ShoppingList() {
	list := c.App.Group("/api/v1/shopping-list", c.Middleware.AuthMiddleware(c.JWTService))
	list.Get("", c.ShoppingHandler.GetEntries)
	list.Post("", c.ShoppingHandler.AddEntry)
	list.Post("/from-suggestion/:productId", c.ShoppingHandler.AddFromSuggestion)
	list.Patch("/:id/status", c.ShoppingHandler.UpdateStatus)
	list.Delete("/:id", c.ShoppingHandler.DeleteEntry)
	list.Post("/:id/receive", c.InventoryHandler.ReceiveEntry)
}
