package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Ravichalikanti/Retinal-Analysis/internal/config"
	"github.com/Ravichalikanti/Retinal-Analysis/internal/database"
	"github.com/Ravichalikanti/Retinal-Analysis/internal/repository"
	"github.com/Ravichalikanti/Retinal-Analysis/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)
	users := repository.NewUserRepository(db)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("failed to create upload dir: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName: "Retinal Analysis Backend",
		// Retinal scans run large; the default 4MiB body limit is too small.
		BodyLimit: 25 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	routes.Register(app, users, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
