package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/samurai100996/property-preview/config"
	"github.com/samurai100996/property-preview/handlers"
	"github.com/samurai100996/property-preview/routes"
	"github.com/samurai100996/property-preview/storage"
	"github.com/samurai100996/property-preview/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := config.ConnectDB(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.DisconnectDB()

	utils.InitRedis(cfg.RedisAddr, cfg.RedisPassword)

	if err := handlers.NewAuthController().EnsureAdminUser(context.Background()); err != nil {
		log.Printf("Failed to seed admin user: %v", err)
	}

	store, err := storage.NewDiskStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize blob store: %v", err)
	}

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Static("/uploads", cfg.UploadDir)

	routes.RegisterRoutes(e, store)

	log.Printf("Server starting on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
