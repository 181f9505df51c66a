package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/example/dentacademy/internal/config"
	"github.com/example/dentacademy/internal/database"
	"github.com/example/dentacademy/internal/routes"
	"github.com/example/dentacademy/internal/storage"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	var objectStore storage.ObjectStore
	if cfg.MinioEndpoint != "" {
		store, err := storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Printf("object storage unavailable, uploads disabled: %v", err)
		} else {
			objectStore = store
		}
	}

	app := fiber.New(fiber.Config{
		AppName: "DentAcademy Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, redisClient, objectStore)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
