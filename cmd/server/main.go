package main

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/zokirzonovbek1-art/school-food-system/internal/bootstrap"
	"github.com/zokirzonovbek1-art/school-food-system/internal/config"
	"github.com/zokirzonovbek1-art/school-food-system/internal/server"
	"github.com/zokirzonovbek1-art/school-food-system/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedDemoUsers(db); err != nil {
			log.Fatalf("failed to seed demo users: %v", err)
		}
	}

	// Redis is optional: without it the live notification stream is off and
	// clients poll the REST endpoint instead.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	}

	srv := server.NewServer(cfg, db, redisClient)
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
