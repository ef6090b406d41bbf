package main

import (
	"context"
	"log"
	"os"

	"fundraiser-store/internal/config"
	"fundraiser-store/internal/db"
	"fundraiser-store/internal/repository/product"
	"fundraiser-store/internal/seed"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := seed.Apply(ctx, product.NewPostgres(pool, logger)); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seeded %d products", len(seed.Catalog()))
}
