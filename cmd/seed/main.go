package main

import (
	"context"
	"log"
	"os"

	"storefront/internal/config"
	"storefront/internal/db"
	categoryrepo "storefront/internal/repository/category"
	productrepo "storefront/internal/repository/product"
	subcategoryrepo "storefront/internal/repository/subcategory"
	"storefront/internal/seed"
)

func main() {
	config.LoadDotEnv()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	stats, err := seed.Apply(ctx, seed.Stores{
		Categories:    categoryrepo.NewPostgres(pool, logger),
		Subcategories: subcategoryrepo.NewPostgres(pool, logger),
		Products:      productrepo.NewPostgres(pool, logger),
	}, logger)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied: %d categories, %d subcategories, %d products created",
		stats.Categories, stats.Subcategories, stats.Products)
}
