package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/importer"
	categoryrepo "storefront/internal/repository/category"
	productrepo "storefront/internal/repository/product"
	subcategoryrepo "storefront/internal/repository/subcategory"
	productsvc "storefront/internal/service/product"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		filePath string
		dryRun   bool
	)
	cmd := &cobra.Command{
		Use:   "importer",
		Short: "Import products from a CSV file",
		Long: fmt.Sprintf("Import products from a CSV file with the columns:\n  %v\n"+
			"Missing categories and subcategories are created. Products that already exist in their subcategory are skipped.",
			importer.Columns),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), filePath, dryRun)
		},
	}
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "path to the product CSV file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and validate rows without writing")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func run(ctx context.Context, filePath string, dryRun bool) error {
	config.LoadDotEnv()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var deps importer.Deps
	if !dryRun {
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return fmt.Errorf("connect db: %w", err)
		}
		defer pool.Close()

		categories := categoryrepo.NewPostgres(pool, logger)
		subcategories := subcategoryrepo.NewPostgres(pool, logger)
		products := productrepo.NewPostgres(pool, logger)
		deps = importer.Deps{
			Categories:    categories,
			Subcategories: subcategories,
			Finder:        products,
			Products:      productsvc.New(products, categories, subcategories),
		}
	}

	start := time.Now()
	res, err := importer.NewCSVImporter(f, deps, logger).DryRun(dryRun).Run(ctx)
	if err != nil {
		return fmt.Errorf("import failed after %d products: %w", res.Imported, err)
	}

	logger.Printf("imported %d products (%d skipped, %d categories and %d subcategories created) in %s",
		res.Imported, res.Skipped, res.CreatedCategories, res.CreatedSubcategories, time.Since(start).Truncate(time.Millisecond))
	return nil
}
