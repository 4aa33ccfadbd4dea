package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	categoryrepo "storefront/internal/repository/category"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	subcategoryrepo "storefront/internal/repository/subcategory"
	cartsvc "storefront/internal/service/cart"
	categorysvc "storefront/internal/service/category"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
	subcategorysvc "storefront/internal/service/subcategory"
	"storefront/internal/storefront"
)

func main() {
	config.LoadDotEnv()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	sf, err := storefront.Load(cfg)
	if err != nil {
		logger.Fatalf("load storefront config: %v", err)
	}

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	categoryRepo := categoryrepo.NewPostgres(dbpool, logger)
	subcategoryRepo := subcategoryrepo.NewPostgres(dbpool, logger)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	orderService := ordersvc.New(orderRepo, productRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CategorySvc:    categorysvc.New(categoryRepo),
		SubcategorySvc: subcategorysvc.New(subcategoryRepo, categoryRepo),
		ProductSvc:     productsvc.New(productRepo, categoryRepo, subcategoryRepo),
		OrderSvc:       orderService,
		CartSvc:        cartsvc.New(productRepo, orderService, sf.Pricing()),
		Storefront:     sf,
		CORSOrigins:    cfg.CORSOrigins,
		AdminJWTSecret: cfg.AdminJWTSecret,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}
	if cfg.AdminJWTSecret == "" {
		logger.Printf("ADMIN_JWT_SECRET not set; catalog writes are unauthenticated")
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
