package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	categorysvc "storefront/internal/service/category"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
	subcategorysvc "storefront/internal/service/subcategory"
	"storefront/internal/storefront"
)

type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, in categorysvc.CreateInput) (*domain.Category, error)
	Update(ctx context.Context, id string, in categorysvc.UpdateInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type subcategoryService interface {
	List(ctx context.Context, categoryID string) ([]domain.Subcategory, error)
	Get(ctx context.Context, id string) (*domain.Subcategory, error)
	Create(ctx context.Context, in subcategorysvc.CreateInput) (*domain.Subcategory, error)
	Update(ctx context.Context, id string, in subcategorysvc.UpdateInput) (*domain.Subcategory, error)
	Delete(ctx context.Context, id string) error
}

type productService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in productsvc.CreateInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in productsvc.UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Browse(ctx context.Context, q catalog.Query, page, pageSize int) (catalog.Page, error)
}

type orderService interface {
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	Create(ctx context.Context, in ordersvc.CreateInput) (*domain.Order, error)
	Update(ctx context.Context, id string, in ordersvc.UpdateInput) (*domain.Order, error)
	ListItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)
	GetItem(ctx context.Context, orderID, itemID string) (*domain.OrderItem, error)
	CreateItem(ctx context.Context, orderID string, in ordersvc.ItemInput) (*domain.OrderItem, error)
	UpdateItem(ctx context.Context, orderID, itemID string, in ordersvc.ItemUpdateInput) (*domain.OrderItem, error)
}

type cartService interface {
	Quote(ctx context.Context, in cartsvc.QuoteInput) (*cartsvc.Quote, error)
	Checkout(ctx context.Context, in cartsvc.CheckoutInput) (*domain.Order, error)
}

// Deps carries the services and settings the router is built from.
type Deps struct {
	CategorySvc    categoryService
	SubcategorySvc subcategoryService
	ProductSvc     productService
	OrderSvc       orderService
	CartSvc        cartService
	Storefront     *storefront.Config
	CORSOrigins    []string
	// AdminJWTSecret enables bearer-token checks on catalog writes when set.
	AdminJWTSecret string
}

func (d Deps) validate() error {
	switch {
	case d.CategorySvc == nil:
		return errors.New("category service is required")
	case d.SubcategorySvc == nil:
		return errors.New("subcategory service is required")
	case d.ProductSvc == nil:
		return errors.New("product service is required")
	case d.OrderSvc == nil:
		return errors.New("order service is required")
	case d.CartSvc == nil:
		return errors.New("cart service is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if deps.Storefront == nil {
		deps.Storefront = storefront.Default()
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{logger: logger, deps: deps}
	admin := adminMiddleware(deps.AdminJWTSecret)

	api := router.Group("/api")

	api.GET("/categories", h.listCategories)
	api.GET("/categories/:id", h.getCategory)
	api.POST("/categories", admin, h.createCategory)
	api.PUT("/categories/:id", admin, h.updateCategory)
	api.DELETE("/categories/:id", admin, h.deleteCategory)

	api.GET("/subcategories", h.listSubcategories)
	api.GET("/subcategories/:id", h.getSubcategory)
	api.POST("/subcategories", admin, h.createSubcategory)
	api.PUT("/subcategories/:id", admin, h.updateSubcategory)
	api.DELETE("/subcategories/:id", admin, h.deleteSubcategory)

	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)
	api.POST("/products", admin, h.createProduct)
	api.PUT("/products/:id", admin, h.updateProduct)
	api.DELETE("/products/:id", admin, h.deleteProduct)

	api.GET("/orders", h.listOrders)
	api.GET("/orders/:id", h.getOrder)
	api.POST("/orders", h.createOrder)
	api.PUT("/orders/:id", admin, h.updateOrder)
	api.GET("/orders/:id/items", h.listOrderItems)
	api.POST("/orders/:id/items", h.createOrderItem)
	api.GET("/orders/:id/items/:itemId", h.getOrderItem)
	api.PUT("/orders/:id/items/:itemId", admin, h.updateOrderItem)

	api.GET("/catalog", h.browseCatalog)
	api.GET("/storefront", h.storefrontSettings)
	api.POST("/cart/quote", h.quoteCart)
	api.POST("/cart/checkout", h.checkout)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

type handlers struct {
	logger *log.Logger
	deps   Deps
}
