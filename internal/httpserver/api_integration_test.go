//go:build integration

package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/cart"
	"storefront/internal/dbtest"
	"storefront/internal/domain"
	categoryrepo "storefront/internal/repository/category"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	subcategoryrepo "storefront/internal/repository/subcategory"
	cartsvc "storefront/internal/service/cart"
	categorysvc "storefront/internal/service/category"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
	subcategorysvc "storefront/internal/service/subcategory"
)

func integrationRouter(t *testing.T) *gin.Engine {
	t.Helper()
	pool := dbtest.Pool(t)
	logger := logDiscard()

	categories := categoryrepo.NewPostgres(pool, logger)
	subcategories := subcategoryrepo.NewPostgres(pool, logger)
	products := productrepo.NewPostgres(pool, logger)
	orders := orderrepo.NewPostgres(pool, logger)

	orderSvc := ordersvc.New(orders, products)
	deps := Deps{
		CategorySvc:    categorysvc.New(categories),
		SubcategorySvc: subcategorysvc.New(subcategories, categories),
		ProductSvc:     productsvc.New(products, categories, subcategories),
		OrderSvc:       orderSvc,
		CartSvc:        cartsvc.New(products, orderSvc, cart.DefaultPricing),
	}
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logger, pool, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func mustCreate(t *testing.T, router *gin.Engine, path, body string, dst any) {
	t.Helper()
	rec := do(router, http.MethodPost, path, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST %s: expected 201, got %d body=%s", path, rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("POST %s: unmarshal: %v", path, err)
	}
}

func TestAPI_IntegrationCatalogToCheckout(t *testing.T) {
	router := integrationRouter(t)

	if rec := do(router, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Fatalf("readyz: expected 200, got %d", rec.Code)
	}

	var men domain.Category
	mustCreate(t, router, "/api/categories", `{"name":"Men"}`, &men)
	var shirts domain.Subcategory
	mustCreate(t, router, "/api/subcategories", fmt.Sprintf(`{"name":"Shirts","categoryId":%q}`, men.ID), &shirts)

	var tee, jacket domain.Product
	mustCreate(t, router, "/api/products", fmt.Sprintf(
		`{"name":"Basic Tee","description":"Cotton tee","price":40,"categoryId":%q,"subcategoryId":%q,"images":"[/a.jpg, /b.jpg]","sizes":["S","M"]}`,
		men.ID, shirts.ID), &tee)
	mustCreate(t, router, "/api/products", fmt.Sprintf(
		`{"name":"Denim Jacket","description":"Blue denim","price":90,"categoryId":%q,"subcategoryId":%q,"isNew":true}`,
		men.ID, shirts.ID), &jacket)

	if len(tee.Images) != 2 || tee.Images[0] != "/a.jpg" {
		t.Fatalf("legacy images not normalized: %v", tee.Images)
	}

	rec := do(router, http.MethodGet, "/api/catalog?category=New%20Arrivals", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("catalog: expected 200, got %d", rec.Code)
	}
	var page struct {
		TotalCount int `json:"totalCount"`
		Items      []struct {
			Product struct {
				Name string `json:"name"`
			} `json:"product"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("unmarshal catalog: %v", err)
	}
	if page.TotalCount != 1 {
		t.Fatalf("expected 1 new arrival, got %d body=%s", page.TotalCount, rec.Body.String())
	}

	rec = do(router, http.MethodPost, "/api/cart/quote", fmt.Sprintf(
		`{"items":[{"productId":%q,"size":"M","quantity":2},{"productId":%q,"size":"M","quantity":1}]}`, tee.ID, tee.ID))
	if rec.Code != http.StatusOK {
		t.Fatalf("quote: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var quote struct {
		Lines    []json.RawMessage `json:"lines"`
		Subtotal float64           `json:"subtotal"`
		Shipping float64           `json:"shipping"`
		Total    float64           `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &quote); err != nil {
		t.Fatalf("unmarshal quote: %v", err)
	}
	if len(quote.Lines) != 1 || quote.Subtotal != 120 || quote.Shipping != 0 || quote.Total != 120 {
		t.Fatalf("unexpected quote %+v", quote)
	}

	var order domain.Order
	mustCreate(t, router, "/api/cart/checkout", fmt.Sprintf(
		`{"customerEmail":"jane@example.com","customerName":"Jane","shippingAddress":{"street":"1 Main St","city":"Baku","zipCode":"1000","country":"AZ"},"items":[{"productId":%q,"size":"S","quantity":1}]}`,
		tee.ID), &order)
	if order.TotalAmount != 5000 || order.Status != domain.OrderPending {
		t.Fatalf("unexpected order %+v", order)
	}

	rec = do(router, http.MethodGet, "/api/orders/"+order.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get order: expected 200, got %d", rec.Code)
	}
	var fetched domain.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("unmarshal order: %v", err)
	}
	if len(fetched.Items) != 1 || fetched.Items[0].Price != 4000 {
		t.Fatalf("unexpected items %+v", fetched.Items)
	}

	if rec := do(router, http.MethodDelete, "/api/categories/"+men.ID, ""); rec.Code != http.StatusConflict {
		t.Fatalf("delete referenced category: expected 409, got %d", rec.Code)
	}
	for _, id := range []string{"not-a-uuid", "urn:uuid:" + tee.ID, "{" + tee.ID + "}"} {
		if rec := do(router, http.MethodGet, "/api/products/"+id, ""); rec.Code != http.StatusNotFound {
			t.Fatalf("GET /api/products/%s: expected 404, got %d", id, rec.Code)
		}
	}

	rec = do(router, http.MethodPost, "/api/cart/quote", fmt.Sprintf(
		`{"items":[{"productId":%q,"size":"M","quantity":9223372036854775807}]}`, tee.ID))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("oversized quantity: expected 400, got %d", rec.Code)
	}
}

func TestAPI_IntegrationDuplicateCategory(t *testing.T) {
	router := integrationRouter(t)

	var c domain.Category
	mustCreate(t, router, "/api/categories", `{"name":"Women"}`, &c)
	if rec := do(router, http.MethodPost, "/api/categories", `{"name":"Women"}`); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
