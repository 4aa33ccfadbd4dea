package httpserver

import (
	"context"
	"io"
	"log"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
	categorysvc "storefront/internal/service/category"
	ordersvc "storefront/internal/service/order"
	productsvc "storefront/internal/service/product"
	subcategorysvc "storefront/internal/service/subcategory"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubCategoryService struct {
	categories []domain.Category
	category   *domain.Category
	created    categorysvc.CreateInput
	err        error
}

func (s *stubCategoryService) List(_ context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

func (s *stubCategoryService) Get(_ context.Context, _ string) (*domain.Category, error) {
	return s.category, s.err
}

func (s *stubCategoryService) Create(_ context.Context, in categorysvc.CreateInput) (*domain.Category, error) {
	s.created = in
	return s.category, s.err
}

func (s *stubCategoryService) Update(_ context.Context, _ string, _ categorysvc.UpdateInput) (*domain.Category, error) {
	return s.category, s.err
}

func (s *stubCategoryService) Delete(_ context.Context, _ string) error {
	return s.err
}

type stubSubcategoryService struct {
	subcategories []domain.Subcategory
	categoryID    string
	err           error
}

func (s *stubSubcategoryService) List(_ context.Context, categoryID string) ([]domain.Subcategory, error) {
	s.categoryID = categoryID
	return s.subcategories, s.err
}

func (s *stubSubcategoryService) Get(_ context.Context, _ string) (*domain.Subcategory, error) {
	return nil, s.err
}

func (s *stubSubcategoryService) Create(_ context.Context, _ subcategorysvc.CreateInput) (*domain.Subcategory, error) {
	return &domain.Subcategory{}, s.err
}

func (s *stubSubcategoryService) Update(_ context.Context, _ string, _ subcategorysvc.UpdateInput) (*domain.Subcategory, error) {
	return &domain.Subcategory{}, s.err
}

func (s *stubSubcategoryService) Delete(_ context.Context, _ string) error {
	return s.err
}

type stubProductService struct {
	products []domain.Product
	product  *domain.Product
	filter   domain.ProductFilter
	updated  productsvc.UpdateInput
	query    catalog.Query
	page     int
	pageSize int
	err      error
}

func (s *stubProductService) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	s.filter = filter
	return s.products, s.err
}

func (s *stubProductService) Get(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) Create(_ context.Context, _ productsvc.CreateInput) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) Update(_ context.Context, _ string, in productsvc.UpdateInput) (*domain.Product, error) {
	s.updated = in
	return s.product, s.err
}

func (s *stubProductService) Delete(_ context.Context, _ string) error {
	return s.err
}

func (s *stubProductService) Browse(_ context.Context, q catalog.Query, page, pageSize int) (catalog.Page, error) {
	s.query, s.page, s.pageSize = q, page, pageSize
	return catalog.Page{Page: page, PageSize: pageSize}, s.err
}

type stubOrderService struct {
	order *domain.Order
	item  *domain.OrderItem
	err   error
}

func (s *stubOrderService) List(_ context.Context) ([]domain.Order, error) {
	return nil, s.err
}

func (s *stubOrderService) Get(_ context.Context, _ string) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) Create(_ context.Context, _ ordersvc.CreateInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) Update(_ context.Context, _ string, _ ordersvc.UpdateInput) (*domain.Order, error) {
	return s.order, s.err
}

func (s *stubOrderService) ListItems(_ context.Context, _ string) ([]domain.OrderItem, error) {
	return nil, s.err
}

func (s *stubOrderService) GetItem(_ context.Context, _, _ string) (*domain.OrderItem, error) {
	return s.item, s.err
}

func (s *stubOrderService) CreateItem(_ context.Context, _ string, _ ordersvc.ItemInput) (*domain.OrderItem, error) {
	return s.item, s.err
}

func (s *stubOrderService) UpdateItem(_ context.Context, _, _ string, _ ordersvc.ItemUpdateInput) (*domain.OrderItem, error) {
	return s.item, s.err
}

type stubCartService struct {
	quote *cartsvc.Quote
	order *domain.Order
	err   error
}

func (s *stubCartService) Quote(_ context.Context, _ cartsvc.QuoteInput) (*cartsvc.Quote, error) {
	return s.quote, s.err
}

func (s *stubCartService) Checkout(_ context.Context, _ cartsvc.CheckoutInput) (*domain.Order, error) {
	return s.order, s.err
}

func stubDeps() Deps {
	return Deps{
		CategorySvc:    &stubCategoryService{},
		SubcategorySvc: &stubSubcategoryService{},
		ProductSvc:     &stubProductService{},
		OrderSvc:       &stubOrderService{},
		CartSvc:        &stubCartService{},
	}
}
