package product

import (
	"context"
	"errors"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
	"storefront/internal/validate"
)

type categoryRepo interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id string) (*domain.Category, error)
}

type subcategoryRepo interface {
	List(ctx context.Context, categoryID string) ([]domain.Subcategory, error)
	GetByID(ctx context.Context, id string) (*domain.Subcategory, error)
}

type Service struct {
	repo          productrepo.Repository
	categories    categoryRepo
	subcategories subcategoryRepo
}

func New(repo productrepo.Repository, categories categoryRepo, subcategories subcategoryRepo) *Service {
	return &Service{repo: repo, categories: categories, subcategories: subcategories}
}

// CreateInput accepts the legacy single "image" field alongside "images"; it
// becomes the first entry of the list.
type CreateInput struct {
	Name          string           `json:"name" validate:"required,max=200"`
	Description   string           `json:"description" validate:"required"`
	Price         *domain.Money    `json:"price" validate:"required,gte=0"`
	OriginalPrice *domain.Money    `json:"originalPrice" validate:"omitempty,gte=0"`
	CategoryID    string           `json:"categoryId" validate:"required,uuid"`
	SubcategoryID string           `json:"subcategoryId" validate:"required,uuid"`
	Image         string           `json:"image"`
	Images        domain.ImageList `json:"images"`
	Sizes         []string         `json:"sizes"`
	Colors        []string         `json:"colors"`
	Rating        float64          `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount   int              `json:"reviewCount" validate:"gte=0"`
	IsNew         bool             `json:"isNew"`
	OnSale        bool             `json:"onSale"`
	Stock         int              `json:"stock" validate:"gte=0"`
}

// UpdateInput is a merge patch: absent fields stay unchanged.
type UpdateInput struct {
	Name          *string           `json:"name" validate:"omitempty,min=1,max=200"`
	Description   *string           `json:"description" validate:"omitempty,min=1"`
	Price         *domain.Money     `json:"price" validate:"omitempty,gte=0"`
	OriginalPrice *domain.Money     `json:"originalPrice" validate:"omitempty,gte=0"`
	CategoryID    *string           `json:"categoryId" validate:"omitempty,uuid"`
	SubcategoryID *string           `json:"subcategoryId" validate:"omitempty,uuid"`
	Image         *string           `json:"image"`
	Images        *domain.ImageList `json:"images"`
	Sizes         *[]string         `json:"sizes"`
	Colors        *[]string         `json:"colors"`
	Rating        *float64          `json:"rating" validate:"omitempty,gte=0,lte=5"`
	ReviewCount   *int              `json:"reviewCount" validate:"omitempty,gte=0"`
	IsNew         *bool             `json:"isNew"`
	OnSale        *bool             `json:"onSale"`
	Stock         *int              `json:"stock" validate:"omitempty,gte=0"`
}

func (s *Service) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if (filter.CategoryID != "" && !validate.ID(filter.CategoryID)) ||
		(filter.SubcategoryID != "" && !validate.ID(filter.SubcategoryID)) {
		return []domain.Product{}, nil
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	if !validate.ID(id) {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	validate.Trim(&in.Name)
	validate.Trim(&in.Description)
	validate.Trim(&in.CategoryID)
	validate.Trim(&in.SubcategoryID)

	verr := validate.Struct(in)
	if !verr.Has("categoryId") && !verr.Has("subcategoryId") {
		if err := s.checkTaxonomy(ctx, in.CategoryID, in.SubcategoryID, verr); err != nil {
			return nil, err
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	images := in.Images
	if in.Image != "" {
		images = append(domain.ImageList{in.Image}, images...)
	}
	return s.repo.Create(ctx, domain.Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         *in.Price,
		OriginalPrice: in.OriginalPrice,
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		Images:        domain.NormalizeImages(images),
		Sizes:         domain.NormalizeSet(in.Sizes),
		Colors:        domain.NormalizeSet(in.Colors),
		Rating:        in.Rating,
		ReviewCount:   in.ReviewCount,
		IsNew:         in.IsNew,
		OnSale:        in.OnSale,
		Stock:         in.Stock,
	})
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error) {
	if !validate.ID(id) {
		return nil, domain.ErrNotFound
	}
	for _, p := range []*string{in.Name, in.Description, in.CategoryID, in.SubcategoryID} {
		if p != nil {
			validate.Trim(p)
		}
	}

	verr := validate.Struct(in)
	if in.Name != nil && *in.Name == "" {
		verr.Add("name", "must not be empty")
	}
	if in.Description != nil && *in.Description == "" {
		verr.Add("description", "must not be empty")
	}
	if (in.CategoryID != nil || in.SubcategoryID != nil) && !verr.Has("categoryId") && !verr.Has("subcategoryId") {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		categoryID, subcategoryID := current.CategoryID, current.SubcategoryID
		if in.CategoryID != nil {
			categoryID = *in.CategoryID
		}
		if in.SubcategoryID != nil {
			subcategoryID = *in.SubcategoryID
		}
		if err := s.checkTaxonomy(ctx, categoryID, subcategoryID, verr); err != nil {
			return nil, err
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	patch := domain.ProductPatch{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		Rating:        in.Rating,
		ReviewCount:   in.ReviewCount,
		IsNew:         in.IsNew,
		OnSale:        in.OnSale,
		Stock:         in.Stock,
	}
	if in.Images != nil || in.Image != nil {
		var images domain.ImageList
		if in.Image != nil {
			images = append(images, *in.Image)
		}
		if in.Images != nil {
			images = append(images, *in.Images...)
		}
		images = domain.NormalizeImages(images)
		patch.Images = &images
	}
	if in.Sizes != nil {
		sizes := domain.NormalizeSet(*in.Sizes)
		patch.Sizes = &sizes
	}
	if in.Colors != nil {
		colors := domain.NormalizeSet(*in.Colors)
		patch.Colors = &colors
	}
	if patch.Empty() {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if !validate.ID(id) {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// Browse joins every product with its category names and runs the catalog
// filter, sort and pagination over the result.
func (s *Service) Browse(ctx context.Context, q catalog.Query, page, pageSize int) (catalog.Page, error) {
	products, err := s.repo.List(ctx, domain.ProductFilter{})
	if err != nil {
		return catalog.Page{}, err
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return catalog.Page{}, err
	}
	subcategories, err := s.subcategories.List(ctx, "")
	if err != nil {
		return catalog.Page{}, err
	}
	return catalog.Select(catalog.Join(products, categories, subcategories), q, page, pageSize), nil
}

// checkTaxonomy verifies both references exist and that the subcategory
// belongs to the category. Missing rows become field errors.
func (s *Service) checkTaxonomy(ctx context.Context, categoryID, subcategoryID string, verr *domain.ValidationError) error {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		verr.Add("categoryId", "category does not exist")
	}
	sub, err := s.subcategories.GetByID(ctx, subcategoryID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		verr.Add("subcategoryId", "subcategory does not exist")
		return nil
	}
	if !verr.Has("categoryId") && sub.CategoryID != categoryID {
		verr.Add("subcategoryId", "subcategory does not belong to category")
	}
	return nil
}
