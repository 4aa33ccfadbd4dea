package subcategory

import (
	"context"
	"errors"

	"storefront/internal/domain"
	"storefront/internal/repository/subcategory"
	"storefront/internal/validate"
)

type categoryRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Category, error)
}

type Service struct {
	repo       subcategory.Repository
	categories categoryRepo
}

func New(repo subcategory.Repository, categories categoryRepo) *Service {
	return &Service{repo: repo, categories: categories}
}

type CreateInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	CategoryID  string `json:"categoryId" validate:"required,uuid"`
	Description string `json:"description" validate:"max=2000"`
}

type UpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	CategoryID  *string `json:"categoryId" validate:"omitempty,uuid"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// List returns all subcategories, or those of categoryID when non-empty. An
// unparsable categoryID matches nothing.
func (s *Service) List(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	if categoryID != "" && !validate.ID(categoryID) {
		return []domain.Subcategory{}, nil
	}
	return s.repo.List(ctx, categoryID)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Subcategory, error) {
	if !validate.ID(id) {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Subcategory, error) {
	validate.Trim(&in.Name)
	validate.Trim(&in.CategoryID)
	validate.Trim(&in.Description)
	verr := validate.Struct(in)
	if !verr.Has("categoryId") {
		if err := s.checkCategory(ctx, in.CategoryID, verr); err != nil {
			return nil, err
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Subcategory{
		Name:        in.Name,
		CategoryID:  in.CategoryID,
		Description: in.Description,
	})
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Subcategory, error) {
	if !validate.ID(id) {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		validate.Trim(in.Name)
	}
	if in.CategoryID != nil {
		validate.Trim(in.CategoryID)
	}
	verr := validate.Struct(in)
	if in.Name != nil && *in.Name == "" {
		verr.Add("name", "must not be empty")
	}
	if in.CategoryID != nil && !verr.Has("categoryId") {
		if err := s.checkCategory(ctx, *in.CategoryID, verr); err != nil {
			return nil, err
		}
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, domain.SubcategoryPatch{
		Name:        in.Name,
		CategoryID:  in.CategoryID,
		Description: in.Description,
	})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if !validate.ID(id) {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// checkCategory records a field error when the category is missing and returns
// only unexpected repository failures.
func (s *Service) checkCategory(ctx context.Context, id string, verr *domain.ValidationError) error {
	if _, err := s.categories.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			verr.Add("categoryId", "category does not exist")
			return nil
		}
		return err
	}
	return nil
}
