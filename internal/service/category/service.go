package category

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository/category"
	"storefront/internal/validate"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

type UpdateInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Category, error) {
	if !validate.ID(id) {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Category, error) {
	validate.Trim(&in.Name)
	validate.Trim(&in.Description)
	if err := validate.Struct(in).Err(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, domain.Category{Name: in.Name, Description: in.Description})
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Category, error) {
	if !validate.ID(id) {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		validate.Trim(in.Name)
	}
	if in.Description != nil {
		validate.Trim(in.Description)
	}
	verr := validate.Struct(in)
	if in.Name != nil && *in.Name == "" {
		verr.Add("name", "must not be empty")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, domain.CategoryPatch{Name: in.Name, Description: in.Description})
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if !validate.ID(id) {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
