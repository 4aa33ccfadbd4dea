package subcategory

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
)

const (
	menID     = "0b7a8c4e-1111-4a5b-9c1d-2e3f4a5b6c7d"
	womenID   = "0b7a8c4e-2222-4a5b-9c1d-2e3f4a5b6c7d"
	missingID = "0b7a8c4e-9999-4a5b-9c1d-2e3f4a5b6c7d"
	jeansID   = "5d6e7f80-3333-4a5b-9c1d-2e3f4a5b6c7d"
)

type stubCategories struct {
	err error
}

func (s stubCategories) GetByID(_ context.Context, id string) (*domain.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	if id == menID || id == womenID {
		return &domain.Category{ID: id}, nil
	}
	return nil, domain.ErrNotFound
}

type memoryRepo struct {
	items   map[string]domain.Subcategory
	created int
	listArg string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: map[string]domain.Subcategory{
		jeansID: {ID: jeansID, Name: "Jeans", CategoryID: menID},
	}}
}

func (r *memoryRepo) List(_ context.Context, categoryID string) ([]domain.Subcategory, error) {
	r.listArg = categoryID
	out := []domain.Subcategory{}
	for _, s := range r.items {
		if categoryID == "" || s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.Subcategory, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *memoryRepo) GetByName(_ context.Context, categoryID, name string) (*domain.Subcategory, error) {
	for _, s := range r.items {
		if s.CategoryID == categoryID && s.Name == name {
			clone := s
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryRepo) Create(_ context.Context, s domain.Subcategory) (*domain.Subcategory, error) {
	r.created++
	s.ID = "sub-" + s.Name
	r.items[s.ID] = s
	return &s, nil
}

func (r *memoryRepo) Update(_ context.Context, id string, patch domain.SubcategoryPatch) (*domain.Subcategory, error) {
	s, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.CategoryID != nil {
		s.CategoryID = *patch.CategoryID
	}
	if patch.Description != nil {
		s.Description = *patch.Description
	}
	r.items[id] = s
	return &s, nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func TestCreateRequiresExistingCategory(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, stubCategories{})

	_, err := svc.Create(context.Background(), CreateInput{Name: "Shorts", CategoryID: missingID})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Fields["categoryId"] != "category does not exist" {
		t.Fatalf("expected categoryId validation error, got %v", err)
	}
	if repo.created != 0 {
		t.Fatalf("repository must not be called on validation failure")
	}

	created, err := svc.Create(context.Background(), CreateInput{Name: " Shorts ", CategoryID: menID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Shorts" || created.CategoryID != menID {
		t.Fatalf("unexpected subcategory %+v", created)
	}
}

func TestCreateReportsAllFields(t *testing.T) {
	svc := New(newMemoryRepo(), stubCategories{})
	_, err := svc.Create(context.Background(), CreateInput{CategoryID: "nope"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !verr.Has("name") || verr.Fields["categoryId"] != "must be a valid id" {
		t.Fatalf("unexpected fields %+v", verr.Fields)
	}
}

func TestCreatePropagatesRepositoryFailure(t *testing.T) {
	boom := errors.New("connection reset")
	svc := New(newMemoryRepo(), stubCategories{err: boom})
	if _, err := svc.Create(context.Background(), CreateInput{Name: "Shorts", CategoryID: menID}); !errors.Is(err, boom) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestUpdateMovesToExistingCategoryOnly(t *testing.T) {
	svc := New(newMemoryRepo(), stubCategories{})

	missing := missingID
	if _, err := svc.Update(context.Background(), jeansID, UpdateInput{CategoryID: &missing}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	women := womenID
	moved, err := svc.Update(context.Background(), jeansID, UpdateInput{CategoryID: &women})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if moved.CategoryID != womenID || moved.Name != "Jeans" {
		t.Fatalf("unexpected subcategory %+v", moved)
	}
}

func TestListIgnoresMalformedCategoryFilter(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo, stubCategories{})

	list, err := svc.List(context.Background(), "garbage")
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %+v %v", list, err)
	}

	list, err = svc.List(context.Background(), menID)
	if err != nil || len(list) != 1 || repo.listArg != menID {
		t.Fatalf("unexpected list %+v %v", list, err)
	}
}
