package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopline/storefront/internal/domain"
)

func newCatalogFixture(t *testing.T) (*CatalogUseCase, *fakeCategoryRepo, *fakeProductRepo) {
	t.Helper()

	categoryRepo := newFakeCategoryRepo()
	productRepo := newFakeProductRepo()

	return NewCatalogUC(categoryRepo, productRepo, fakeLogger{}), categoryRepo, productRepo
}

func TestCatalogListEmpty(t *testing.T) {
	uc, _, _ := newCatalogFixture(t)
	ctx := context.Background()

	categories, err := uc.ListCategories(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != 0 {
		t.Errorf("expected no categories, got %d", len(categories))
	}

	products, err := uc.ListProducts(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected no products, got %d", len(products))
	}
}

func TestCatalogSearchCategories(t *testing.T) {
	uc, categoryRepo, _ := newCatalogFixture(t)
	ctx := context.Background()

	categoryRepo.Create(ctx, domain.NewCategory("Кухонная техника", "appliances"))
	categoryRepo.Create(ctx, domain.NewCategory("Мебель", "furniture"))

	found, err := uc.SearchCategories(ctx, "кухон")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 || found[0].Name != "Кухонная техника" {
		t.Errorf("unexpected result: %+v", found)
	}
}

func TestCatalogSearchNoMatchesReturnsEmptySlice(t *testing.T) {
	uc, categoryRepo, productRepo := newCatalogFixture(t)
	ctx := context.Background()

	categoryRepo.Create(ctx, domain.NewCategory("Мебель", "furniture"))
	productRepo.Create(ctx, domain.NewProduct("Стол", 500000, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 3, 1))

	categories, err := uc.SearchCategories(ctx, "нет такого")
	if err != nil {
		t.Fatalf("search must not fail on no matches: %v", err)
	}
	if categories == nil || len(categories) != 0 {
		t.Errorf("expected empty slice, got %#v", categories)
	}

	products, err := uc.SearchProducts(ctx, "нет такого")
	if err != nil {
		t.Fatalf("search must not fail on no matches: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("expected empty slice, got %#v", products)
	}
}

func TestCatalogSearchTrimsQuery(t *testing.T) {
	uc, _, productRepo := newCatalogFixture(t)
	ctx := context.Background()

	productRepo.Create(ctx, domain.NewProduct("Чайник", 59999, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 10, 1))

	found, err := uc.SearchProducts(ctx, "  чайник  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found) != 1 {
		t.Errorf("expected 1 product, got %d", len(found))
	}
}
