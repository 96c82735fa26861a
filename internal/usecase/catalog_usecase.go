package usecase

import (
	"context"
	"strings"

	"github.com/shopline/storefront/internal/domain"
	"github.com/shopline/storefront/pkg/e"
	"github.com/shopline/storefront/pkg/logger"
)

// CatalogUseCase реализует read-only операции каталога для витрины.
type CatalogUseCase struct {
	categoryRepo CategoryRepository
	productRepo  ProductRepository
	logger       logger.Logger
}

func NewCatalogUC(categoryRepo CategoryRepository, productRepo ProductRepository, logger logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "CatalogUseCase.ListCategories"

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

func (c *CatalogUseCase) ListProducts(ctx context.Context) ([]ProductInfo, error) {
	const op = "CatalogUseCase.ListProducts"

	products, err := c.productRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}

// SearchCategories ищет категории по подстроке имени без учёта регистра.
// Пустой результат — не ошибка.
func (c *CatalogUseCase) SearchCategories(ctx context.Context, query string) ([]domain.Category, error) {
	const op = "CatalogUseCase.SearchCategories"

	categories, err := c.categoryRepo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

// SearchProducts ищет товары по подстроке имени товара ИЛИ имени его категории.
func (c *CatalogUseCase) SearchProducts(ctx context.Context, query string) ([]ProductInfo, error) {
	const op = "CatalogUseCase.SearchProducts"

	products, err := c.productRepo.Search(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return products, nil
}
