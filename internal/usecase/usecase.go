package usecase

import (
	"context"

	"github.com/shopline/storefront/internal/domain"
)

type CatalogUC interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListProducts(ctx context.Context) ([]ProductInfo, error)
	SearchCategories(ctx context.Context, query string) ([]domain.Category, error)
	SearchProducts(ctx context.Context, query string) ([]ProductInfo, error)
}

type CartUC interface {
	GetCart(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, sessionID string, productID, quantity int64) error
	RemoveItem(ctx context.Context, sessionID string, productID int64) error
}

type AdminUC interface {
	Authenticate(ctx context.Context, sessionID string, req *LoginReq) (*domain.Admin, error)
	Logout(ctx context.Context, sessionID string) error
	RequireAdmin(ctx context.Context, sessionID string) (int64, error)

	AddCategory(ctx context.Context, req *CategoryReq) (*domain.Category, error)
	EditCategory(ctx context.Context, id int64, req *CategoryReq) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	AddProduct(ctx context.Context, req *ProductReq) (*domain.Product, error)
	EditProduct(ctx context.Context, id int64, req *ProductReq) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}
