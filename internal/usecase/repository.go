package usecase

import (
	"context"

	"github.com/shopline/storefront/internal/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	Search(ctx context.Context, query string) ([]domain.Category, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context) ([]ProductInfo, error)
	Search(ctx context.Context, query string) ([]ProductInfo, error)
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
}

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
}

// SessionRepository — состояние сессии посетителя: корзина и привязка администратора.
type SessionRepository interface {
	GetCart(ctx context.Context, sessionID string) ([]domain.CartItem, error)
	SaveCart(ctx context.Context, sessionID string, items []domain.CartItem) error
	AdminID(ctx context.Context, sessionID string) (int64, error)
	BindAdmin(ctx context.Context, sessionID string, adminID int64) error
	UnbindAdmin(ctx context.Context, sessionID string) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}
