package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/shopline/storefront/internal/domain"
	"github.com/shopline/storefront/pkg/e"
	"github.com/shopline/storefront/pkg/logger"
)

// CartUseCase управляет корзиной в сессии посетителя.
// Строки корзины — снимки товара на момент добавления; между запросами
// они не перечитываются из каталога.
type CartUseCase struct {
	sessionRepo SessionRepository
	productRepo ProductRepository
	logger      logger.Logger
}

func NewCartUC(sessionRepo SessionRepository, productRepo ProductRepository, logger logger.Logger) *CartUseCase {
	return &CartUseCase{
		sessionRepo: sessionRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// GetCart возвращает корзину сессии. Для новой сессии — пустая корзина.
func (c *CartUseCase) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	const op = "CartUseCase.GetCart"

	items, err := c.sessionRepo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewCartView(items, CartTotal(items).String()), nil
}

// AddItem добавляет строку корзины со снимком названия и цены товара.
// Отсутствующий товар — тихий no-op: корзина не меняется, ошибка не возвращается.
func (c *CartUseCase) AddItem(ctx context.Context, sessionID string, productID, quantity int64) error {
	const op = "CartUseCase.AddItem"

	if quantity <= 0 {
		return e.Wrap(op, e.ErrInvalidQuantity)
	}

	product, err := c.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, e.ErrProductNotFound) {
			c.logger.Debugf("add_to_cart ignored, product %d not found", productID)
			return nil
		}
		return e.Wrap(op, err)
	}

	items, err := c.sessionRepo.GetCart(ctx, sessionID)
	if err != nil {
		return e.Wrap(op, err)
	}

	// Повторное добавление того же товара создаёт отдельную строку.
	items = append(items, domain.NewCartItem(product.ID, product.Name, product.Price, quantity))

	if err := c.sessionRepo.SaveCart(ctx, sessionID, items); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// RemoveItem удаляет ВСЕ строки корзины с данным product_id.
func (c *CartUseCase) RemoveItem(ctx context.Context, sessionID string, productID int64) error {
	const op = "CartUseCase.RemoveItem"

	items, err := c.sessionRepo.GetCart(ctx, sessionID)
	if err != nil {
		return e.Wrap(op, err)
	}

	kept := make([]domain.CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	if err := c.sessionRepo.SaveCart(ctx, sessionID, kept); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// CartTotal считает сумму корзины: Σ price×quantity.
// Цены хранятся в копейках, результат — десятичное значение в рублях.
func CartTotal(items []domain.CartItem) decimal.Decimal {
	var totalCents int64
	for _, item := range items {
		totalCents += item.Price * item.Quantity
	}

	return decimal.New(totalCents, -2)
}
