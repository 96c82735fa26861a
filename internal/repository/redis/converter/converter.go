package converter

import "github.com/shopline/storefront/internal/domain"

// CartItemConverter преобразует строки корзины между domain и моделью Redis.
type CartItemConverter interface {
	ToRedisModel(entity domain.CartItem) CartItemRedisModel
	ToEntity(model CartItemRedisModel) domain.CartItem
	ToArrRedisModel(entities []domain.CartItem) []CartItemRedisModel
	ToArrEntity(models []CartItemRedisModel) []domain.CartItem
}

type cartItemConverterImpl struct{}

func NewCartItemConverter() CartItemConverter { return &cartItemConverterImpl{} }

func (cartItemConverterImpl) ToRedisModel(entity domain.CartItem) CartItemRedisModel {
	return CartItemRedisModel{
		ProductID: entity.ProductID,
		Name:      entity.Name,
		Price:     entity.Price,
		Quantity:  entity.Quantity,
	}
}

func (cartItemConverterImpl) ToEntity(model CartItemRedisModel) domain.CartItem {
	return domain.CartItem{
		ProductID: model.ProductID,
		Name:      model.Name,
		Price:     model.Price,
		Quantity:  model.Quantity,
	}
}

func (c cartItemConverterImpl) ToArrRedisModel(entities []domain.CartItem) []CartItemRedisModel {
	result := make([]CartItemRedisModel, 0, len(entities))
	for _, entity := range entities {
		result = append(result, c.ToRedisModel(entity))
	}

	return result
}

func (c cartItemConverterImpl) ToArrEntity(models []CartItemRedisModel) []domain.CartItem {
	result := make([]domain.CartItem, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}

	return result
}
