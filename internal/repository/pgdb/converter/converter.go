package converter

import (
	"github.com/shopline/storefront/internal/domain"
	"github.com/shopline/storefront/internal/usecase"
)

// CategoryConverter преобразует сущности Category между domain и моделью PostgreSQL.
type CategoryConverter interface {
	ToModel(entity *domain.Category) *CategoryModel
	ToEntity(model *CategoryModel) *domain.Category
	ToArrEntity(models []*CategoryModel) []domain.Category
}

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

// AdminConverter преобразует сущности Admin между domain и моделью PostgreSQL.
type AdminConverter interface {
	ToEntity(model *AdminModel) *domain.Admin
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type categoryConverterImpl struct{}

func NewCategoryConverter() CategoryConverter { return &categoryConverterImpl{} }

func (categoryConverterImpl) ToModel(entity *domain.Category) *CategoryModel {
	return &CategoryModel{
		ID:        entity.ID,
		Name:      entity.Name,
		Type:      entity.Type,
		CreatedAt: entity.CreatedAt,
		UpdatedAt: entity.UpdatedAt,
	}
}

func (categoryConverterImpl) ToEntity(model *CategoryModel) *domain.Category {
	return &domain.Category{
		ID:        model.ID,
		Name:      model.Name,
		Type:      model.Type,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (c categoryConverterImpl) ToArrEntity(models []*CategoryModel) []domain.Category {
	result := make([]domain.Category, 0, len(models))
	for _, model := range models {
		result = append(result, *c.ToEntity(model))
	}

	return result
}

type productConverterImpl struct{}

func NewProductConverter() ProductConverter { return &productConverterImpl{} }

func (productConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	return &ProductModel{
		ID:                entity.ID,
		Name:              entity.Name,
		Price:             entity.Price,
		ManufactureDate:   entity.ManufactureDate,
		AvailableQuantity: entity.AvailableQuantity,
		CategoryID:        entity.CategoryID,
		CreatedAt:         entity.CreatedAt,
		UpdatedAt:         entity.UpdatedAt,
	}
}

func (productConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:                model.ID,
		Name:              model.Name,
		Price:             model.Price,
		ManufactureDate:   model.ManufactureDate,
		AvailableQuantity: model.AvailableQuantity,
		CategoryID:        model.CategoryID,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}

type adminConverterImpl struct{}

func NewAdminConverter() AdminConverter { return &adminConverterImpl{} }

func (adminConverterImpl) ToEntity(model *AdminModel) *domain.Admin {
	return &domain.Admin{
		ID:           model.ID,
		Username:     model.Username,
		PasswordHash: model.PasswordHash,
	}
}

type outboxEventConverterImpl struct{}

func NewOutboxEventConverter() OutboxEventConverter { return &outboxEventConverterImpl{} }

func (outboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   string(entity.EventType),
		EntityID:    entity.EntityID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (outboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   usecase.OutboxEventType(model.EventType),
		EntityID:    model.EntityID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c outboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, model := range models {
		result = append(result, c.ToEntity(model))
	}

	return result
}
