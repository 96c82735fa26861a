package usecase

import (
	"time"

	"github.com/shopline/storefront/internal/domain"
)

// ADMIN USECASE

// LoginReq — запрос на аутентификацию администратора.
type LoginReq struct {
	Username string
	Password string
}

// CategoryReq — данные формы создания/редактирования категории.
type CategoryReq struct {
	Name string
	Type string
}

// ProductReq — данные формы создания/редактирования товара.
// Price уже сконвертирована HTTP-слоем в копейки.
type ProductReq struct {
	Name              string
	Price             int64
	ManufactureDate   time.Time
	AvailableQuantity int64
	CategoryID        int64
}

// CATALOG USECASE

// ProductInfo — DTO товара с разрешённой категорией для внешнего использования.
type ProductInfo struct {
	ID                int64
	Name              string
	Price             int64
	ManufactureDate   time.Time
	AvailableQuantity int64
	CategoryID        int64
	CategoryName      string
}

// CART USECASE

// CartView — содержимое корзины с итоговой суммой.
// Total — десятичная строка ("35" для 3500 копеек).
type CartView struct {
	Items []domain.CartItem
	Total string
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	CategoryChanged OutboxEventType = "category.changed"
	ProductChanged  OutboxEventType = "product.changed"
)

// OutboxEvent — событие изменения каталога, публикуемое в Kafka через outbox-таблицу.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	EntityID    int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	EntityID int64
	Payload  []byte
}

// MAPPERS

func NewLoginReq(username, password string) *LoginReq {
	return &LoginReq{Username: username, Password: password}
}

func NewCategoryReq(name, categoryType string) *CategoryReq {
	return &CategoryReq{Name: name, Type: categoryType}
}

func NewProductReq(name string, price int64, manufactureDate time.Time, availableQuantity int64, categoryID int64) *ProductReq {
	return &ProductReq{
		Name:              name,
		Price:             price,
		ManufactureDate:   manufactureDate,
		AvailableQuantity: availableQuantity,
		CategoryID:        categoryID,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, entityID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		EntityID:  entityID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}
}

func NewCartView(items []domain.CartItem, total string) *CartView {
	return &CartView{Items: items, Total: total}
}

func NewWriteRawMessageReq(entityID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		EntityID: entityID,
		Payload:  payload,
	}
}
