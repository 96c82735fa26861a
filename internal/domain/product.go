package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID                int64
	Name              string
	Price             int64 // Цена хранится в копейках
	ManufactureDate   time.Time
	AvailableQuantity int64
	CategoryID        int64
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

func NewProduct(name string, price int64, manufactureDate time.Time, availableQuantity int64, categoryID int64) *Product {
	return &Product{
		Name:              name,
		Price:             price,
		ManufactureDate:   manufactureDate,
		AvailableQuantity: availableQuantity,
		CategoryID:        categoryID,
	}
}
