package domain

import "time"

// Category описывает категорию каталога
type Category struct {
	ID        int64
	Name      string
	Type      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func NewCategory(name, categoryType string) *Category {
	return &Category{
		Name: name,
		Type: categoryType,
	}
}
