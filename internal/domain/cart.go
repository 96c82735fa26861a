package domain

// CartItem — строка корзины в сессии посетителя.
// Name и Price — снимок товара на момент добавления, повторно из БД не читаются.
// Уникальность ProductID не требуется: повторное добавление даёт отдельную строку.
type CartItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"` // в копейках
	Quantity  int64  `json:"quantity"`
}

func NewCartItem(productID int64, name string, price int64, quantity int64) CartItem {
	return CartItem{
		ProductID: productID,
		Name:      name,
		Price:     price,
		Quantity:  quantity,
	}
}
