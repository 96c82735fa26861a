package converter

// CartItemRedisModel — строка корзины в сессионном ключе Redis.
type CartItemRedisModel struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}
