package http

import (
	"net/http"

	"github.com/shopline/storefront/internal/usecase"
	"github.com/shopline/storefront/pkg/e"
	"github.com/shopline/storefront/pkg/logger"
)

type CartHandler struct {
	cartUsecase usecase.CartUC
	logger      logger.Logger
}

func NewCartHandler(cartUsecase usecase.CartUC, logger logger.Logger) *CartHandler {
	return &CartHandler{cartUsecase: cartUsecase, logger: logger}
}

// CartResponse — содержимое корзины текущей сессии.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total string             `json:"total"`
}

type CartItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int64  `json:"quantity"`
}

// getCart
//
//	@Summary		Корзина
//	@Description	Возвращает позиции корзины текущей сессии и итоговую сумму
//	@Tags			cart
//	@Produce		json
//	@Success		200	{object}	CartResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/cart [get]
func (h *CartHandler) getCart(w http.ResponseWriter, r *http.Request) {
	h.writeCart(w, r)
}

// postCart
//
//	@Summary		Удаление товара из корзины
//	@Description	Удаляет все позиции с указанным product_id из корзины сессии
//	@Tags			cart
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			remove_from_cart	formData	string	true	"Маркер удаления"
//	@Param			product_id			formData	integer	true	"Идентификатор товара"
//	@Success		200	{object}	CartResponse
//	@Failure		400	{object}	ErrorResponse
//	@Router			/cart [post]
func (h *CartHandler) postCart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, e.ErrMissingFields)
		return
	}

	if _, ok := r.PostForm["remove_from_cart"]; !ok {
		h.writeCart(w, r)
		return
	}

	productID, err := parseID(r.PostFormValue("product_id"))
	if err != nil {
		h.logger.Warnf("remove from cart: bad product_id %q", r.PostFormValue("product_id"))
		WriteError(w, err)
		return
	}

	if err := h.cartUsecase.RemoveItem(r.Context(), SessionID(r), productID); err != nil {
		h.logger.Warnf("remove from cart failed: %v", err)
		WriteError(w, err)
		return
	}

	h.writeCart(w, r)
}

func (h *CartHandler) writeCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.cartUsecase.GetCart(r.Context(), SessionID(r))
	if err != nil {
		h.logger.Errorf(err, "get cart failed")
		WriteError(w, err)
		return
	}

	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     formatCents(item.Price),
			Quantity:  item.Quantity,
		})
	}

	WriteSuccess(w, http.StatusOK, &CartResponse{
		Items: items,
		Total: cart.Total,
	})
}
