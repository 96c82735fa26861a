package http

import (
	"net/http"
	"strings"

	"github.com/shopline/storefront/internal/domain"
	"github.com/shopline/storefront/internal/usecase"
	"github.com/shopline/storefront/pkg/e"
	"github.com/shopline/storefront/pkg/logger"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	cartUsecase    usecase.CartUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, cartUsecase usecase.CartUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, cartUsecase: cartUsecase, logger: logger}
}

// DashboardResponse — витрина: категории и товары (возможно, отфильтрованные поиском).
type DashboardResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Products   []ProductResponse  `json:"products"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type ProductResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Price             string `json:"price"`
	ManufactureDate   string `json:"manufacture_date"`
	AvailableQuantity int64  `json:"available_quantity"`
	CategoryID        int64  `json:"category_id"`
	CategoryName      string `json:"category_name"`
}

// getUserDashboard
//
//	@Summary		Витрина магазина
//	@Description	Возвращает все категории и товары
//	@Tags			storefront
//	@Produce		json
//	@Success		200	{object}	DashboardResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/user_dashboard [get]
func (h *CatalogHandler) getUserDashboard(w http.ResponseWriter, r *http.Request) {
	h.writeDashboard(w, r)
}

// postUserDashboard
//
//	@Summary		Поиск по витрине или добавление товара в корзину
//	@Description	Диспетчеризация по полям формы: search_type+search_query либо add_to_cart
//	@Tags			storefront
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			search_type		formData	string	false	"categories | products"
//	@Param			search_query	formData	string	false	"Подстрока для поиска"
//	@Param			add_to_cart		formData	string	false	"Маркер добавления в корзину"
//	@Param			product_id		formData	integer	false	"Идентификатор товара"
//	@Param			quantity		formData	integer	false	"Количество"
//	@Success		200	{object}	DashboardResponse
//	@Failure		400	{object}	ErrorResponse
//	@Router			/user_dashboard [post]
func (h *CatalogHandler) postUserDashboard(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, e.ErrMissingFields)
		return
	}

	if _, ok := r.PostForm["add_to_cart"]; ok {
		h.addToCart(w, r)
		return
	}

	if searchType := r.PostFormValue("search_type"); searchType != "" {
		h.search(w, r, searchType)
		return
	}

	h.writeDashboard(w, r)
}

func (h *CatalogHandler) addToCart(w http.ResponseWriter, r *http.Request) {
	productID, err := parseID(r.PostFormValue("product_id"))
	if err != nil {
		h.logger.Warnf("add to cart: bad product_id %q", r.PostFormValue("product_id"))
		WriteError(w, err)
		return
	}

	quantity, err := parseQuantity(r.PostFormValue("quantity"))
	if err != nil || quantity == 0 {
		h.logger.Warnf("add to cart: bad quantity %q", r.PostFormValue("quantity"))
		WriteError(w, e.ErrInvalidQuantity)
		return
	}

	if err := h.cartUsecase.AddItem(r.Context(), SessionID(r), productID, quantity); err != nil {
		h.logger.Warnf("add to cart failed: %v", err)
		WriteError(w, err)
		return
	}

	h.writeDashboard(w, r)
}

func (h *CatalogHandler) search(w http.ResponseWriter, r *http.Request, searchType string) {
	query := r.PostFormValue("search_query")

	switch strings.ToLower(strings.TrimSpace(searchType)) {
	case "categories":
		categories, err := h.catalogUsecase.SearchCategories(r.Context(), query)
		if err != nil {
			h.logger.Errorf(err, "category search failed")
			WriteError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, &DashboardResponse{
			Categories: toCategoryResponses(categories),
			Products:   []ProductResponse{},
		})

	case "products":
		products, err := h.catalogUsecase.SearchProducts(r.Context(), query)
		if err != nil {
			h.logger.Errorf(err, "product search failed")
			WriteError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, &DashboardResponse{
			Categories: []CategoryResponse{},
			Products:   toProductResponses(products),
		})

	default:
		WriteError(w, e.ErrInvalidSearchType)
	}
}

func (h *CatalogHandler) writeDashboard(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUsecase.ListCategories(r.Context())
	if err != nil {
		h.logger.Errorf(err, "list categories failed")
		WriteError(w, err)
		return
	}

	products, err := h.catalogUsecase.ListProducts(r.Context())
	if err != nil {
		h.logger.Errorf(err, "list products failed")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &DashboardResponse{
		Categories: toCategoryResponses(categories),
		Products:   toProductResponses(products),
	})
}

func toCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, CategoryResponse{
			ID:   category.ID,
			Name: category.Name,
			Type: category.Type,
		})
	}

	return out
}

func toProductResponses(products []usecase.ProductInfo) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, ProductResponse{
			ID:                product.ID,
			Name:              product.Name,
			Price:             formatCents(product.Price),
			ManufactureDate:   product.ManufactureDate.Format("2006-01-02"),
			AvailableQuantity: product.AvailableQuantity,
			CategoryID:        product.CategoryID,
			CategoryName:      product.CategoryName,
		})
	}

	return out
}
