package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shopline/storefront/internal/domain"
	"github.com/shopline/storefront/internal/usecase"
	"github.com/shopline/storefront/pkg/e"
	"github.com/shopline/storefront/pkg/logger"
)

type AdminHandler struct {
	adminUsecase   usecase.AdminUC
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewAdminHandler(adminUsecase usecase.AdminUC, catalogUsecase usecase.CatalogUC, logger logger.Logger) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase, catalogUsecase: catalogUsecase, logger: logger}
}

// LoginStatusResponse — состояние аутентификации текущей сессии.
type LoginStatusResponse struct {
	Authenticated bool `json:"authenticated"`
}

// getAdminLogin
//
//	@Summary		Форма входа администратора
//	@Description	Уже аутентифицированную сессию перенаправляет на админ-панель
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	LoginStatusResponse
//	@Success		303	{string}	string	"Redirect на /admin_dashboard"
//	@Router			/admin_login [get]
func (h *AdminHandler) getAdminLogin(w http.ResponseWriter, r *http.Request) {
	if _, err := h.adminUsecase.RequireAdmin(r.Context(), SessionID(r)); err == nil {
		http.Redirect(w, r, "/admin_dashboard", http.StatusSeeOther)
		return
	}

	WriteSuccess(w, http.StatusOK, &LoginStatusResponse{Authenticated: false})
}

// postAdminLogin
//
//	@Summary		Вход администратора
//	@Description	Проверяет логин и пароль, привязывает администратора к сессии
//	@Tags			admin
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string	true	"Логин"
//	@Param			password	formData	string	true	"Пароль"
//	@Success		303	{string}	string	"Redirect: /admin_dashboard при успехе, /admin_login при неверных данных"
//	@Failure		400	{object}	ErrorResponse
//	@Router			/admin_login [post]
func (h *AdminHandler) postAdminLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, e.ErrMissingFields)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		WriteError(w, e.ErrMissingFields)
		return
	}

	admin, err := h.adminUsecase.Authenticate(r.Context(), SessionID(r), usecase.NewLoginReq(username, password))
	if err != nil {
		h.logger.Warnf("admin login failed for %q: %v", username, err)
		// Неверные учётные данные возвращают на форму входа, без деталей
		if errors.Is(err, e.ErrAdminNotFound) {
			http.Redirect(w, r, "/admin_login", http.StatusSeeOther)
			return
		}
		WriteError(w, err)
		return
	}

	h.logger.Infof("admin %q logged in", admin.Username)
	http.Redirect(w, r, "/admin_dashboard", http.StatusSeeOther)
}

// postAdminLogout
//
//	@Summary		Выход администратора
//	@Description	Отвязывает администратора от сессии
//	@Tags			admin
//	@Success		303	{string}	string	"Redirect на /admin_login"
//	@Router			/admin_logout [post]
func (h *AdminHandler) postAdminLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.adminUsecase.Logout(r.Context(), SessionID(r)); err != nil {
		h.logger.Warnf("admin logout failed: %v", err)
		WriteError(w, err)
		return
	}

	http.Redirect(w, r, "/admin_login", http.StatusSeeOther)
}

// getAdminDashboard
//
//	@Summary		Админ-панель
//	@Description	Каталог целиком для управления; неаутентифицированных перенаправляет на вход
//	@Tags			admin
//	@Produce		json
//	@Success		200	{object}	DashboardResponse
//	@Success		303	{string}	string	"Redirect на /admin_login"
//	@Router			/admin_dashboard [get]
func (h *AdminHandler) getAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

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

// postAdminDashboard
//
//	@Summary		Операция над каталогом
//	@Description	Форма должна содержать ровно один маркер действия: add_category, edit_category, delete_category, add_product, edit_product или delete_product
//	@Tags			admin
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Success		201	{object}	map[string]interface{}
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/admin_dashboard [post]
func (h *AdminHandler) postAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	if err := r.ParseForm(); err != nil {
		WriteError(w, e.ErrMissingFields)
		return
	}

	action, err := parseAdminAction(r)
	if err != nil {
		h.logger.Warnf("bad admin action: %v", err)
		WriteError(w, err)
		return
	}

	h.dispatchAdminAction(w, r, action)
}

func (h *AdminHandler) dispatchAdminAction(w http.ResponseWriter, r *http.Request, action *adminAction) {
	ctx := r.Context()

	switch action.kind {
	case actionAddCategory:
		category, err := h.adminUsecase.AddCategory(ctx, action.category)
		if err != nil {
			h.logger.Warnf("add category failed: %v", err)
			WriteError(w, err)
			return
		}
		WriteSuccess(w, http.StatusCreated, map[string]interface{}{"category": toCategoryResponse(category)})

	case actionEditCategory:
		category, err := h.adminUsecase.EditCategory(ctx, action.id, action.category)
		if err != nil {
			h.logger.Warnf("edit category %d failed: %v", action.id, err)
			WriteError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, map[string]interface{}{"category": toCategoryResponse(category)})

	case actionDeleteCategory:
		if err := h.adminUsecase.DeleteCategory(ctx, action.id); err != nil {
			h.logger.Warnf("delete category %d failed: %v", action.id, err)
			WriteError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, map[string]interface{}{"deleted": true})

	case actionAddProduct:
		product, err := h.adminUsecase.AddProduct(ctx, action.product)
		if err != nil {
			h.logger.Warnf("add product failed: %v", err)
			WriteError(w, err)
			return
		}
		WriteSuccess(w, http.StatusCreated, map[string]interface{}{"product": toAdminProductResponse(product)})

	case actionEditProduct:
		product, err := h.adminUsecase.EditProduct(ctx, action.id, action.product)
		if err != nil {
			h.logger.Warnf("edit product %d failed: %v", action.id, err)
			WriteError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, map[string]interface{}{"product": toAdminProductResponse(product)})

	case actionDeleteProduct:
		if err := h.adminUsecase.DeleteProduct(ctx, action.id); err != nil {
			h.logger.Warnf("delete product %d failed: %v", action.id, err)
			WriteError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, map[string]interface{}{"deleted": true})
	}
}

// requireAdmin проверяет привязку администратора к сессии.
// Неаутентифицированный запрос получает redirect на /admin_login, не страницу ошибки.
func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if _, err := h.adminUsecase.RequireAdmin(r.Context(), SessionID(r)); err != nil {
		if errors.Is(err, e.ErrUnauthenticated) {
			http.Redirect(w, r, "/admin_login", http.StatusSeeOther)
			return false
		}

		h.logger.Errorf(err, "admin session check failed")
		WriteError(w, err)
		return false
	}

	return true
}

func toCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{
		ID:   category.ID,
		Name: category.Name,
		Type: category.Type,
	}
}

func toAdminProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:                product.ID,
		Name:              product.Name,
		Price:             formatCents(product.Price),
		ManufactureDate:   product.ManufactureDate.Format("2006-01-02"),
		AvailableQuantity: product.AvailableQuantity,
		CategoryID:        product.CategoryID,
	}
}
