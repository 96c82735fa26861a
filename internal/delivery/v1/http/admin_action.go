package http

import (
	"net/http"
	"strings"

	"github.com/shopline/storefront/internal/usecase"
	"github.com/shopline/storefront/pkg/e"
)

type adminActionKind int

const (
	actionAddCategory adminActionKind = iota
	actionEditCategory
	actionDeleteCategory
	actionAddProduct
	actionEditProduct
	actionDeleteProduct
)

var actionMarkers = []struct {
	field string
	kind  adminActionKind
}{
	{"add_category", actionAddCategory},
	{"edit_category", actionEditCategory},
	{"delete_category", actionDeleteCategory},
	{"add_product", actionAddProduct},
	{"edit_product", actionEditProduct},
	{"delete_product", actionDeleteProduct},
}

// adminAction — типизированное действие формы админ-панели.
// Вместо диспетчеризации по строковым маркерам в обработчике, форма разбирается
// в один из шести вариантов с полным набором провалидированных полей.
type adminAction struct {
	kind     adminActionKind
	id       int64
	category *usecase.CategoryReq
	product  *usecase.ProductReq
}

// parseAdminAction разбирает POST-форму админ-панели.
// Ровно один маркер действия обязателен; недостающие или некорректные поля —
// ошибка валидации, ничего не коммитится.
func parseAdminAction(r *http.Request) (*adminAction, error) {
	var (
		kind  adminActionKind
		found int
	)

	for _, marker := range actionMarkers {
		if _, ok := r.PostForm[marker.field]; ok {
			kind = marker.kind
			found++
		}
	}

	if found != 1 {
		return nil, e.ErrAmbiguousAdminAction
	}

	action := &adminAction{kind: kind}

	switch kind {
	case actionAddCategory:
		category, err := parseCategoryForm(r)
		if err != nil {
			return nil, err
		}
		action.category = category

	case actionEditCategory:
		id, err := parseID(r.PostFormValue("category_id"))
		if err != nil {
			return nil, err
		}
		category, err := parseCategoryForm(r)
		if err != nil {
			return nil, err
		}
		action.id = id
		action.category = category

	case actionDeleteCategory:
		id, err := parseID(r.PostFormValue("category_id"))
		if err != nil {
			return nil, err
		}
		action.id = id

	case actionAddProduct:
		product, err := parseProductForm(r)
		if err != nil {
			return nil, err
		}
		action.product = product

	case actionEditProduct:
		id, err := parseID(r.PostFormValue("product_id"))
		if err != nil {
			return nil, err
		}
		product, err := parseProductForm(r)
		if err != nil {
			return nil, err
		}
		action.id = id
		action.product = product

	case actionDeleteProduct:
		id, err := parseID(r.PostFormValue("product_id"))
		if err != nil {
			return nil, err
		}
		action.id = id
	}

	return action, nil
}

func parseCategoryForm(r *http.Request) (*usecase.CategoryReq, error) {
	name := strings.TrimSpace(r.PostFormValue("category_name"))
	categoryType := strings.TrimSpace(r.PostFormValue("category_type"))

	if name == "" || categoryType == "" {
		return nil, e.ErrMissingFields
	}

	return usecase.NewCategoryReq(name, categoryType), nil
}

func parseProductForm(r *http.Request) (*usecase.ProductReq, error) {
	name := strings.TrimSpace(r.PostFormValue("product_name"))
	priceStr := r.PostFormValue("product_price")
	dateStr := r.PostFormValue("manufacture_date")
	quantityStr := r.PostFormValue("available_quantity")
	categoryIDStr := r.PostFormValue("category_id")

	if name == "" || priceStr == "" || dateStr == "" || quantityStr == "" || categoryIDStr == "" {
		return nil, e.ErrMissingFields
	}

	price, err := parsePriceToCents(priceStr)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(dateStr)
	if err != nil {
		return nil, err
	}

	quantity, err := parseQuantity(quantityStr)
	if err != nil {
		return nil, err
	}

	categoryID, err := parseID(categoryIDStr)
	if err != nil {
		return nil, err
	}

	return usecase.NewProductReq(name, price, date, quantity, categoryID), nil
}
