package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopline/storefront/internal/cfg"
	"github.com/shopline/storefront/internal/domain"
	"github.com/shopline/storefront/internal/usecase"
	"github.com/shopline/storefront/pkg/e"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeCatalogUC struct {
	categories []domain.Category
	products   []usecase.ProductInfo
}

func (f *fakeCatalogUC) ListCategories(_ context.Context) ([]domain.Category, error) {
	return f.categories, nil
}

func (f *fakeCatalogUC) ListProducts(_ context.Context) ([]usecase.ProductInfo, error) {
	return f.products, nil
}

func (f *fakeCatalogUC) SearchCategories(_ context.Context, query string) ([]domain.Category, error) {
	out := make([]domain.Category, 0)
	for _, category := range f.categories {
		if strings.Contains(strings.ToLower(category.Name), strings.ToLower(strings.TrimSpace(query))) {
			out = append(out, category)
		}
	}

	return out, nil
}

func (f *fakeCatalogUC) SearchProducts(_ context.Context, query string) ([]usecase.ProductInfo, error) {
	out := make([]usecase.ProductInfo, 0)
	for _, product := range f.products {
		if strings.Contains(strings.ToLower(product.Name), strings.ToLower(strings.TrimSpace(query))) {
			out = append(out, product)
		}
	}

	return out, nil
}

type fakeCartUC struct {
	products map[int64]domain.Product
	carts    map[string][]domain.CartItem
}

func newFakeCartUC(products ...domain.Product) *fakeCartUC {
	uc := &fakeCartUC{
		products: make(map[int64]domain.Product),
		carts:    make(map[string][]domain.CartItem),
	}
	for _, product := range products {
		uc.products[product.ID] = product
	}

	return uc
}

func (f *fakeCartUC) GetCart(_ context.Context, sessionID string) (*usecase.CartView, error) {
	items := f.carts[sessionID]
	return usecase.NewCartView(items, usecase.CartTotal(items).String()), nil
}

func (f *fakeCartUC) AddItem(_ context.Context, sessionID string, productID, quantity int64) error {
	if quantity <= 0 {
		return e.ErrInvalidQuantity
	}

	product, ok := f.products[productID]
	if !ok {
		return nil
	}

	f.carts[sessionID] = append(f.carts[sessionID], domain.NewCartItem(product.ID, product.Name, product.Price, quantity))
	return nil
}

func (f *fakeCartUC) RemoveItem(_ context.Context, sessionID string, productID int64) error {
	kept := make([]domain.CartItem, 0)
	for _, item := range f.carts[sessionID] {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	f.carts[sessionID] = kept

	return nil
}

type fakeAdminUC struct {
	sessions   map[string]int64
	categories map[int64]*domain.Category
	inUse      map[int64]bool
	nextID     int64
}

func newFakeAdminUC() *fakeAdminUC {
	return &fakeAdminUC{
		sessions:   make(map[string]int64),
		categories: make(map[int64]*domain.Category),
		inUse:      make(map[int64]bool),
	}
}

func (f *fakeAdminUC) Authenticate(_ context.Context, sessionID string, req *usecase.LoginReq) (*domain.Admin, error) {
	if req.Username != "root" || req.Password != "secret" {
		return nil, e.ErrAdminNotFound
	}

	f.sessions[sessionID] = 1
	return &domain.Admin{ID: 1, Username: "root"}, nil
}

func (f *fakeAdminUC) Logout(_ context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeAdminUC) RequireAdmin(_ context.Context, sessionID string) (int64, error) {
	adminID, ok := f.sessions[sessionID]
	if !ok {
		return 0, e.ErrUnauthenticated
	}

	return adminID, nil
}

func (f *fakeAdminUC) AddCategory(_ context.Context, req *usecase.CategoryReq) (*domain.Category, error) {
	f.nextID++
	category := &domain.Category{ID: f.nextID, Name: req.Name, Type: req.Type}
	f.categories[category.ID] = category

	return category, nil
}

func (f *fakeAdminUC) EditCategory(_ context.Context, id int64, req *usecase.CategoryReq) (*domain.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, e.ErrCategoryNotFound
	}

	category.Name = req.Name
	category.Type = req.Type
	return category, nil
}

func (f *fakeAdminUC) DeleteCategory(_ context.Context, id int64) error {
	if f.inUse[id] {
		return e.ErrCategoryInUse
	}
	if _, ok := f.categories[id]; !ok {
		return e.ErrCategoryNotFound
	}

	delete(f.categories, id)
	return nil
}

func (f *fakeAdminUC) AddProduct(_ context.Context, req *usecase.ProductReq) (*domain.Product, error) {
	if _, ok := f.categories[req.CategoryID]; !ok {
		return nil, e.ErrUnknownCategory
	}

	f.nextID++
	return &domain.Product{
		ID:                f.nextID,
		Name:              req.Name,
		Price:             req.Price,
		ManufactureDate:   req.ManufactureDate,
		AvailableQuantity: req.AvailableQuantity,
		CategoryID:        req.CategoryID,
	}, nil
}

func (f *fakeAdminUC) EditProduct(_ context.Context, id int64, req *usecase.ProductReq) (*domain.Product, error) {
	return nil, e.ErrProductNotFound
}

func (f *fakeAdminUC) DeleteProduct(_ context.Context, id int64) error {
	return e.ErrProductNotFound
}

type testEnv struct {
	server    *httptest.Server
	catalogUC *fakeCatalogUC
	cartUC    *fakeCartUC
	adminUC   *fakeAdminUC
	cookie    *http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	catalogUC := &fakeCatalogUC{
		categories: []domain.Category{
			{ID: 1, Name: "Кухонная техника", Type: "appliances"},
			{ID: 2, Name: "Мебель", Type: "furniture"},
		},
		products: []usecase.ProductInfo{
			{ID: 1, Name: "Чайник", Price: 59999, ManufactureDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), AvailableQuantity: 10, CategoryID: 1, CategoryName: "Кухонная техника"},
		},
	}
	cartUC := newFakeCartUC(domain.Product{ID: 1, Name: "Чайник", Price: 59999})
	adminUC := newFakeAdminUC()

	mux := chi.NewRouter()
	router := NewRouter(mux, nopLogger{})
	router.Init(&cfg.SessionCfg{CookieName: "session_id", TTL: time.Hour}, catalogUC, cartUC, adminUC)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{server: server, catalogUC: catalogUC, cartUC: cartUC, adminUC: adminUC}
}

// do выполняет запрос без следования редиректам, сохраняя session cookie между вызовами.
func (env *testEnv) do(t *testing.T, method, path string, form url.Values) *http.Response {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequest(method, env.server.URL+path, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if env.cookie != nil {
		req.AddCookie(env.cookie)
	}

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_id" {
			env.cookie = cookie
		}
	}

	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRootRedirectsToDashboard(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/user_dashboard", resp.Header.Get("Location"))
	require.NotNil(t, env.cookie, "session cookie not issued")
}

func TestSessionCookieReused(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodGet, "/user_dashboard", nil)
	first := env.cookie
	require.NotNil(t, first)

	resp := env.do(t, http.MethodGet, "/user_dashboard", nil)
	for _, cookie := range resp.Cookies() {
		assert.NotEqual(t, "session_id", cookie.Name, "cookie reissued for valid session")
	}
	assert.Equal(t, first.Value, env.cookie.Value)
}

func TestSessionCookieReplacedWhenInvalid(t *testing.T) {
	env := newTestEnv(t)
	env.cookie = &http.Cookie{Name: "session_id", Value: "not-a-uuid"}

	env.do(t, http.MethodGet, "/user_dashboard", nil)
	require.NotNil(t, env.cookie)
	assert.NotEqual(t, "not-a-uuid", env.cookie.Value)
}

func TestUserDashboardListing(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/user_dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	dashboard := decodeJSON[DashboardResponse](t, resp)
	assert.Len(t, dashboard.Categories, 2)
	require.Len(t, dashboard.Products, 1)
	assert.Equal(t, "599.99", dashboard.Products[0].Price)
	assert.Equal(t, "Кухонная техника", dashboard.Products[0].CategoryName)
}

func TestUserDashboardSearchCategories(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/user_dashboard", url.Values{
		"search_type":  {"categories"},
		"search_query": {"мебель"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	dashboard := decodeJSON[DashboardResponse](t, resp)
	require.Len(t, dashboard.Categories, 1)
	assert.Equal(t, "Мебель", dashboard.Categories[0].Name)
	assert.Empty(t, dashboard.Products)
}

func TestUserDashboardSearchInvalidType(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/user_dashboard", url.Values{
		"search_type":  {"vendors"},
		"search_query": {"x"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCartRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/user_dashboard", url.Values{
		"add_to_cart": {""},
		"product_id":  {"1"},
		"quantity":    {"2"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cart := decodeJSON[CartResponse](t, resp)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(2), cart.Items[0].Quantity)
	assert.Equal(t, "1199.98", cart.Total)

	resp = env.do(t, http.MethodPost, "/cart", url.Values{
		"remove_from_cart": {""},
		"product_id":       {"1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cart = decodeJSON[CartResponse](t, resp)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "0", cart.Total)
}

func TestAddToCartMissingProductKeepsListing(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/user_dashboard", url.Values{
		"add_to_cart": {""},
		"product_id":  {"404"},
		"quantity":    {"1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/cart", nil)
	cart := decodeJSON[CartResponse](t, resp)
	assert.Empty(t, cart.Items)
}

func TestAddToCartRejectsZeroQuantity(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/user_dashboard", url.Values{
		"add_to_cart": {""},
		"product_id":  {"1"},
		"quantity":    {"0"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminDashboardRequiresLogin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodGet, "/admin_dashboard", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin_login", resp.Header.Get("Location"))

	resp = env.do(t, http.MethodPost, "/admin_dashboard", url.Values{
		"add_category":  {""},
		"category_name": {"Посуда"},
		"category_type": {"kitchen"},
	})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestAdminLoginFlow(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/admin_login", url.Values{
		"username": {"root"},
		"password": {"secret"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin_dashboard", resp.Header.Get("Location"))

	resp = env.do(t, http.MethodGet, "/admin_dashboard", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// повторный заход на форму логина уже аутентифицированным
	resp = env.do(t, http.MethodGet, "/admin_login", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestAdminLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, http.MethodPost, "/admin_login", url.Values{
		"username": {"root"},
		"password": {"wrong"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin_login", resp.Header.Get("Location"))

	resp = env.do(t, http.MethodGet, "/admin_dashboard", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestAdminLogout(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPost, "/admin_login", url.Values{
		"username": {"root"},
		"password": {"secret"},
	})

	resp := env.do(t, http.MethodPost, "/admin_logout", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin_login", resp.Header.Get("Location"))

	resp = env.do(t, http.MethodGet, "/admin_dashboard", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestAdminDashboardActions(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/admin_login", url.Values{
		"username": {"root"},
		"password": {"secret"},
	})

	resp := env.do(t, http.MethodPost, "/admin_dashboard", url.Values{
		"add_category":  {""},
		"category_name": {"Посуда"},
		"category_type": {"kitchen"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/admin_dashboard", url.Values{
		"add_product":        {""},
		"product_name":       {"Чайник"},
		"product_price":      {"599.99"},
		"manufacture_date":   {"2024-01-15"},
		"available_quantity": {"10"},
		"category_id":        {"1"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/admin_dashboard", url.Values{
		"edit_category": {""},
		"category_id":   {"404"},
		"category_name": {"Техника"},
		"category_type": {"appliances"},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminDashboardAmbiguousAction(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/admin_login", url.Values{
		"username": {"root"},
		"password": {"secret"},
	})

	resp := env.do(t, http.MethodPost, "/admin_dashboard", url.Values{
		"add_category":    {""},
		"delete_category": {""},
		"category_name":   {"Посуда"},
		"category_type":   {"kitchen"},
		"category_id":     {"1"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminDashboardUnknownCategoryOnProduct(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/admin_login", url.Values{
		"username": {"root"},
		"password": {"secret"},
	})

	resp := env.do(t, http.MethodPost, "/admin_dashboard", url.Values{
		"add_product":        {""},
		"product_name":       {"Чайник"},
		"product_price":      {"599.99"},
		"manufacture_date":   {"2024-01-15"},
		"available_quantity": {"10"},
		"category_id":        {"42"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
