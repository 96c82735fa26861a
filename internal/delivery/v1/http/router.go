package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/shopline/storefront/docs" // Импорт сгенерированных файлов
	"github.com/shopline/storefront/internal/cfg"
	"github.com/shopline/storefront/internal/usecase"
	"github.com/shopline/storefront/pkg/logger"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(sessionCfg *cfg.SessionCfg, catalogUC usecase.CatalogUC, cartUC usecase.CartUC, adminUC usecase.AdminUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	session := NewSessionMiddleware(sessionCfg)

	r.router.Group(func(store chi.Router) {
		store.Use(session.Handler)

		catalogHandler := NewCatalogHandler(catalogUC, cartUC, r.logger)
		cartHandler := NewCartHandler(cartUC, r.logger)
		adminHandler := NewAdminHandler(adminUC, catalogUC, r.logger)

		store.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, "/user_dashboard", http.StatusSeeOther)
		})

		registerCatalogRoutes(store, catalogHandler)
		registerCartRoutes(store, cartHandler)
		registerAdminRoutes(store, adminHandler)
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Get("/user_dashboard", h.getUserDashboard)
	router.Post("/user_dashboard", h.postUserDashboard)
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Get("/cart", h.getCart)
	router.Post("/cart", h.postCart)
}

func registerAdminRoutes(router chi.Router, h *AdminHandler) {
	router.Get("/admin_login", h.getAdminLogin)
	router.Post("/admin_login", h.postAdminLogin)
	router.Post("/admin_logout", h.postAdminLogout)
	router.Get("/admin_dashboard", h.getAdminDashboard)
	router.Post("/admin_dashboard", h.postAdminDashboard)
}
