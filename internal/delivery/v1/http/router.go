package http

import (
	_ "github.com/DRSN-tech/catalog-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(prUC usecase.ProductUC, catUC usecase.CategoryUC, brUC usecase.BrandUC, dmUC usecase.DummyUC) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.Recoverer)
	r.router.Use(prometheusMiddleware)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))
	r.router.Handle("/metrics", promhttp.Handler())

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerProductRoutes(v1, NewProductHandler(prUC, r.logger))
		registerCategoryRoutes(v1, NewCategoryHandler(catUC, r.logger))
		registerBrandRoutes(v1, NewBrandHandler(brUC, r.logger))
		registerDummyRoutes(v1, NewDummyHandler(dmUC, r.logger))
		registerSystemRoutes(v1, NewSystemHandler(r.logger))
	})
}

func registerProductRoutes(router chi.Router, h *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Post("/", h.createProduct)
		pr.Get("/sku/{sku}", h.getProductBySKU)
		pr.Get("/{id}", h.getProductByID)
		pr.Put("/{id}", h.updateProduct)
		pr.Delete("/{id}", h.deleteProduct)
		pr.Post("/{id}/images", h.uploadProductImages)
	})
}

func registerCategoryRoutes(router chi.Router, h *CategoryHandler) {
	router.Route("/categories", func(ct chi.Router) {
		ct.Get("/", h.listCategories)
		ct.Post("/", h.createCategory)
		ct.Get("/{id}", h.getCategoryByID)
		ct.Put("/{id}", h.updateCategory)
		ct.Delete("/{id}", h.deleteCategory)
	})
}

func registerBrandRoutes(router chi.Router, h *BrandHandler) {
	router.Route("/brands", func(br chi.Router) {
		br.Get("/", h.listBrands)
		br.Post("/", h.createBrand)
		br.Get("/name/{name}", h.getBrandByName)
		br.Get("/{id}", h.getBrandByID)
		br.Put("/{id}", h.updateBrand)
		br.Delete("/{id}", h.deleteBrand)
	})
}

func registerDummyRoutes(router chi.Router, h *DummyHandler) {
	router.Route("/dummy", func(dm chi.Router) {
		dm.Get("/", h.listDummies)
		dm.Post("/", h.createDummy)
		dm.Get("/search", h.searchDummies)
		dm.Get("/{id}", h.getDummyByID)
	})
}

func registerSystemRoutes(router chi.Router, h *SystemHandler) {
	router.Get("/health", h.health)
	router.Post("/echo", h.echo)
}
