package server

import (
	"net/http"
	"time"

	"factoria/internal/backend/plan"
	"factoria/internal/backend/products"
	"factoria/internal/backend/rawmaterials"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(
	productsCtrl *products.Controller,
	materialsCtrl *rawmaterials.Controller,
	planCtrl *plan.Controller,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogging(logger))

	r.Mount("/products", productsCtrl.Routes())
	r.Mount("/raw-materials", materialsCtrl.Routes())
	r.Mount("/production-plan", planCtrl.Routes())

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

func requestLogging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
