package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/z-tavern/askwidget/internal/handler/ask"
	"github.com/zhouzirui/z-tavern/askwidget/pkg/utils"
)

// NewRouter wires the stub question endpoint and a health probe.
func NewRouter(answerer ask.Answerer, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	askHandler := ask.New(answerer, logger)
	askHandler.RegisterRoutes(r)

	respond := utils.NewResponder(logger)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
