package rawmaterials

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"factoria/internal/backend/httpx"
	"factoria/internal/domain"
	apperrors "factoria/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Controller struct {
	service *Service
	logger  *zap.Logger
}

func NewController(service *Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", c.handleList)
	r.Get("/low-stock", c.handleLowStock)
	r.Get("/search", c.handleSearch)
	r.Post("/", c.handleCreate)
	r.Get("/{id}", c.handleGet)
	r.Put("/{id}", c.handleUpdate)
	r.Delete("/{id}", c.handleDelete)
	r.Patch("/{id}/stock", c.handleSetStock)
	r.Post("/{id}/stock/increase", c.handleIncreaseStock)
	r.Post("/{id}/stock/decrease", c.handleDecreaseStock)
	return r
}

type rawMaterialRequest struct {
	Name          string `json:"name"`
	StockQuantity int    `json:"stockQuantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (c *Controller) handleList(w http.ResponseWriter, r *http.Request) {
	materials, err := c.service.List(r.Context())
	if err != nil {
		httpx.WriteError(w, c.requestLogger(r), err)
		return
	}
	if materials == nil {
		materials = []domain.RawMaterial{}
	}
	httpx.WriteJSON(w, c.logger, http.StatusOK, materials)
}

func (c *Controller) handleGet(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	material, err := c.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, material)
}

func (c *Controller) handleCreate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	var req rawMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteInvalidBody(w, logger)
		return
	}
	material, err := c.service.Create(r.Context(), req.Name, req.StockQuantity)
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	logger.Info("raw material created", zap.Int("id", material.ID))
	httpx.WriteJSON(w, logger, http.StatusCreated, material)
}

func (c *Controller) handleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	var req rawMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteInvalidBody(w, logger)
		return
	}
	material, err := c.service.Update(r.Context(), id, req.Name, req.StockQuantity)
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, material)
}

func (c *Controller) handleDelete(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	if err := c.service.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	logger.Info("raw material deleted", zap.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) handleIncreaseStock(w http.ResponseWriter, r *http.Request) {
	c.handleStockAdjust(w, r, c.service.IncreaseStock)
}

func (c *Controller) handleDecreaseStock(w http.ResponseWriter, r *http.Request) {
	c.handleStockAdjust(w, r, c.service.DecreaseStock)
}

func (c *Controller) handleStockAdjust(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, id, quantity int) (*domain.RawMaterial, error)) {
	logger := c.requestLogger(r)
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteInvalidBody(w, logger)
		return
	}
	material, err := op(r.Context(), id, req.Quantity)
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	logger.Info("stock adjusted", zap.Int("id", id), zap.Int("stockQuantity", material.StockQuantity))
	httpx.WriteJSON(w, logger, http.StatusOK, material)
}

func (c *Controller) handleSetStock(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil {
		httpx.WriteError(w, logger, apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be an integer",
		}))
		return
	}
	material, err := c.service.SetStock(r.Context(), id, quantity)
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, material)
}

func (c *Controller) handleLowStock(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	threshold, _ := strconv.Atoi(r.URL.Query().Get("threshold"))
	materials, err := c.service.ListLowStock(r.Context(), threshold)
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	if materials == nil {
		materials = []domain.RawMaterial{}
	}
	httpx.WriteJSON(w, logger, http.StatusOK, materials)
}

func (c *Controller) handleSearch(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	materials, err := c.service.SearchByName(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	if materials == nil {
		materials = []domain.RawMaterial{}
	}
	httpx.WriteJSON(w, logger, http.StatusOK, materials)
}

func (c *Controller) requestLogger(r *http.Request) *zap.Logger {
	traceID := r.Header.Get("X-Request-ID")
	if traceID == "" {
		traceID = uuid.New().String()
	}
	return c.logger.With(zap.String("traceId", traceID))
}
