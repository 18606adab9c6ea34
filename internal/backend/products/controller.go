package products

import (
	"encoding/json"
	"net/http"

	"factoria/internal/backend/httpx"
	"factoria/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
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
	r.Post("/", c.handleCreate)
	r.Get("/{id}", c.handleGet)
	r.Put("/{id}", c.handleUpdate)
	r.Delete("/{id}", c.handleDelete)
	r.Post("/{id}/raw-materials", c.handleAddLink)
	r.Put("/{id}/raw-materials/{rawMaterialId}", c.handleUpdateLinkQuantity)
	r.Delete("/{id}/raw-materials/{rawMaterialId}", c.handleRemoveLink)
	return r
}

type productRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type addLinkRequest struct {
	RawMaterialID    int `json:"rawMaterialId"`
	QuantityRequired int `json:"quantityRequired"`
}

type linkQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (c *Controller) handleList(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.List(r.Context())
	if err != nil {
		httpx.WriteError(w, c.requestLogger(r), err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	httpx.WriteJSON(w, c.logger, http.StatusOK, products)
}

func (c *Controller) handleGet(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	product, err := c.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, product)
}

func (c *Controller) handleCreate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteInvalidBody(w, logger)
		return
	}
	product, err := c.service.Create(r.Context(), req.Name, req.Price, req.Stock)
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	logger.Info("product created", zap.Int("id", product.ID))
	httpx.WriteJSON(w, logger, http.StatusCreated, product)
}

func (c *Controller) handleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteInvalidBody(w, logger)
		return
	}
	product, err := c.service.Update(r.Context(), id, req.Name, req.Price, req.Stock)
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, product)
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
	logger.Info("product deleted", zap.Int("id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) handleAddLink(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	var req addLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteInvalidBody(w, logger)
		return
	}
	product, err := c.service.AddLink(r.Context(), id, req.RawMaterialID, req.QuantityRequired)
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	logger.Info("raw material linked",
		zap.Int("productId", id), zap.Int("rawMaterialId", req.RawMaterialID))
	httpx.WriteJSON(w, logger, http.StatusCreated, product)
}

func (c *Controller) handleUpdateLinkQuantity(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	rawMaterialID, err := httpx.IntParam(r, "rawMaterialId")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	var req linkQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteInvalidBody(w, logger)
		return
	}
	product, err := c.service.UpdateLinkQuantity(r.Context(), id, rawMaterialID, req.Quantity)
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, product)
}

func (c *Controller) handleRemoveLink(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	rawMaterialID, err := httpx.IntParam(r, "rawMaterialId")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	if err := c.service.RemoveLink(r.Context(), id, rawMaterialID); err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	logger.Info("raw material unlinked",
		zap.Int("productId", id), zap.Int("rawMaterialId", rawMaterialID))
	w.WriteHeader(http.StatusNoContent)
}

func (c *Controller) requestLogger(r *http.Request) *zap.Logger {
	traceID := r.Header.Get("X-Request-ID")
	if traceID == "" {
		traceID = uuid.New().String()
	}
	return c.logger.With(zap.String("traceId", traceID))
}
