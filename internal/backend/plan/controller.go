package plan

import (
	"net/http"
	"strconv"

	"factoria/internal/backend/httpx"
	apperrors "factoria/internal/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Controller struct {
	planner *Planner
	logger  *zap.Logger
}

func NewController(planner *Planner, logger *zap.Logger) *Controller {
	return &Controller{
		planner: planner,
		logger:  logger,
	}
}

func (c *Controller) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", c.handleGetPlan)
	r.Get("/product/{id}", c.handleProductionForProduct)
	r.Get("/product/{id}/can-produce", c.handleCanProduce)
	return r
}

func (c *Controller) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	plan, err := c.planner.BuildPlan(r.Context())
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, plan)
}

func (c *Controller) handleProductionForProduct(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	production, err := c.planner.ProductionForProduct(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, production)
}

func (c *Controller) handleCanProduce(w http.ResponseWriter, r *http.Request) {
	logger := c.requestLogger(r)
	id, err := httpx.IntParam(r, "id")
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
	if err != nil || quantity < 0 {
		httpx.WriteError(w, logger, apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be a non-negative integer",
		}))
		return
	}
	result, err := c.planner.CanProduce(r.Context(), id, quantity)
	if err != nil {
		httpx.WriteError(w, logger, err)
		return
	}
	httpx.WriteJSON(w, logger, http.StatusOK, result)
}

func (c *Controller) requestLogger(r *http.Request) *zap.Logger {
	traceID := r.Header.Get("X-Request-ID")
	if traceID == "" {
		traceID = uuid.New().String()
	}
	return c.logger.With(zap.String("traceId", traceID))
}
