package plan

import (
	"context"
	"sync"

	"factoria/internal/domain"
	"factoria/internal/gateway"

	"go.uber.org/zap"
)

// Cache holds the last-fetched production plan in a single slot. The plan
// is an opaque snapshot: no merging, no local recomputation of totals or
// ordering. Fetches are caller-initiated; reads never trigger one.
type Cache struct {
	gw     gateway.ProductionPlanGateway
	logger *zap.Logger

	mu                sync.RWMutex
	plan              *domain.ProductionPlan
	productProduction *domain.ProductProduction
	canProduce        *domain.CanProduceResult
	loading           bool
}

func NewCache(gw gateway.ProductionPlanGateway, logger *zap.Logger) *Cache {
	return &Cache{
		gw:     gw,
		logger: logger,
	}
}

// Refresh fetches the plan and replaces the slot wholesale. Per-product
// side slots are cleared so they never outlive the plan they were
// computed against.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	plan, err := c.gw.GetProductionPlan(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.logger.Warn("production plan fetch failed", zap.Error(err))
		return err
	}
	c.plan = plan
	c.productProduction = nil
	c.canProduce = nil
	return nil
}

// Current returns the cached plan, or false when none has been loaded.
func (c *Cache) Current() (domain.ProductionPlan, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.plan == nil {
		return domain.ProductionPlan{}, false
	}
	out := *c.plan
	if c.plan.Items != nil {
		out.Items = make([]domain.ProductionPlanItem, len(c.plan.Items))
		copy(out.Items, c.plan.Items)
	}
	return out, true
}

func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plan = nil
	c.productProduction = nil
	c.canProduce = nil
}

// ProductionForProduct fetches the producible quantity for one product.
func (c *Cache) ProductionForProduct(ctx context.Context, productID int) (*domain.ProductProduction, error) {
	production, err := c.gw.GetProductionForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	stored := *production
	c.productProduction = &stored
	c.mu.Unlock()

	out := *production
	return &out, nil
}

// CheckCanProduce asks the server whether a quantity of one product is
// feasible from current raw-material stock.
func (c *Cache) CheckCanProduce(ctx context.Context, productID, quantity int) (*domain.CanProduceResult, error) {
	result, err := c.gw.CanProduce(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	stored := *result
	c.canProduce = &stored
	c.mu.Unlock()

	out := *result
	return &out, nil
}
