package console

import (
	"context"
	"fmt"

	"factoria/internal/domain"
	apperrors "factoria/internal/errors"
	"factoria/internal/store/plan"
	"factoria/internal/store/products"
	"factoria/internal/store/rawmaterials"

	"go.uber.org/zap"
)

// Orchestrator dispatches operator intents against the stores. It owns
// the cross-store composites and the preconditions the stores leave to
// their caller, in particular the sufficient-stock check before a
// decrease.
type Orchestrator struct {
	products  *products.Store
	materials *rawmaterials.Store
	plan      *plan.Cache
	logger    *zap.Logger
}

func NewOrchestrator(p *products.Store, m *rawmaterials.Store, pl *plan.Cache, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		products:  p,
		materials: m,
		plan:      pl,
		logger:    logger,
	}
}

func (o *Orchestrator) Products() *products.Store      { return o.products }
func (o *Orchestrator) Materials() *rawmaterials.Store { return o.materials }
func (o *Orchestrator) Plan() *plan.Cache              { return o.plan }

// LoadAll primes all three slices on startup.
func (o *Orchestrator) LoadAll(ctx context.Context) error {
	if err := o.materials.Load(ctx); err != nil {
		return err
	}
	if err := o.products.Load(ctx); err != nil {
		return err
	}
	return o.plan.Refresh(ctx)
}

// RefreshInventory refreshes raw materials and the production plan as one
// composite action so stock warnings and plan totals reflect the same
// instant. Both refreshes are attempted even when the first fails.
func (o *Orchestrator) RefreshInventory(ctx context.Context) error {
	materialsErr := o.materials.Refresh(ctx)
	planErr := o.plan.Refresh(ctx)
	if materialsErr != nil {
		return materialsErr
	}
	return planErr
}

// DecreaseStock guards the store's decrease with the sufficient-stock
// precondition: an amount exceeding current stock is rejected before any
// request is issued.
func (o *Orchestrator) DecreaseStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be positive",
		})
	}

	current, ok := o.materials.Get(id)
	if !ok {
		return nil, apperrors.NewValidationError("unknown raw material", apperrors.ValidationDetail{
			Field:   "id",
			Message: fmt.Sprintf("raw material %d is not in the local collection", id),
		})
	}
	if quantity > current.StockQuantity {
		return nil, apperrors.NewValidationError("insufficient stock", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: fmt.Sprintf("cannot decrease by %d: only %d in stock", quantity, current.StockQuantity),
		})
	}

	return o.materials.DecreaseStock(ctx, id, quantity)
}

func (o *Orchestrator) IncreaseStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	return o.materials.IncreaseStock(ctx, id, quantity)
}

// OpenProduct loads the product detail alongside the raw-materials
// collection, mirroring the detail view's needs: the link editor offers
// only materials not yet linked.
func (o *Orchestrator) OpenProduct(ctx context.Context, id int) (*domain.Product, error) {
	if err := o.materials.Load(ctx); err != nil {
		return nil, err
	}
	return o.products.SelectDetail(ctx, id)
}

// AvailableMaterials lists raw materials not yet linked to the selected
// product.
func (o *Orchestrator) AvailableMaterials() []domain.RawMaterial {
	selected, ok := o.products.Selected()
	if !ok {
		return o.materials.Items()
	}
	var out []domain.RawMaterial
	for _, m := range o.materials.Items() {
		if !selected.HasLink(m.ID) {
			out = append(out, m)
		}
	}
	return out
}
