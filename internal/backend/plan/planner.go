package plan

import (
	"context"
	"sort"

	"factoria/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductSource interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
}

// Planner computes the production plan the console renders verbatim.
type Planner struct {
	products ProductSource
}

func NewPlanner(products ProductSource) *Planner {
	return &Planner{products: products}
}

func (p *Planner) BuildPlan(ctx context.Context) (*domain.ProductionPlan, error) {
	products, err := p.products.List(ctx)
	if err != nil {
		return nil, err
	}
	plan := ComputePlan(products)
	return &plan, nil
}

func (p *Planner) ProductionForProduct(ctx context.Context, productID int) (*domain.ProductProduction, error) {
	product, err := p.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &domain.ProductProduction{
		ProductID:          product.ID,
		ProductName:        product.Name,
		ProducibleQuantity: producibleQuantity(*product, stockSnapshot([]domain.Product{*product})),
	}, nil
}

func (p *Planner) CanProduce(ctx context.Context, productID, quantity int) (*domain.CanProduceResult, error) {
	production, err := p.ProductionForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &domain.CanProduceResult{
		ProductID:  productID,
		Quantity:   quantity,
		CanProduce: production.ProducibleQuantity >= quantity,
	}, nil
}

// ComputePlan allocates raw-material stock greedily by value: on each
// round the product whose full producible batch is worth the most gets
// its materials, then feasibility is recomputed against what is left.
// Ties break toward the lower product id. Products with no links or no
// producible quantity are omitted.
func ComputePlan(products []domain.Product) domain.ProductionPlan {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	remaining := stockSnapshot(sorted)
	allocated := make(map[int]bool)
	plan := domain.ProductionPlan{
		Items:      []domain.ProductionPlanItem{},
		TotalValue: decimal.Zero,
	}

	for {
		bestIdx := -1
		bestQty := 0
		bestValue := decimal.Zero
		for i, product := range sorted {
			if allocated[product.ID] || len(product.RawMaterials) == 0 {
				continue
			}
			qty := producibleQuantity(product, remaining)
			if qty == 0 {
				continue
			}
			value := product.Price.Mul(decimal.NewFromInt(int64(qty)))
			if bestIdx == -1 || value.GreaterThan(bestValue) {
				bestIdx, bestQty, bestValue = i, qty, value
			}
		}
		if bestIdx == -1 {
			break
		}

		product := sorted[bestIdx]
		allocated[product.ID] = true
		for _, link := range product.RawMaterials {
			remaining[link.RawMaterial.ID] -= bestQty * link.QuantityRequired
		}
		plan.Items = append(plan.Items, domain.ProductionPlanItem{
			ProductName: product.Name,
			Quantity:    bestQty,
			UnitValue:   product.Price,
			TotalValue:  bestValue,
		})
		plan.TotalValue = plan.TotalValue.Add(bestValue)
	}

	return plan
}

// stockSnapshot collapses the raw-material snapshots embedded in the
// links into one stock map. The server hands out consistent snapshots,
// so the last one seen per material is as good as any.
func stockSnapshot(products []domain.Product) map[int]int {
	stock := make(map[int]int)
	for _, p := range products {
		for _, link := range p.RawMaterials {
			stock[link.RawMaterial.ID] = link.RawMaterial.StockQuantity
		}
	}
	return stock
}

func producibleQuantity(p domain.Product, stock map[int]int) int {
	if len(p.RawMaterials) == 0 {
		return 0
	}
	quantity := -1
	for _, link := range p.RawMaterials {
		if link.QuantityRequired <= 0 {
			continue
		}
		possible := stock[link.RawMaterial.ID] / link.QuantityRequired
		if quantity == -1 || possible < quantity {
			quantity = possible
		}
	}
	if quantity < 0 {
		return 0
	}
	return quantity
}
