package domain

// DefaultLowStockThreshold is the stock level below which a raw material
// counts as low stock when no explicit threshold is given.
const DefaultLowStockThreshold = 10

type RawMaterial struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	StockQuantity int    `json:"stockQuantity"`
}

// IsLowStock is a view predicate over current stock, not stored state.
func (m RawMaterial) IsLowStock(threshold int) bool {
	return m.StockQuantity < threshold
}
