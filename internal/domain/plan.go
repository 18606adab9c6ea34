package domain

import "github.com/shopspring/decimal"

// ProductionPlanItem is server-computed. TotalValue is authoritative from
// the server and is never recomputed client-side.
type ProductionPlanItem struct {
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unitValue"`
	TotalValue  decimal.Decimal `json:"totalValue"`
}

// ProductionPlan is an opaque snapshot: item ordering and the aggregate
// total are trusted verbatim from the server.
type ProductionPlan struct {
	Items      []ProductionPlanItem `json:"items"`
	TotalValue decimal.Decimal      `json:"totalValue"`
}

// ProductProduction reports how many units of one product can be produced
// from current raw-material stock.
type ProductProduction struct {
	ProductID          int    `json:"productId"`
	ProductName        string `json:"productName"`
	ProducibleQuantity int    `json:"producibleQuantity"`
}

type CanProduceResult struct {
	ProductID  int  `json:"productId"`
	Quantity   int  `json:"quantity"`
	CanProduce bool `json:"canProduce"`
}
