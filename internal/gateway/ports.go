package gateway

import (
	"context"

	"factoria/internal/domain"

	"github.com/shopspring/decimal"
)

// ProductsGateway is the remote contract the products store depends on.
// Implementations carry no state logic: one request function per endpoint.
type ProductsGateway interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	CreateProduct(ctx context.Context, name string, price decimal.Decimal, stock int) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int, name string, price decimal.Decimal, stock int) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int) error
	AddRawMaterial(ctx context.Context, productID, rawMaterialID, quantityRequired int) (*domain.Product, error)
	UpdateRawMaterialQuantity(ctx context.Context, productID, rawMaterialID, quantity int) (*domain.Product, error)
	RemoveRawMaterial(ctx context.Context, productID, rawMaterialID int) error
}

type RawMaterialsGateway interface {
	ListRawMaterials(ctx context.Context) ([]domain.RawMaterial, error)
	GetRawMaterial(ctx context.Context, id int) (*domain.RawMaterial, error)
	CreateRawMaterial(ctx context.Context, name string, stockQuantity int) (*domain.RawMaterial, error)
	UpdateRawMaterial(ctx context.Context, id int, name string, stockQuantity int) (*domain.RawMaterial, error)
	DeleteRawMaterial(ctx context.Context, id int) error
	IncreaseStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error)
	DecreaseStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error)
	SetStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error)
	ListLowStock(ctx context.Context, threshold int) ([]domain.RawMaterial, error)
	SearchRawMaterials(ctx context.Context, name string) ([]domain.RawMaterial, error)
}

type ProductionPlanGateway interface {
	GetProductionPlan(ctx context.Context) (*domain.ProductionPlan, error)
	GetProductionForProduct(ctx context.Context, productID int) (*domain.ProductProduction, error)
	CanProduce(ctx context.Context, productID, quantity int) (*domain.CanProduceResult, error)
}
