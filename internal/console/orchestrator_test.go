package console

import (
	"context"
	"errors"
	"testing"

	"factoria/internal/domain"
	apperrors "factoria/internal/errors"
	"factoria/internal/store/plan"
	"factoria/internal/store/products"
	"factoria/internal/store/rawmaterials"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// stubGateway implements every gateway port; unwired endpoints fail the
// test if an operation reaches them unexpectedly.
type stubGateway struct {
	t *testing.T

	materials     []domain.RawMaterial
	productList   []domain.Product
	planResult    *domain.ProductionPlan
	planErr       error
	decreaseCalls int
}

func (s *stubGateway) ListRawMaterials(ctx context.Context) ([]domain.RawMaterial, error) {
	return s.materials, nil
}

func (s *stubGateway) GetRawMaterial(ctx context.Context, id int) (*domain.RawMaterial, error) {
	s.t.Fatalf("unexpected GetRawMaterial call")
	return nil, nil
}

func (s *stubGateway) CreateRawMaterial(ctx context.Context, name string, stockQuantity int) (*domain.RawMaterial, error) {
	return &domain.RawMaterial{ID: 99, Name: name, StockQuantity: stockQuantity}, nil
}

func (s *stubGateway) UpdateRawMaterial(ctx context.Context, id int, name string, stockQuantity int) (*domain.RawMaterial, error) {
	s.t.Fatalf("unexpected UpdateRawMaterial call")
	return nil, nil
}

func (s *stubGateway) DeleteRawMaterial(ctx context.Context, id int) error {
	s.t.Fatalf("unexpected DeleteRawMaterial call")
	return nil
}

func (s *stubGateway) IncreaseStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	for _, m := range s.materials {
		if m.ID == id {
			m.StockQuantity += quantity
			return &m, nil
		}
	}
	return nil, apperrors.NewOperationError(404, "NOT_FOUND", "raw material not found")
}

func (s *stubGateway) DecreaseStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	s.decreaseCalls++
	for _, m := range s.materials {
		if m.ID == id {
			m.StockQuantity -= quantity
			return &m, nil
		}
	}
	return nil, apperrors.NewOperationError(404, "NOT_FOUND", "raw material not found")
}

func (s *stubGateway) SetStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	s.t.Fatalf("unexpected SetStock call")
	return nil, nil
}

func (s *stubGateway) ListLowStock(ctx context.Context, threshold int) ([]domain.RawMaterial, error) {
	s.t.Fatalf("unexpected ListLowStock call")
	return nil, nil
}

func (s *stubGateway) SearchRawMaterials(ctx context.Context, name string) ([]domain.RawMaterial, error) {
	s.t.Fatalf("unexpected SearchRawMaterials call")
	return nil, nil
}

func (s *stubGateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.productList, nil
}

func (s *stubGateway) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	for _, p := range s.productList {
		if p.ID == id {
			clone := p.Clone()
			return &clone, nil
		}
	}
	return nil, apperrors.NewOperationError(404, "NOT_FOUND", "product not found")
}

func (s *stubGateway) CreateProduct(ctx context.Context, name string, price decimal.Decimal, stock int) (*domain.Product, error) {
	s.t.Fatalf("unexpected CreateProduct call")
	return nil, nil
}

func (s *stubGateway) UpdateProduct(ctx context.Context, id int, name string, price decimal.Decimal, stock int) (*domain.Product, error) {
	s.t.Fatalf("unexpected UpdateProduct call")
	return nil, nil
}

func (s *stubGateway) DeleteProduct(ctx context.Context, id int) error {
	s.t.Fatalf("unexpected DeleteProduct call")
	return nil
}

func (s *stubGateway) AddRawMaterial(ctx context.Context, productID, rawMaterialID, quantityRequired int) (*domain.Product, error) {
	s.t.Fatalf("unexpected AddRawMaterial call")
	return nil, nil
}

func (s *stubGateway) UpdateRawMaterialQuantity(ctx context.Context, productID, rawMaterialID, quantity int) (*domain.Product, error) {
	s.t.Fatalf("unexpected UpdateRawMaterialQuantity call")
	return nil, nil
}

func (s *stubGateway) RemoveRawMaterial(ctx context.Context, productID, rawMaterialID int) error {
	s.t.Fatalf("unexpected RemoveRawMaterial call")
	return nil
}

func (s *stubGateway) GetProductionPlan(ctx context.Context) (*domain.ProductionPlan, error) {
	if s.planErr != nil {
		return nil, s.planErr
	}
	if s.planResult == nil {
		return &domain.ProductionPlan{Items: []domain.ProductionPlanItem{}, TotalValue: decimal.Zero}, nil
	}
	return s.planResult, nil
}

func (s *stubGateway) GetProductionForProduct(ctx context.Context, productID int) (*domain.ProductProduction, error) {
	s.t.Fatalf("unexpected GetProductionForProduct call")
	return nil, nil
}

func (s *stubGateway) CanProduce(ctx context.Context, productID, quantity int) (*domain.CanProduceResult, error) {
	s.t.Fatalf("unexpected CanProduce call")
	return nil, nil
}

func newTestOrchestrator(t *testing.T, gw *stubGateway) *Orchestrator {
	t.Helper()
	gw.t = t
	logger := zap.NewNop()
	orch := NewOrchestrator(
		products.NewStore(gw, logger),
		rawmaterials.NewStore(gw, logger),
		plan.NewCache(gw, logger),
		logger,
	)
	if err := orch.Materials().Load(context.Background()); err != nil {
		t.Fatalf("loading materials: %v", err)
	}
	return orch
}

// Tests

func TestDecreaseStock_GuardRejectsExcessiveQuantity(t *testing.T) {
	gw := &stubGateway{materials: []domain.RawMaterial{{ID: 1, Name: "Steel", StockQuantity: 25}}}
	orch := newTestOrchestrator(t, gw)

	_, err := orch.DecreaseStock(context.Background(), 1, 30)

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if gw.decreaseCalls != 0 {
		t.Errorf("request issued despite failed precondition")
	}
}

func TestDecreaseStock_AllowedWithinStock(t *testing.T) {
	gw := &stubGateway{materials: []domain.RawMaterial{{ID: 1, Name: "Steel", StockQuantity: 25}}}
	orch := newTestOrchestrator(t, gw)

	updated, err := orch.DecreaseStock(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.StockQuantity != 5 {
		t.Errorf("expected stock 5, got %d", updated.StockQuantity)
	}
	if gw.decreaseCalls != 1 {
		t.Errorf("expected one decrease request, got %d", gw.decreaseCalls)
	}
}

func TestDecreaseStock_UnknownMaterial_Rejected(t *testing.T) {
	gw := &stubGateway{}
	orch := newTestOrchestrator(t, gw)

	_, err := orch.DecreaseStock(context.Background(), 42, 1)

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestCreateIncreaseDecrease_Scenario(t *testing.T) {
	gw := &stubGateway{}
	orch := newTestOrchestrator(t, gw)

	created, err := orch.Materials().Create(context.Background(), "Steel", 5)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.StockQuantity != 5 {
		t.Fatalf("expected stock 5, got %d", created.StockQuantity)
	}

	gw.materials = []domain.RawMaterial{*created}
	updated, err := orch.IncreaseStock(context.Background(), created.ID, 20)
	if err != nil {
		t.Fatalf("increase failed: %v", err)
	}
	if updated.StockQuantity != 25 {
		t.Fatalf("expected stock 25, got %d", updated.StockQuantity)
	}

	// 30 > 25: rejected before any request is issued.
	if _, err := orch.DecreaseStock(context.Background(), created.ID, 30); err == nil {
		t.Fatalf("expected precondition rejection")
	}
	if gw.decreaseCalls != 0 {
		t.Errorf("decrease request issued despite precondition failure")
	}
}

func TestRefreshInventory_AttemptsBothRefreshes(t *testing.T) {
	gw := &stubGateway{
		materials: []domain.RawMaterial{{ID: 1, Name: "Steel", StockQuantity: 5}},
		planErr:   apperrors.NewTransportError("no response received", errors.New("timeout")),
	}
	orch := newTestOrchestrator(t, gw)

	err := orch.RefreshInventory(context.Background())

	// Materials refreshed even though the plan fetch failed.
	if _, ok := apperrors.IsTransportError(err); !ok {
		t.Fatalf("expected TransportError from plan refresh, got %T", err)
	}
	if len(orch.Materials().Items()) != 1 {
		t.Errorf("materials not refreshed")
	}
}

func TestAvailableMaterials_ExcludesLinkedOnes(t *testing.T) {
	product := domain.Product{
		ID:   1,
		Name: "Widget",
		RawMaterials: []domain.ProductRawMaterialLink{
			{QuantityRequired: 2, RawMaterial: domain.RawMaterial{ID: 1, Name: "Steel", StockQuantity: 5}},
		},
	}
	gw := &stubGateway{
		materials: []domain.RawMaterial{
			{ID: 1, Name: "Steel", StockQuantity: 5},
			{ID: 2, Name: "Copper", StockQuantity: 8},
		},
		productList: []domain.Product{product},
	}
	orch := newTestOrchestrator(t, gw)
	if _, err := orch.OpenProduct(context.Background(), 1); err != nil {
		t.Fatalf("open product failed: %v", err)
	}

	available := orch.AvailableMaterials()

	if len(available) != 1 || available[0].ID != 2 {
		t.Errorf("expected only unlinked materials, got %+v", available)
	}
}
