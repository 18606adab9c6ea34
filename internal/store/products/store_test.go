package products

import (
	"context"
	"reflect"
	"testing"

	"factoria/internal/domain"
	apperrors "factoria/internal/errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Mock gateway

type mockGateway struct {
	ListProductsFunc              func(ctx context.Context) ([]domain.Product, error)
	GetProductFunc                func(ctx context.Context, id int) (*domain.Product, error)
	CreateProductFunc             func(ctx context.Context, name string, price decimal.Decimal, stock int) (*domain.Product, error)
	UpdateProductFunc             func(ctx context.Context, id int, name string, price decimal.Decimal, stock int) (*domain.Product, error)
	DeleteProductFunc             func(ctx context.Context, id int) error
	AddRawMaterialFunc            func(ctx context.Context, productID, rawMaterialID, quantityRequired int) (*domain.Product, error)
	UpdateRawMaterialQuantityFunc func(ctx context.Context, productID, rawMaterialID, quantity int) (*domain.Product, error)
	RemoveRawMaterialFunc         func(ctx context.Context, productID, rawMaterialID int) error
	addCalls                      int
	getCalls                      int
}

func (m *mockGateway) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return m.ListProductsFunc(ctx)
}

func (m *mockGateway) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	m.getCalls++
	return m.GetProductFunc(ctx, id)
}

func (m *mockGateway) CreateProduct(ctx context.Context, name string, price decimal.Decimal, stock int) (*domain.Product, error) {
	return m.CreateProductFunc(ctx, name, price, stock)
}

func (m *mockGateway) UpdateProduct(ctx context.Context, id int, name string, price decimal.Decimal, stock int) (*domain.Product, error) {
	return m.UpdateProductFunc(ctx, id, name, price, stock)
}

func (m *mockGateway) DeleteProduct(ctx context.Context, id int) error {
	return m.DeleteProductFunc(ctx, id)
}

func (m *mockGateway) AddRawMaterial(ctx context.Context, productID, rawMaterialID, quantityRequired int) (*domain.Product, error) {
	m.addCalls++
	return m.AddRawMaterialFunc(ctx, productID, rawMaterialID, quantityRequired)
}

func (m *mockGateway) UpdateRawMaterialQuantity(ctx context.Context, productID, rawMaterialID, quantity int) (*domain.Product, error) {
	return m.UpdateRawMaterialQuantityFunc(ctx, productID, rawMaterialID, quantity)
}

func (m *mockGateway) RemoveRawMaterial(ctx context.Context, productID, rawMaterialID int) error {
	return m.RemoveRawMaterialFunc(ctx, productID, rawMaterialID)
}

func steelLink(quantityRequired int) domain.ProductRawMaterialLink {
	return domain.ProductRawMaterialLink{
		QuantityRequired: quantityRequired,
		RawMaterial:      domain.RawMaterial{ID: 7, Name: "Steel", StockQuantity: 40},
	}
}

func testProduct(links ...domain.ProductRawMaterialLink) domain.Product {
	return domain.Product{
		ID:           1,
		Name:         "Widget",
		Price:        decimal.NewFromInt(10),
		Stock:        3,
		RawMaterials: links,
	}
}

func loadedStore(t *testing.T, gw *mockGateway, items []domain.Product) *Store {
	t.Helper()
	gw.ListProductsFunc = func(ctx context.Context) ([]domain.Product, error) {
		return items, nil
	}
	store := NewStore(gw, zap.NewNop())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("loading store: %v", err)
	}
	return store
}

// Tests

func TestCreate_IDComesFromResponse(t *testing.T) {
	gw := &mockGateway{
		CreateProductFunc: func(ctx context.Context, name string, price decimal.Decimal, stock int) (*domain.Product, error) {
			return &domain.Product{ID: 8, Name: name, Price: price, Stock: stock}, nil
		},
	}
	store := loadedStore(t, gw, nil)

	created, err := store.Create(context.Background(), "Widget", decimal.NewFromInt(10), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.ID != 8 {
		t.Errorf("expected server-assigned id 8, got %d", created.ID)
	}
	items := store.Items()
	if len(items) != 1 || items[0].ID != 8 {
		t.Errorf("new entity not in collection exactly once: %+v", items)
	}
}

func TestCreate_NegativePrice_Rejected(t *testing.T) {
	store := loadedStore(t, &mockGateway{}, nil)

	_, err := store.Create(context.Background(), "Widget", decimal.NewFromInt(-1), 0)

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestSelectDetail_IndependentOfCollection(t *testing.T) {
	detail := testProduct(steelLink(4))
	gw := &mockGateway{
		GetProductFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			p := detail.Clone()
			return &p, nil
		},
	}
	// The list item is thinner than the detail fetch: no links.
	store := loadedStore(t, gw, []domain.Product{{ID: 1, Name: "Widget", Price: decimal.NewFromInt(10)}})

	selected, err := store.SelectDetail(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(selected.RawMaterials) != 1 {
		t.Fatalf("detail fetch lost the link list: %+v", selected)
	}
	// The collection entry is untouched by a detail fetch.
	if len(store.Items()[0].RawMaterials) != 0 {
		t.Errorf("collection entry mutated by detail fetch")
	}
}

func TestAddMaterialLink_ReconcilesCollectionAndDetail(t *testing.T) {
	detail := testProduct()
	updated := testProduct(steelLink(4))
	gw := &mockGateway{
		GetProductFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			p := detail.Clone()
			return &p, nil
		},
		AddRawMaterialFunc: func(ctx context.Context, productID, rawMaterialID, quantityRequired int) (*domain.Product, error) {
			p := updated.Clone()
			return &p, nil
		},
	}
	store := loadedStore(t, gw, []domain.Product{testProduct()})
	if _, err := store.SelectDetail(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := store.AddMaterialLink(context.Background(), 1, 7, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.RawMaterials) != 1 || result.RawMaterials[0].QuantityRequired != 4 ||
		result.RawMaterials[0].RawMaterial.ID != 7 {
		t.Fatalf("unexpected link set: %+v", result.RawMaterials)
	}

	// Detail slot and collection entry must agree in content.
	selected, _ := store.Selected()
	entry, _ := store.Get(1)
	if !reflect.DeepEqual(selected, entry) {
		t.Errorf("detail slot and collection entry diverged:\n%+v\n%+v", selected, entry)
	}
}

func TestAddMaterialLink_DuplicateLink_RejectedBeforeRequest(t *testing.T) {
	detail := testProduct(steelLink(4))
	gw := &mockGateway{
		GetProductFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			p := detail.Clone()
			return &p, nil
		},
	}
	store := loadedStore(t, gw, []domain.Product{detail})
	if _, err := store.SelectDetail(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := store.AddMaterialLink(context.Background(), 1, 7, 2)

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if gw.addCalls != 0 {
		t.Errorf("expected no gateway call for duplicate link, got %d", gw.addCalls)
	}
}

func TestAddMaterialLink_QuantityBelowOne_Rejected(t *testing.T) {
	gw := &mockGateway{}
	store := loadedStore(t, gw, nil)

	_, err := store.AddMaterialLink(context.Background(), 1, 7, 0)

	if _, ok := apperrors.IsValidationError(err); !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if gw.addCalls != 0 {
		t.Errorf("expected no gateway call, got %d", gw.addCalls)
	}
}

func TestRemoveMaterialLink_RefetchesForFreshState(t *testing.T) {
	fresh := testProduct()
	gw := &mockGateway{
		RemoveRawMaterialFunc: func(ctx context.Context, productID, rawMaterialID int) error {
			return nil
		},
		GetProductFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			p := fresh.Clone()
			return &p, nil
		},
	}
	store := loadedStore(t, gw, []domain.Product{testProduct(steelLink(4))})

	result, err := store.RemoveMaterialLink(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gw.getCalls != 1 {
		t.Errorf("expected re-fetch after removal, got %d get calls", gw.getCalls)
	}
	if len(result.RawMaterials) != 0 {
		t.Errorf("expected empty link set after removal, got %+v", result.RawMaterials)
	}
	entry, _ := store.Get(1)
	if len(entry.RawMaterials) != 0 {
		t.Errorf("collection entry not reconciled from re-fetch")
	}
}

func TestAddThenRemove_RoundTripRestoresLinkSet(t *testing.T) {
	before := testProduct()
	after := testProduct(steelLink(3))
	gw := &mockGateway{
		AddRawMaterialFunc: func(ctx context.Context, productID, rawMaterialID, quantityRequired int) (*domain.Product, error) {
			p := after.Clone()
			return &p, nil
		},
		RemoveRawMaterialFunc: func(ctx context.Context, productID, rawMaterialID int) error {
			return nil
		},
		GetProductFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			p := before.Clone()
			return &p, nil
		},
	}
	store := loadedStore(t, gw, []domain.Product{before})

	if _, err := store.AddMaterialLink(context.Background(), 1, 7, 3); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := store.RemoveMaterialLink(context.Background(), 1, 7); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	entry, _ := store.Get(1)
	if !reflect.DeepEqual(entry.RawMaterials, before.RawMaterials) {
		t.Errorf("link set not restored after round trip: %+v", entry.RawMaterials)
	}
}

func TestUpdateMaterialLinkQuantity_Reconciles(t *testing.T) {
	updated := testProduct(steelLink(9))
	gw := &mockGateway{
		UpdateRawMaterialQuantityFunc: func(ctx context.Context, productID, rawMaterialID, quantity int) (*domain.Product, error) {
			p := updated.Clone()
			return &p, nil
		},
	}
	store := loadedStore(t, gw, []domain.Product{testProduct(steelLink(4))})

	result, err := store.UpdateMaterialLinkQuantity(context.Background(), 1, 7, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RawMaterials[0].QuantityRequired != 9 {
		t.Errorf("expected quantity 9, got %d", result.RawMaterials[0].QuantityRequired)
	}
	entry, _ := store.Get(1)
	if entry.RawMaterials[0].QuantityRequired != 9 {
		t.Errorf("collection entry not reconciled")
	}
}

func TestRelationalMutation_FailureLeavesStateUntouched(t *testing.T) {
	gw := &mockGateway{
		AddRawMaterialFunc: func(ctx context.Context, productID, rawMaterialID, quantityRequired int) (*domain.Product, error) {
			return nil, apperrors.NewOperationError(409, "CONFLICT", "raw material already linked to this product")
		},
	}
	original := testProduct(steelLink(4))
	store := loadedStore(t, gw, []domain.Product{original})

	_, err := store.AddMaterialLink(context.Background(), 1, 9, 2)

	if _, ok := apperrors.IsOperationError(err); !ok {
		t.Fatalf("expected OperationError, got %T", err)
	}
	entry, _ := store.Get(1)
	if !reflect.DeepEqual(entry.RawMaterials, original.RawMaterials) {
		t.Errorf("state mutated by failed operation")
	}
}

func TestDelete_RemovesEntryAndClearsDetail(t *testing.T) {
	detail := testProduct(steelLink(4))
	gw := &mockGateway{
		GetProductFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			p := detail.Clone()
			return &p, nil
		},
		DeleteProductFunc: func(ctx context.Context, id int) error {
			return nil
		},
	}
	store := loadedStore(t, gw, []domain.Product{detail})
	if _, err := store.SelectDetail(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Delete(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.Items()) != 0 {
		t.Errorf("expected empty collection")
	}
	if _, ok := store.Selected(); ok {
		t.Errorf("detail slot still holds deleted product")
	}

	// Deleting the same id again is a no-op.
	if err := store.Delete(context.Background(), 1); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}
