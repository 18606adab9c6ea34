package products

import (
	"context"
	"strings"
	"sync"

	"factoria/internal/domain"
	apperrors "factoria/internal/errors"
	"factoria/internal/gateway"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store owns the normalized products collection plus one selected-detail
// slot. The detail slot holds a value copy of a collection member, not a
// reference: the two are brought back into agreement only by an explicit
// reconciliation from a single server response, so a renderer never sees
// one updated and the other stale for the same operation.
//
// Two relational mutations racing against the same product id are not
// serialized; the last response to resolve overwrites the detail slot.
type Store struct {
	gw     gateway.ProductsGateway
	logger *zap.Logger

	mu       sync.RWMutex
	items    []domain.Product
	selected *domain.Product
	loaded   bool
	loading  bool
}

func NewStore(gw gateway.ProductsGateway, logger *zap.Logger) *Store {
	return &Store{
		gw:     gw,
		logger: logger,
	}
}

func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.loaded || s.loading {
		s.mu.Unlock()
		return nil
	}
	s.loading = true
	s.mu.Unlock()

	return s.fetchAll(ctx)
}

func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	return s.fetchAll(ctx)
}

func (s *Store) fetchAll(ctx context.Context) error {
	items, err := s.gw.ListProducts(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.logger.Warn("products fetch failed", zap.Error(err))
		return err
	}
	s.items = items
	s.loaded = true
	return nil
}

func (s *Store) Items() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.items))
	for i, p := range s.items {
		out[i] = p.Clone()
	}
	return out
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Get(id int) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.items {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return domain.Product{}, false
}

func (s *Store) Create(ctx context.Context, name string, price decimal.Decimal, stock int) (*domain.Product, error) {
	if err := validateProductFields(name, price, stock); err != nil {
		return nil, err
	}

	created, err := s.gw.CreateProduct(ctx, name, price, stock)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items = append(s.items, created.Clone())
	s.mu.Unlock()

	s.logger.Info("product created", zap.Int("id", created.ID), zap.String("name", created.Name))
	out := created.Clone()
	return &out, nil
}

func (s *Store) Update(ctx context.Context, id int, name string, price decimal.Decimal, stock int) (*domain.Product, error) {
	if err := validateProductFields(name, price, stock); err != nil {
		return nil, err
	}

	updated, err := s.gw.UpdateProduct(ctx, id, name, price, stock)
	if err != nil {
		return nil, err
	}

	s.reconcile(*updated)
	out := updated.Clone()
	return &out, nil
}

// Delete removes the collection entry after the server acknowledges, and
// clears the detail slot when it held the deleted product. Deleting an id
// absent from the local collection is a no-op.
func (s *Store) Delete(ctx context.Context, id int) error {
	if err := s.gw.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.items {
		if p.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	return nil
}

// SelectDetail fetches one product into the detail slot. The detail fetch
// is independent of the collection list and may carry a richer object
// (the full link list) than list items do.
func (s *Store) SelectDetail(ctx context.Context, id int) (*domain.Product, error) {
	product, err := s.gw.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	selected := product.Clone()
	s.selected = &selected
	s.mu.Unlock()

	out := product.Clone()
	return &out, nil
}

func (s *Store) Selected() (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return domain.Product{}, false
	}
	return s.selected.Clone(), true
}

func (s *Store) ClearSelected() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}

// AddMaterialLink creates a link between the product and a raw material.
// The duplicate check against the detail slot saves a wasted round trip;
// the server stays the final arbiter of uniqueness. On success the server
// returns the entire updated product and both the collection entry and
// the detail slot are replaced from it.
func (s *Store) AddMaterialLink(ctx context.Context, productID, rawMaterialID, quantityRequired int) (*domain.Product, error) {
	if quantityRequired < 1 {
		return nil, apperrors.NewValidationError("invalid link quantity", apperrors.ValidationDetail{
			Field:   "quantityRequired",
			Message: "quantity required must be at least 1",
		})
	}

	s.mu.RLock()
	alreadyLinked := s.selected != nil && s.selected.ID == productID && s.selected.HasLink(rawMaterialID)
	s.mu.RUnlock()
	if alreadyLinked {
		return nil, apperrors.NewValidationError("raw material already linked", apperrors.ValidationDetail{
			Field:   "rawMaterialId",
			Message: "raw material is already linked to this product",
		})
	}

	updated, err := s.gw.AddRawMaterial(ctx, productID, rawMaterialID, quantityRequired)
	if err != nil {
		return nil, err
	}

	s.reconcile(*updated)
	s.logger.Info("raw material linked",
		zap.Int("productId", productID),
		zap.Int("rawMaterialId", rawMaterialID),
		zap.Int("quantityRequired", quantityRequired))
	out := updated.Clone()
	return &out, nil
}

// UpdateMaterialLinkQuantity changes the required quantity on an existing
// link; reconciliation is identical to AddMaterialLink.
func (s *Store) UpdateMaterialLinkQuantity(ctx context.Context, productID, rawMaterialID, quantity int) (*domain.Product, error) {
	if quantity < 1 {
		return nil, apperrors.NewValidationError("invalid link quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}

	updated, err := s.gw.UpdateRawMaterialQuantity(ctx, productID, rawMaterialID, quantity)
	if err != nil {
		return nil, err
	}

	s.reconcile(*updated)
	out := updated.Clone()
	return &out, nil
}

// RemoveMaterialLink deletes a link. The delete response's shape is not
// part of the contract, so after a successful acknowledgment the product
// is always re-fetched by id and both the collection entry and the detail
// slot are reconciled from that authoritative re-fetch.
func (s *Store) RemoveMaterialLink(ctx context.Context, productID, rawMaterialID int) (*domain.Product, error) {
	if err := s.gw.RemoveRawMaterial(ctx, productID, rawMaterialID); err != nil {
		return nil, err
	}

	fresh, err := s.gw.GetProduct(ctx, productID)
	if err != nil {
		s.logger.Warn("re-fetch after link removal failed; local copy is stale until next refresh",
			zap.Int("productId", productID), zap.Error(err))
		return nil, err
	}

	s.reconcile(*fresh)
	s.logger.Info("raw material unlinked",
		zap.Int("productId", productID),
		zap.Int("rawMaterialId", rawMaterialID))
	out := fresh.Clone()
	return &out, nil
}

// reconcile replaces the collection entry and, when it holds the same
// product id, the detail slot from one server response under a single
// lock hold.
func (s *Store) reconcile(updated domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.items {
		if p.ID == updated.ID {
			s.items[i] = updated.Clone()
			break
		}
	}
	if s.selected != nil && s.selected.ID == updated.ID {
		selected := updated.Clone()
		s.selected = &selected
	}
}

func validateProductFields(name string, price decimal.Decimal, stock int) error {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(name) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if price.IsNegative() {
		details = append(details, apperrors.ValidationDetail{
			Field:   "price",
			Message: "price must not be negative",
		})
	}
	if stock < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "stock",
			Message: "stock must not be negative",
		})
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid product", details...)
	}
	return nil
}
