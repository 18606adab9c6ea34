package rawmaterials

import (
	"context"
	"strings"
	"sync"

	"factoria/internal/domain"
	apperrors "factoria/internal/errors"
	"factoria/internal/gateway"

	"go.uber.org/zap"
)

// Store owns the normalized raw-materials collection. All mutations are
// reconciled from authoritative server responses: nothing is written
// locally on the strength of a request that has not succeeded, so a
// failed call always leaves last-known-good state in place.
type Store struct {
	gw     gateway.RawMaterialsGateway
	logger *zap.Logger

	mu       sync.RWMutex
	items    []domain.RawMaterial
	selected *domain.RawMaterial
	loaded   bool
	loading  bool
}

func NewStore(gw gateway.RawMaterialsGateway, logger *zap.Logger) *Store {
	return &Store{
		gw:     gw,
		logger: logger,
	}
}

// Load fetches the collection once. Subsequent calls are no-ops while a
// fetch is in flight or after one has completed; Refresh forces a fetch.
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
	items, err := s.gw.ListRawMaterials(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.logger.Warn("raw materials fetch failed", zap.Error(err))
		return err
	}
	s.items = items
	s.loaded = true
	return nil
}

// Items returns a snapshot of the collection; it never triggers a fetch.
func (s *Store) Items() []domain.RawMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.RawMaterial, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Get returns the collection entry with the given id, if present.
func (s *Store) Get(id int) (domain.RawMaterial, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.items {
		if m.ID == id {
			return m, true
		}
	}
	return domain.RawMaterial{}, false
}

func (s *Store) Create(ctx context.Context, name string, initialStock int) (*domain.RawMaterial, error) {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(name) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if initialStock < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "stockQuantity",
			Message: "stock quantity must not be negative",
		})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid raw material", details...)
	}

	created, err := s.gw.CreateRawMaterial(ctx, name, initialStock)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items = append(s.items, *created)
	s.mu.Unlock()

	s.logger.Info("raw material created", zap.Int("id", created.ID), zap.String("name", created.Name))
	out := *created
	return &out, nil
}

// Update replaces the matching collection entry with the server's
// response. An id absent from the local collection is a silent local
// no-op: the server remains the authority and the next refresh will
// pick the entity up.
func (s *Store) Update(ctx context.Context, id int, name string, stockQuantity int) (*domain.RawMaterial, error) {
	var details []apperrors.ValidationDetail
	if strings.TrimSpace(name) == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if stockQuantity < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "stockQuantity",
			Message: "stock quantity must not be negative",
		})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid raw material", details...)
	}

	updated, err := s.gw.UpdateRawMaterial(ctx, id, name, stockQuantity)
	if err != nil {
		return nil, err
	}

	s.replace(*updated)
	out := *updated
	return &out, nil
}

// Delete removes the entry after the server acknowledges the delete.
// Removing an id absent from the local collection is a no-op.
func (s *Store) Delete(ctx context.Context, id int) error {
	if err := s.gw.DeleteRawMaterial(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.items {
		if m.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	if s.selected != nil && s.selected.ID == id {
		s.selected = nil
	}
	return nil
}

// IncreaseStock adds quantity to the material's stock. The store does not
// retry: a failed adjustment surfaces as an error and leaves local state
// unchanged.
func (s *Store) IncreaseStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	updated, err := s.gw.IncreaseStock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	s.replace(*updated)
	out := *updated
	return &out, nil
}

// DecreaseStock subtracts quantity from the material's stock. Checking
// quantity against current stock is the orchestration layer's job; the
// store does not second-guess the server's authoritative result.
func (s *Store) DecreaseStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	updated, err := s.gw.DecreaseStock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	s.replace(*updated)
	out := *updated
	return &out, nil
}

// SetStock replaces the material's stock with an absolute quantity.
func (s *Store) SetStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	if quantity < 0 {
		return nil, apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must not be negative",
		})
	}
	updated, err := s.gw.SetStock(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	s.replace(*updated)
	out := *updated
	return &out, nil
}

// LowStock filters the current collection; it is recomputed on every
// call, never indexed.
func (s *Store) LowStock(threshold int) []domain.RawMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.RawMaterial
	for _, m := range s.items {
		if m.IsLowStock(threshold) {
			out = append(out, m)
		}
	}
	return out
}

// FetchLowStock asks the server for its low-stock view. The result is
// returned to the caller without touching the collection.
func (s *Store) FetchLowStock(ctx context.Context, threshold int) ([]domain.RawMaterial, error) {
	return s.gw.ListLowStock(ctx, threshold)
}

// Search asks the server for materials matching a name fragment; the
// result is a pass-through, not stored.
func (s *Store) Search(ctx context.Context, name string) ([]domain.RawMaterial, error) {
	return s.gw.SearchRawMaterials(ctx, name)
}

// Select fetches one raw material into the selected slot.
func (s *Store) Select(ctx context.Context, id int) (*domain.RawMaterial, error) {
	material, err := s.gw.GetRawMaterial(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	selected := *material
	s.selected = &selected
	s.mu.Unlock()

	out := *material
	return &out, nil
}

func (s *Store) Selected() (domain.RawMaterial, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return domain.RawMaterial{}, false
	}
	return *s.selected, true
}

func (s *Store) ClearSelected() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}

func (s *Store) replace(updated domain.RawMaterial) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.items {
		if m.ID == updated.ID {
			s.items[i] = updated
			return
		}
	}
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be positive",
		})
	}
	return nil
}
