package rawmaterials

import (
	"context"
	"strings"

	"factoria/internal/domain"
	apperrors "factoria/internal/errors"
)

type Repository interface {
	List(ctx context.Context) ([]domain.RawMaterial, error)
	FindByID(ctx context.Context, id int) (*domain.RawMaterial, error)
	Insert(ctx context.Context, name string, stockQuantity int) (int, error)
	Update(ctx context.Context, id int, name string, stockQuantity int) error
	Delete(ctx context.Context, id int) error
	IncreaseStock(ctx context.Context, id, quantity int) error
	DecreaseStock(ctx context.Context, id, quantity int) error
	SetStock(ctx context.Context, id, quantity int) error
	FindLowStock(ctx context.Context, threshold int) ([]domain.RawMaterial, error)
	SearchByName(ctx context.Context, name string) ([]domain.RawMaterial, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.RawMaterial, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*domain.RawMaterial, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string, stockQuantity int) (*domain.RawMaterial, error) {
	if err := validateFields(name, stockQuantity); err != nil {
		return nil, err
	}
	id, err := s.repo.Insert(ctx, strings.TrimSpace(name), stockQuantity)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int, name string, stockQuantity int) (*domain.RawMaterial, error) {
	if err := validateFields(name, stockQuantity); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, strings.TrimSpace(name), stockQuantity); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) IncreaseStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	if err := validatePositiveQuantity(quantity); err != nil {
		return nil, err
	}
	if err := s.repo.IncreaseStock(ctx, id, quantity); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) DecreaseStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	if err := validatePositiveQuantity(quantity); err != nil {
		return nil, err
	}
	if err := s.repo.DecreaseStock(ctx, id, quantity); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) SetStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	if quantity < 0 {
		return nil, apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must not be negative",
		})
	}
	if err := s.repo.SetStock(ctx, id, quantity); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) ListLowStock(ctx context.Context, threshold int) ([]domain.RawMaterial, error) {
	if threshold <= 0 {
		threshold = domain.DefaultLowStockThreshold
	}
	return s.repo.FindLowStock(ctx, threshold)
}

func (s *Service) SearchByName(ctx context.Context, name string) ([]domain.RawMaterial, error) {
	return s.repo.SearchByName(ctx, strings.TrimSpace(name))
}

func validateFields(name string, stockQuantity int) error {
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
		return apperrors.NewValidationError("invalid raw material", details...)
	}
	return nil
}

func validatePositiveQuantity(quantity int) error {
	if quantity <= 0 {
		return apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be positive",
		})
	}
	return nil
}
