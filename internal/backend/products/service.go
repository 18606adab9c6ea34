package products

import (
	"context"
	"strings"

	"factoria/internal/domain"
	apperrors "factoria/internal/errors"

	"github.com/shopspring/decimal"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id int) (*domain.Product, error)
	Insert(ctx context.Context, name string, price decimal.Decimal, stock int) (int, error)
	Update(ctx context.Context, id int, name string, price decimal.Decimal, stock int) error
	Delete(ctx context.Context, id int) error
	AddLink(ctx context.Context, productID, rawMaterialID, quantityRequired int) error
	UpdateLinkQuantity(ctx context.Context, productID, rawMaterialID, quantity int) error
	RemoveLink(ctx context.Context, productID, rawMaterialID int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string, price decimal.Decimal, stock int) (*domain.Product, error) {
	if err := validateFields(name, price, stock); err != nil {
		return nil, err
	}
	id, err := s.repo.Insert(ctx, strings.TrimSpace(name), price, stock)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int, name string, price decimal.Decimal, stock int) (*domain.Product, error) {
	if err := validateFields(name, price, stock); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, strings.TrimSpace(name), price, stock); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// AddLink creates the link and returns the full updated product, so the
// client can reconcile from one authoritative body.
func (s *Service) AddLink(ctx context.Context, productID, rawMaterialID, quantityRequired int) (*domain.Product, error) {
	if quantityRequired < 1 {
		return nil, apperrors.NewValidationError("invalid link quantity", apperrors.ValidationDetail{
			Field:   "quantityRequired",
			Message: "quantity required must be at least 1",
		})
	}
	if err := s.repo.AddLink(ctx, productID, rawMaterialID, quantityRequired); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, productID)
}

func (s *Service) UpdateLinkQuantity(ctx context.Context, productID, rawMaterialID, quantity int) (*domain.Product, error) {
	if quantity < 1 {
		return nil, apperrors.NewValidationError("invalid link quantity", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}
	if err := s.repo.UpdateLinkQuantity(ctx, productID, rawMaterialID, quantity); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, productID)
}

func (s *Service) RemoveLink(ctx context.Context, productID, rawMaterialID int) error {
	return s.repo.RemoveLink(ctx, productID, rawMaterialID)
}

func validateFields(name string, price decimal.Decimal, stock int) error {
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
