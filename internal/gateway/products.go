package gateway

import (
	"context"
	"fmt"
	"net/http"

	"factoria/internal/domain"

	"github.com/shopspring/decimal"
)

const productsEndpoint = "/products"

type productPayload struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock int             `json:"stock"`
}

type addRawMaterialPayload struct {
	RawMaterialID    int `json:"rawMaterialId"`
	QuantityRequired int `json:"quantityRequired"`
}

type linkQuantityPayload struct {
	Quantity int `json:"quantity"`
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.do(ctx, http.MethodGet, productsEndpoint, nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("%s/%d", productsEndpoint, id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, name string, price decimal.Decimal, stock int) (*domain.Product, error) {
	var product domain.Product
	payload := productPayload{Name: name, Price: price, Stock: stock}
	if err := c.do(ctx, http.MethodPost, productsEndpoint, nil, payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id int, name string, price decimal.Decimal, stock int) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("%s/%d", productsEndpoint, id)
	payload := productPayload{Name: name, Price: price, Stock: stock}
	if err := c.do(ctx, http.MethodPut, path, nil, payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	path := fmt.Sprintf("%s/%d", productsEndpoint, id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) AddRawMaterial(ctx context.Context, productID, rawMaterialID, quantityRequired int) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("%s/%d/raw-materials", productsEndpoint, productID)
	payload := addRawMaterialPayload{
		RawMaterialID:    rawMaterialID,
		QuantityRequired: quantityRequired,
	}
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateRawMaterialQuantity(ctx context.Context, productID, rawMaterialID, quantity int) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("%s/%d/raw-materials/%d", productsEndpoint, productID, rawMaterialID)
	if err := c.do(ctx, http.MethodPut, path, nil, linkQuantityPayload{Quantity: quantity}, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// RemoveRawMaterial acknowledges removal only. The response body shape is
// not part of the contract; callers re-fetch the product for fresh state.
func (c *Client) RemoveRawMaterial(ctx context.Context, productID, rawMaterialID int) error {
	path := fmt.Sprintf("%s/%d/raw-materials/%d", productsEndpoint, productID, rawMaterialID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
