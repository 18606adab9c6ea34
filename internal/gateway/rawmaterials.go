package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"factoria/internal/domain"
)

const rawMaterialsEndpoint = "/raw-materials"

type rawMaterialPayload struct {
	Name          string `json:"name"`
	StockQuantity int    `json:"stockQuantity"`
}

type stockQuantityPayload struct {
	Quantity int `json:"quantity"`
}

func (c *Client) ListRawMaterials(ctx context.Context) ([]domain.RawMaterial, error) {
	var materials []domain.RawMaterial
	if err := c.do(ctx, http.MethodGet, rawMaterialsEndpoint, nil, nil, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

func (c *Client) GetRawMaterial(ctx context.Context, id int) (*domain.RawMaterial, error) {
	var material domain.RawMaterial
	path := fmt.Sprintf("%s/%d", rawMaterialsEndpoint, id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &material); err != nil {
		return nil, err
	}
	return &material, nil
}

func (c *Client) CreateRawMaterial(ctx context.Context, name string, stockQuantity int) (*domain.RawMaterial, error) {
	var material domain.RawMaterial
	payload := rawMaterialPayload{Name: name, StockQuantity: stockQuantity}
	if err := c.do(ctx, http.MethodPost, rawMaterialsEndpoint, nil, payload, &material); err != nil {
		return nil, err
	}
	return &material, nil
}

func (c *Client) UpdateRawMaterial(ctx context.Context, id int, name string, stockQuantity int) (*domain.RawMaterial, error) {
	var material domain.RawMaterial
	path := fmt.Sprintf("%s/%d", rawMaterialsEndpoint, id)
	payload := rawMaterialPayload{Name: name, StockQuantity: stockQuantity}
	if err := c.do(ctx, http.MethodPut, path, nil, payload, &material); err != nil {
		return nil, err
	}
	return &material, nil
}

func (c *Client) DeleteRawMaterial(ctx context.Context, id int) error {
	path := fmt.Sprintf("%s/%d", rawMaterialsEndpoint, id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) IncreaseStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	var material domain.RawMaterial
	path := fmt.Sprintf("%s/%d/stock/increase", rawMaterialsEndpoint, id)
	if err := c.do(ctx, http.MethodPost, path, nil, stockQuantityPayload{Quantity: quantity}, &material); err != nil {
		return nil, err
	}
	return &material, nil
}

func (c *Client) DecreaseStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	var material domain.RawMaterial
	path := fmt.Sprintf("%s/%d/stock/decrease", rawMaterialsEndpoint, id)
	if err := c.do(ctx, http.MethodPost, path, nil, stockQuantityPayload{Quantity: quantity}, &material); err != nil {
		return nil, err
	}
	return &material, nil
}

func (c *Client) SetStock(ctx context.Context, id, quantity int) (*domain.RawMaterial, error) {
	var material domain.RawMaterial
	path := fmt.Sprintf("%s/%d/stock", rawMaterialsEndpoint, id)
	query := url.Values{"quantity": []string{strconv.Itoa(quantity)}}
	if err := c.do(ctx, http.MethodPatch, path, query, nil, &material); err != nil {
		return nil, err
	}
	return &material, nil
}

func (c *Client) ListLowStock(ctx context.Context, threshold int) ([]domain.RawMaterial, error) {
	var materials []domain.RawMaterial
	query := url.Values{"threshold": []string{strconv.Itoa(threshold)}}
	if err := c.do(ctx, http.MethodGet, rawMaterialsEndpoint+"/low-stock", query, nil, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}

func (c *Client) SearchRawMaterials(ctx context.Context, name string) ([]domain.RawMaterial, error) {
	var materials []domain.RawMaterial
	query := url.Values{"name": []string{name}}
	if err := c.do(ctx, http.MethodGet, rawMaterialsEndpoint+"/search", query, nil, &materials); err != nil {
		return nil, err
	}
	return materials, nil
}
