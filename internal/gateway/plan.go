package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"factoria/internal/domain"
)

const productionPlanEndpoint = "/production-plan"

func (c *Client) GetProductionPlan(ctx context.Context) (*domain.ProductionPlan, error) {
	var plan domain.ProductionPlan
	if err := c.do(ctx, http.MethodGet, productionPlanEndpoint, nil, nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *Client) GetProductionForProduct(ctx context.Context, productID int) (*domain.ProductProduction, error) {
	var production domain.ProductProduction
	path := fmt.Sprintf("%s/product/%d", productionPlanEndpoint, productID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &production); err != nil {
		return nil, err
	}
	return &production, nil
}

func (c *Client) CanProduce(ctx context.Context, productID, quantity int) (*domain.CanProduceResult, error) {
	var result domain.CanProduceResult
	path := fmt.Sprintf("%s/product/%d/can-produce", productionPlanEndpoint, productID)
	query := url.Values{"quantity": []string{strconv.Itoa(quantity)}}
	if err := c.do(ctx, http.MethodGet, path, query, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
