package api

import (
	"context"
	"net/http"
)

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (Order, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, &resp); err != nil {
		return Order{}, err
	}
	return resp.Order, nil
}

func (c *Client) UserOrders(ctx context.Context) ([]Order, error) {
	var resp ordersResponse
	if err := c.do(ctx, http.MethodGet, "/orders/user-orders", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (c *Client) OrderByID(ctx context.Context, id string) (Order, error) {
	var resp orderResponse
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, nil, &resp); err != nil {
		return Order{}, err
	}
	return resp.Order, nil
}
