package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Products(ctx context.Context, q ProductQuery) ([]Product, error) {
	query := url.Values{}
	if q.Search != "" {
		query.Set("search", q.Search)
	}
	if q.Category != "" {
		query.Set("category", q.Category)
	}

	var resp productsResponse
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (c *Client) ProductByID(ctx context.Context, id string) (Product, error) {
	var resp productResponse
	if err := c.do(ctx, http.MethodGet, "/products/"+id, nil, nil, &resp); err != nil {
		return Product{}, err
	}
	return resp.Product, nil
}
