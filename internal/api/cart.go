package api

import (
	"context"
	"net/http"
)

// Cart fetches the authoritative cart for the current session. Mutating
// callers must re-fetch through this after every add/remove/update/clear;
// the client never trusts a locally patched cart for anything but the
// render already in progress.
func (c *Client) Cart(ctx context.Context) (Cart, error) {
	if c.token == "" {
		return Cart{}, &Error{Kind: KindUnauthenticated, Message: "please log in to view your cart"}
	}
	var resp cartResponse
	if err := c.do(ctx, http.MethodGet, "/cart", nil, nil, &resp); err != nil {
		return Cart{}, err
	}
	return resp.Cart, nil
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity,omitempty"`
}

func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) error {
	req := cartItemRequest{ProductID: productID, Quantity: quantity}
	return c.do(ctx, http.MethodPost, "/cart/add", nil, req, nil)
}

func (c *Client) RemoveFromCart(ctx context.Context, productID string) error {
	req := cartItemRequest{ProductID: productID}
	return c.do(ctx, http.MethodPost, "/cart/remove", nil, req, nil)
}

func (c *Client) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	req := cartItemRequest{ProductID: productID, Quantity: quantity}
	return c.do(ctx, http.MethodPost, "/cart/update-quantity", nil, req, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/cart/clear", nil, nil, nil)
}
