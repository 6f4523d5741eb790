// Package cart derives the displayable cart from server responses. It is
// the single source of truth for what the header badge and the cart page
// show; it holds no state of its own and is rebuilt from a fresh fetch after
// every mutating cart call.
package cart

import (
	"errors"

	"shopfront/internal/api"
)

var (
	// ErrNoChange means the requested quantity was below 1; the caller
	// performs no network call and leaves the cart as it is.
	ErrNoChange = errors.New("cart: quantity must be at least 1")
	// ErrInsufficientStock means the requested quantity exceeds the stock
	// the product snapshot reports; the request is never submitted.
	ErrInsufficientStock = errors.New("cart: insufficient stock")
)

type Line struct {
	Item     api.CartItem
	Subtotal float64
}

type View struct {
	Lines      []Line
	TotalPrice float64
	// ItemCount is the number of distinct lines, not a sum of quantities.
	// It is what the header badge shows.
	ItemCount int
}

func (v View) Empty() bool {
	return len(v.Lines) == 0
}

// BuildView derives the display model from a freshly fetched cart. Line
// subtotals are display-only arithmetic; the persisted total stays whatever
// the server said it is.
func BuildView(c api.Cart) View {
	view := View{
		Lines:      make([]Line, 0, len(c.Items)),
		TotalPrice: c.TotalPrice,
		ItemCount:  len(c.Items),
	}
	for _, item := range c.Items {
		view.Lines = append(view.Lines, Line{
			Item:     item,
			Subtotal: item.Product.Price * float64(item.Quantity),
		})
	}
	return view
}

// CheckQuantity gates a quantity update before any network call is made.
func CheckQuantity(quantity, stock int) error {
	if quantity < 1 {
		return ErrNoChange
	}
	if quantity > stock {
		return ErrInsufficientStock
	}
	return nil
}
