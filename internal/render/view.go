// Package render projects catalog and cart data into page views and draws
// them as HTML or terminal text. Every render is a full redraw from the
// data it is given.
package render

import (
	"context"
	"fmt"
	"io"

	"TeeShop/internal/cart"
	"TeeShop/internal/catalog"
)

type Mode int

const (
	ModeCatalog Mode = iota
	ModeCart
)

func (m Mode) String() string {
	switch m {
	case ModeCatalog:
		return "catalog"
	case ModeCart:
		return "cart"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// FormatPrice renders a currency amount with two decimals.
func FormatPrice(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

type Card struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
}

type CatalogView struct {
	Cards []Card `json:"cards"`
}

func BuildCatalog(products []catalog.Product) CatalogView {
	cards := make([]Card, 0, len(products))
	for _, p := range products {
		cards = append(cards, Card{ID: p.ID, Name: p.Name, Image: p.Image, Price: p.Price})
	}
	return CatalogView{Cards: cards}
}

type Row struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CartView is the cart table. Rows and Total cover only lines whose product
// exists; Count sums every stored line, and Dangling lists the ids that
// were skipped.
type CartView struct {
	Rows     []Row   `json:"rows"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
	Dangling []int   `json:"dangling,omitempty"`
}

func BuildCart(ctx context.Context, c cart.Cart, lookup cart.ProductLookup) (CartView, error) {
	v := CartView{Rows: make([]Row, 0, len(c)), Count: c.Count()}

	for _, l := range c {
		p, ok, err := lookup.Get(ctx, l.ID)
		if err != nil {
			return CartView{}, err
		}
		if !ok {
			v.Dangling = append(v.Dangling, l.ID)
			continue
		}

		sub := p.Price * float64(l.Quantity)
		v.Total += sub
		v.Rows = append(v.Rows, Row{
			ID:       p.ID,
			Name:     p.Name,
			Image:    p.Image,
			Price:    p.Price,
			Quantity: l.Quantity,
			Subtotal: sub,
		})
	}
	return v, nil
}

// Page is everything one screen shows. Exactly one of Catalog and Cart is
// set, matching Mode.
type Page struct {
	Mode    Mode
	Year    int
	Count   int
	Flash   string
	Catalog *CatalogView
	Cart    *CartView
}

type Renderer interface {
	Render(w io.Writer, p Page) error
}
