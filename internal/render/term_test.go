package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"TeeShop/internal/cart"
	"TeeShop/internal/catalog"
)

func TestTerminal_Cart(t *testing.T) {
	c := cart.Cart{{ID: 1, Quantity: 2}, {ID: 2, Quantity: 1}, {ID: 999, Quantity: 1}}
	v, err := BuildCart(context.Background(), c, catalog.NewStore())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Terminal{}.Render(&buf, Page{Mode: ModeCart, Year: 2026, Count: v.Count, Cart: &v}))

	out := buf.String()
	require.Contains(t, out, "Geometric Art Tee")
	require.Contains(t, out, "$50.00")
	require.Contains(t, out, "Total: $82.00")
	require.Contains(t, out, "1 line(s) reference products no longer sold")
	require.Contains(t, out, "Cart: 4 item(s)")
	require.NotContains(t, out, "\x1b[", "no ANSI codes when not writing to a terminal")
}

func TestTerminal_EmptyCartAndCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Terminal{}.Render(&buf, Page{Mode: ModeCart, Cart: &CartView{}}))
	require.Contains(t, buf.String(), "(empty)")
	require.Contains(t, buf.String(), "Total: $0.00")

	buf.Reset()
	v := BuildCatalog(catalog.DefaultProducts())
	require.NoError(t, Terminal{}.Render(&buf, Page{Mode: ModeCatalog, Catalog: &v, Flash: "Added Sunset Peaks Tee to cart."}))
	require.Contains(t, buf.String(), "Added Sunset Peaks Tee to cart.")
	require.Contains(t, buf.String(), "Futuristic Red Tee")
	require.Contains(t, buf.String(), "$30.00")
}
