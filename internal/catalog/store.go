package catalog

import "context"

// Product is an immutable catalog entry. Price is a plain decimal amount;
// display rounding happens in the renderers.
type Product struct {
	ID    int     `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
	Image string  `json:"image" yaml:"image"`
}

// Store is the read-only product source. A missing product is reported
// with ok == false, never as an error.
type Store interface {
	Ping(ctx context.Context) error
	ListSortedByID(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (Product, bool, error)
}
