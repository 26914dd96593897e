package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseSeed(t *testing.T) {
	raw := []byte(`
products:
  - id: 7
    name: Plain Tee
    price: 19.5
    image: assets/plain.png
  - id: 3
    name: Striped Tee
    price: 21
`)
	products, err := ParseSeed(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("len=%d", len(products))
	}
	if products[0] != (Product{ID: 7, Name: "Plain Tee", Price: 19.5, Image: "assets/plain.png"}) {
		t.Fatalf("products[0]=%+v", products[0])
	}
}

func TestParseSeed_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":        "products: []",
		"zero id":      "products: [{id: 0, name: x, price: 1}]",
		"no name":      "products: [{id: 1, name: ' ', price: 1}]",
		"negative":     "products: [{id: 1, name: x, price: -1}]",
		"duplicate id": "products: [{id: 1, name: x, price: 1}, {id: 1, name: y, price: 2}]",
		"not yaml":     "products: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSeed([]byte(raw))
			if !errors.Is(err, ErrInvalidSeed) {
				t.Fatalf("err=%v want ErrInvalidSeed", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("products: [{id: 5, name: Five, price: 5}]"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok, _ := s.Get(t.Context(), 5); !ok {
		t.Fatalf("product 5 missing")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
