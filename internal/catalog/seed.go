package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidSeed = errors.New("invalid catalog seed")

func DefaultProducts() []Product {
	return []Product{
		{ID: 1, Name: "Geometric Art Tee", Price: 25.00, Image: "assets/tshirt1.png"},
		{ID: 2, Name: "Golden Elegance Tee", Price: 32.00, Image: "assets/tshirt2.png"},
		{ID: 3, Name: "Sunset Peaks Tee", Price: 28.00, Image: "assets/tshirt3.png"},
		{ID: 4, Name: "Futuristic Red Tee", Price: 30.00, Image: "assets/tshirt4.png"},
	}
}

type seedFile struct {
	Products []Product `yaml:"products"`
}

// LoadFile reads a YAML product list:
//
//	products:
//	  - id: 1
//	    name: Geometric Art Tee
//	    price: 25.00
//	    image: assets/tshirt1.png
func LoadFile(path string) (*MemStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}
	products, err := ParseSeed(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return NewMemStore(products...), nil
}

func ParseSeed(raw []byte) ([]Product, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	if err := validate(f.Products); err != nil {
		return nil, err
	}
	return f.Products, nil
}

func validate(products []Product) error {
	if len(products) == 0 {
		return fmt.Errorf("%w: no products", ErrInvalidSeed)
	}

	seen := make(map[int]struct{}, len(products))
	for i, p := range products {
		switch {
		case p.ID <= 0:
			return fmt.Errorf("%w: product #%d: id must be positive", ErrInvalidSeed, i)
		case strings.TrimSpace(p.Name) == "":
			return fmt.Errorf("%w: product %d: name required", ErrInvalidSeed, p.ID)
		case p.Price < 0:
			return fmt.Errorf("%w: product %d: negative price", ErrInvalidSeed, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidSeed, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
