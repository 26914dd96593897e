// Package cart holds the cart value, its persistence and the operations a
// shopper performs on it.
//
// A cart is an ordered list of lines keyed by product id. Every operation on
// Cart returns a new value; persistence is whole-blob overwrite through a
// Repository.
package cart

import (
	"encoding/json"
	"fmt"
	"slices"
)

// DefaultKey is the slot key of a single-profile cart.
const DefaultKey = "cart"

// ProfileKey is the slot key holding one profile's cart.
func ProfileKey(profile string) string {
	return DefaultKey + ":" + profile
}

// Line pairs a product id with a quantity of at least one.
type Line struct {
	ID       int `json:"id"`
	Quantity int `json:"quantity"`
}

type Cart []Line

func (c Cart) index(id int) int {
	return slices.IndexFunc(c, func(l Line) bool { return l.ID == id })
}

func (c Cart) Find(id int) (Line, bool) {
	if i := c.index(id); i >= 0 {
		return c[i], true
	}
	return Line{}, false
}

// AddOne increments the line for id or appends a new line with quantity 1.
func (c Cart) AddOne(id int) Cart {
	out := slices.Clone(c)
	if i := out.index(id); i >= 0 {
		out[i].Quantity++
		return out
	}
	return append(out, Line{ID: id, Quantity: 1})
}

// ChangeQuantity adds delta to the line for id, deleting it when the result
// is not positive. found is false when no line exists; c is returned as is.
func (c Cart) ChangeQuantity(id, delta int) (out Cart, found bool) {
	i := c.index(id)
	if i < 0 {
		return c, false
	}

	out = slices.Clone(c)
	out[i].Quantity += delta
	if out[i].Quantity <= 0 {
		out = slices.Delete(out, i, i+1)
	}
	return out, true
}

func (c Cart) Remove(id int) Cart {
	return slices.DeleteFunc(slices.Clone(c), func(l Line) bool { return l.ID == id })
}

// Count is the total number of items, the value shown next to the cart link.
func (c Cart) Count() int {
	n := 0
	for _, l := range c {
		n += l.Quantity
	}
	return n
}

// Encode serializes c as a JSON array of {id, quantity}. A nil cart encodes
// as [].
func Encode(c Cart) ([]byte, error) {
	if c == nil {
		c = Cart{}
	}
	return json.Marshal(c)
}

// Decode parses a stored blob. Lines with a non-positive quantity are
// dropped and repeated ids are folded into their first occurrence.
func Decode(raw []byte) (Cart, error) {
	var in []Line
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	out := make(Cart, 0, len(in))
	for _, l := range in {
		if l.Quantity < 1 {
			continue
		}
		if i := out.index(l.ID); i >= 0 {
			out[i].Quantity += l.Quantity
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
