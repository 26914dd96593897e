package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCart_AddOne(t *testing.T) {
	var c Cart
	for range 5 {
		c = c.AddOne(1)
	}
	c = c.AddOne(2)

	want := Cart{{ID: 1, Quantity: 5}, {ID: 2, Quantity: 1}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("cart mismatch (-want +got):\n%s", diff)
	}
}

func TestCart_OperationsDoNotMutateReceiver(t *testing.T) {
	c := Cart{{ID: 1, Quantity: 2}}

	_ = c.AddOne(1)
	_, _ = c.ChangeQuantity(1, -2)
	_ = c.Remove(1)

	if c[0].Quantity != 2 || len(c) != 1 {
		t.Fatalf("receiver changed: %+v", c)
	}
}

func TestCart_ChangeQuantity(t *testing.T) {
	base := Cart{{ID: 1, Quantity: 2}, {ID: 2, Quantity: 1}}

	cases := []struct {
		name      string
		id, delta int
		want      Cart
		found     bool
	}{
		{"increment", 1, 1, Cart{{ID: 1, Quantity: 3}, {ID: 2, Quantity: 1}}, true},
		{"decrement", 1, -1, Cart{{ID: 1, Quantity: 1}, {ID: 2, Quantity: 1}}, true},
		{"to zero removes", 2, -1, Cart{{ID: 1, Quantity: 2}}, true},
		{"below zero removes", 1, -5, Cart{{ID: 2, Quantity: 1}}, true},
		{"missing is noop", 3, 1, base, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := base.ChangeQuantity(tc.id, tc.delta)
			if found != tc.found {
				t.Fatalf("found=%v want=%v", found, tc.found)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("cart mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCart_RemoveIsIdempotent(t *testing.T) {
	c := Cart{{ID: 1, Quantity: 2}, {ID: 2, Quantity: 1}}

	once := c.Remove(1)
	twice := once.Remove(1)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("second remove changed cart:\n%s", diff)
	}
	if _, ok := once.Find(1); ok {
		t.Fatalf("line 1 still present")
	}
}

func TestCart_Count(t *testing.T) {
	c := Cart{{ID: 1, Quantity: 2}, {ID: 999, Quantity: 3}}
	if got := c.Count(); got != 5 {
		t.Fatalf("count=%d want=5", got)
	}
}

func TestDecode(t *testing.T) {
	cases := map[string]struct {
		raw  string
		want Cart
	}{
		"plain":              {`[{"id":1,"quantity":2}]`, Cart{{ID: 1, Quantity: 2}}},
		"null":               {`null`, Cart{}},
		"empty":              {`[]`, Cart{}},
		"drops non-positive": {`[{"id":1,"quantity":0},{"id":2,"quantity":-1},{"id":3,"quantity":1}]`, Cart{{ID: 3, Quantity: 1}}},
		"merges duplicates":  {`[{"id":1,"quantity":1},{"id":2,"quantity":1},{"id":1,"quantity":2}]`, Cart{{ID: 1, Quantity: 3}, {ID: 2, Quantity: 1}}},
		"ignores extra keys": {`[{"id":4,"quantity":1,"name":"x"}]`, Cart{{ID: 4, Quantity: 1}}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Decode([]byte(tc.raw))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(tc.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("cart mismatch (-want +got):\n%s", diff)
			}
		})
	}

	for _, raw := range []string{`{`, `{"id":1}`, `"cart"`, `[{"id":"one","quantity":1}]`} {
		if _, err := Decode([]byte(raw)); err == nil {
			t.Fatalf("Decode(%s): expected error", raw)
		}
	}
}

func TestEncode_Layout(t *testing.T) {
	raw, err := Encode(Cart{{ID: 1, Quantity: 2}, {ID: 2, Quantity: 1}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got, want := string(raw), `[{"id":1,"quantity":2},{"id":2,"quantity":1}]`; got != want {
		t.Fatalf("encoded=%s want=%s", got, want)
	}

	raw, _ = Encode(nil)
	if string(raw) != "[]" {
		t.Fatalf("nil cart encoded as %s", raw)
	}
}
