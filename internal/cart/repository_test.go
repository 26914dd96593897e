package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingSlot struct{ err error }

func (f failingSlot) Get(context.Context, string) ([]byte, bool, error) { return nil, false, f.err }
func (f failingSlot) Set(context.Context, string, []byte) error         { return f.err }
func (f failingSlot) Ping(context.Context) error                        { return f.err }

func TestBlobRepository_AbsentOrMalformedIsEmpty(t *testing.T) {
	ctx := context.Background()
	slot := NewMemSlot()
	repo := NewBlobRepository(slot, DefaultKey, zap.NewNop())

	c, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, c)

	for _, raw := range []string{"not json", `{"id":1}`, ""} {
		require.NoError(t, slot.Set(ctx, DefaultKey, []byte(raw)))
		c, err := repo.Load(ctx)
		require.NoError(t, err, "raw=%q", raw)
		require.Empty(t, c, "raw=%q", raw)
	}
}

func TestBlobRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewBlobRepository(NewMemSlot(), ProfileKey("p1"), nil)

	carts := []Cart{
		{},
		{{ID: 1, Quantity: 1}},
		{{ID: 3, Quantity: 7}, {ID: 1, Quantity: 2}, {ID: 4, Quantity: 1}},
	}
	for _, want := range carts {
		require.NoError(t, repo.Save(ctx, want))
		got, err := repo.Load(ctx)
		require.NoError(t, err)
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestBlobRepository_SaveOverwritesWholeBlob(t *testing.T) {
	ctx := context.Background()
	slot := NewMemSlot()
	repo := NewBlobRepository(slot, DefaultKey, nil)

	require.NoError(t, repo.Save(ctx, Cart{{ID: 1, Quantity: 1}, {ID: 2, Quantity: 1}}))
	require.NoError(t, repo.Save(ctx, Cart{{ID: 3, Quantity: 1}}))

	raw, _, _ := slot.Get(ctx, DefaultKey)
	require.JSONEq(t, `[{"id":3,"quantity":1}]`, string(raw))
}

func TestBlobRepository_SlotFailureSurfaces(t *testing.T) {
	boom := errors.New("disk on fire")
	repo := NewBlobRepository(failingSlot{err: boom}, DefaultKey, nil)

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, boom)

	err = repo.Save(context.Background(), Cart{{ID: 1, Quantity: 1}})
	require.ErrorIs(t, err, boom)
}
