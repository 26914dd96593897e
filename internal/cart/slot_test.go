package cart

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func slotsUnderTest(t *testing.T) map[string]Slot {
	t.Helper()

	file, err := NewFileSlot(filepath.Join(t.TempDir(), "carts"))
	require.NoError(t, err)

	sqlite, err := OpenSQLiteSlot(context.Background(), filepath.Join(t.TempDir(), "db", "carts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close() })

	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })

	return map[string]Slot{
		"memory": NewMemSlot(),
		"file":   file,
		"sqlite": sqlite,
		"redis":  NewRedisSlotFromClient(rc),
	}
}

func TestSlots_GetSetOverwrite(t *testing.T) {
	for name, slot := range slotsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := ProfileKey("7b0c/with:odd chars")

			require.NoError(t, slot.Ping(ctx))

			_, ok, err := slot.Get(ctx, key)
			require.NoError(t, err)
			require.False(t, ok, "fresh slot must be empty")

			require.NoError(t, slot.Set(ctx, key, []byte(`[{"id":1,"quantity":1}]`)))
			require.NoError(t, slot.Set(ctx, key, []byte(`[]`)))

			v, ok, err := slot.Get(ctx, key)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "[]", string(v))

			_, ok, err = slot.Get(ctx, ProfileKey("someone-else"))
			require.NoError(t, err)
			require.False(t, ok, "keys must not share state")
		})
	}
}

func TestMemSlot_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemSlot()

	in := []byte("[]")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'x'

	out, _, _ := s.Get(ctx, "k")
	require.Equal(t, "[]", string(out))
}

func TestSQLiteSlot_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "carts.db")

	s, err := OpenSQLiteSlot(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, DefaultKey, []byte(`[{"id":2,"quantity":3}]`)))
	require.NoError(t, s.Close())

	s, err = OpenSQLiteSlot(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	v, ok, err := s.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"id":2,"quantity":3}]`, string(v))
}
