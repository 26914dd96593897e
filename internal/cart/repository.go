package cart

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Repository loads and overwrites one persisted cart.
type Repository interface {
	Load(ctx context.Context) (Cart, error)
	Save(ctx context.Context, c Cart) error
}

// Slot is a durable key-value cell holding serialized carts. A missing key
// is ok == false, not an error.
type Slot interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}

// BlobRepository stores a cart as a JSON blob under a single slot key.
// A missing or unparsable blob loads as an empty cart; only failures of the
// slot itself are returned.
type BlobRepository struct {
	Slot Slot
	Key  string
	Log  *zap.Logger
}

func NewBlobRepository(slot Slot, key string, log *zap.Logger) *BlobRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &BlobRepository{Slot: slot, Key: key, Log: log}
}

func (r *BlobRepository) Load(ctx context.Context) (Cart, error) {
	raw, ok, err := r.Slot.Get(ctx, r.Key)
	if err != nil {
		return nil, fmt.Errorf("load cart %q: %w", r.Key, err)
	}
	if !ok {
		return Cart{}, nil
	}

	c, err := Decode(raw)
	if err != nil {
		r.Log.Warn("discarding unparsable cart", zap.String("key", r.Key), zap.Error(err))
		return Cart{}, nil
	}
	return c, nil
}

func (r *BlobRepository) Save(ctx context.Context, c Cart) error {
	raw, err := Encode(c)
	if err != nil {
		return err
	}
	if err := r.Slot.Set(ctx, r.Key, raw); err != nil {
		return fmt.Errorf("save cart %q: %w", r.Key, err)
	}
	return nil
}
