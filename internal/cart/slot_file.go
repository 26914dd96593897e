package cart

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// FileSlot keeps one JSON file per key under Dir. Writes go through a temp
// file and rename so a reader never sees a torn blob.
type FileSlot struct {
	Dir string
}

func NewFileSlot(dir string) (*FileSlot, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cart dir: %w", err)
	}
	return &FileSlot{Dir: dir}, nil
}

func (s *FileSlot) path(key string) string {
	return filepath.Join(s.Dir, url.QueryEscape(key)+".json")
}

func (s *FileSlot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (s *FileSlot) Set(ctx context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.Dir, ".cart-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

func (s *FileSlot) Ping(ctx context.Context) error {
	_, err := os.Stat(s.Dir)
	return err
}
