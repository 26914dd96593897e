package cart

import (
	"context"

	"go.uber.org/zap"

	"TeeShop/internal/catalog"
)

// ProductLookup is the part of the catalog the cart needs.
type ProductLookup interface {
	Get(ctx context.Context, id int) (catalog.Product, bool, error)
}

// Service applies shopper actions to a persisted cart. Every mutation loads,
// changes and saves the whole cart before returning.
type Service struct {
	Catalog ProductLookup
	Log     *zap.Logger
	Metrics *Metrics
}

func NewService(lookup ProductLookup, log *zap.Logger, m *Metrics) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{Catalog: lookup, Log: log, Metrics: m}
}

func (s *Service) Load(ctx context.Context, repo Repository) (Cart, error) {
	return repo.Load(ctx)
}

// AddOne adds a single unit of product id. An unknown product leaves the
// cart untouched and reports ok == false.
func (s *Service) AddOne(ctx context.Context, repo Repository, id int) (p catalog.Product, ok bool, err error) {
	p, ok, err = s.Catalog.Get(ctx, id)
	if err != nil {
		s.Metrics.observe(opAdd, resultError)
		return catalog.Product{}, false, err
	}
	if !ok {
		s.Log.Debug("add of unknown product ignored", zap.Int("product_id", id))
		s.Metrics.observe(opAdd, resultNoop)
		return catalog.Product{}, false, nil
	}

	err = s.mutate(ctx, repo, opAdd, func(c Cart) (Cart, bool) { return c.AddOne(id), true })
	if err != nil {
		return catalog.Product{}, false, err
	}
	return p, true, nil
}

// ChangeQuantity adds delta to the line for id. A line that drops to zero
// or below is removed; a missing line is a no-op.
func (s *Service) ChangeQuantity(ctx context.Context, repo Repository, id, delta int) error {
	return s.mutate(ctx, repo, opChange, func(c Cart) (Cart, bool) { return c.ChangeQuantity(id, delta) })
}

func (s *Service) Remove(ctx context.Context, repo Repository, id int) error {
	return s.mutate(ctx, repo, opRemove, func(c Cart) (Cart, bool) { return c.Remove(id), true })
}

// Prune drops lines whose product is no longer in the catalog and returns
// their ids. Nothing is saved when no line dangles.
func (s *Service) Prune(ctx context.Context, repo Repository) ([]int, error) {
	c, err := repo.Load(ctx)
	if err != nil {
		s.Metrics.observe(opPrune, resultError)
		return nil, err
	}

	kept := make(Cart, 0, len(c))
	var dropped []int
	for _, l := range c {
		_, ok, err := s.Catalog.Get(ctx, l.ID)
		if err != nil {
			s.Metrics.observe(opPrune, resultError)
			return nil, err
		}
		if !ok {
			dropped = append(dropped, l.ID)
			continue
		}
		kept = append(kept, l)
	}

	if len(dropped) == 0 {
		s.Metrics.observe(opPrune, resultNoop)
		return nil, nil
	}
	if err := repo.Save(ctx, kept); err != nil {
		s.Metrics.observe(opPrune, resultError)
		return nil, err
	}
	s.Log.Info("pruned dangling cart lines", zap.Ints("product_ids", dropped))
	s.Metrics.observe(opPrune, resultOK)
	return dropped, nil
}

// mutate runs one load/change/save round trip. fn reports whether anything
// is worth persisting.
func (s *Service) mutate(ctx context.Context, repo Repository, op string, fn func(Cart) (Cart, bool)) error {
	c, err := repo.Load(ctx)
	if err != nil {
		s.Metrics.observe(op, resultError)
		return err
	}

	next, changed := fn(c)
	if !changed {
		s.Metrics.observe(op, resultNoop)
		return nil
	}

	if err := repo.Save(ctx, next); err != nil {
		s.Log.Error("save cart failed", zap.String("op", op), zap.Error(err))
		s.Metrics.observe(op, resultError)
		return err
	}
	s.Metrics.observe(op, resultOK)
	return nil
}
