package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"TeeShop/internal/render"
)

func (s *session) runProducts(cmd *cobra.Command, _ []string) error {
	return s.showCatalog(cmd.Context(), "")
}

func (s *session) runShow(cmd *cobra.Command, _ []string) error {
	return s.showCart(cmd.Context(), "")
}

func (s *session) runAdd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	p, ok, err := s.carts.AddOne(cmd.Context(), s.repo(), id)
	if err != nil {
		return err
	}
	if !ok {
		return s.showCatalog(cmd.Context(), fmt.Sprintf("No product with id %d.", id))
	}
	return s.showCatalog(cmd.Context(), "Added "+p.Name+" to cart.")
}

func (s *session) runChange(delta int) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := s.carts.ChangeQuantity(cmd.Context(), s.repo(), id, delta); err != nil {
			return err
		}
		return s.showCart(cmd.Context(), "")
	}
}

func (s *session) runRemove(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := s.carts.Remove(cmd.Context(), s.repo(), id); err != nil {
		return err
	}
	return s.showCart(cmd.Context(), "")
}

func (s *session) runPrune(cmd *cobra.Command, _ []string) error {
	dropped, err := s.carts.Prune(cmd.Context(), s.repo())
	if err != nil {
		return err
	}

	flash := "Nothing to prune."
	if len(dropped) > 0 {
		ids := make([]string, len(dropped))
		for i, id := range dropped {
			ids[i] = strconv.Itoa(id)
		}
		flash = "Removed unknown products: " + strings.Join(ids, ", ") + "."
	}
	return s.showCart(cmd.Context(), flash)
}

func (s *session) showCatalog(ctx context.Context, flash string) error {
	ctx = orBackground(ctx)

	products, err := s.catalog.ListSortedByID(ctx)
	if err != nil {
		return err
	}
	c, err := s.carts.Load(ctx, s.repo())
	if err != nil {
		return err
	}

	v := render.BuildCatalog(products)
	return s.render(render.Page{
		Mode:    render.ModeCatalog,
		Count:   c.Count(),
		Flash:   flash,
		Catalog: &v,
	})
}

func (s *session) showCart(ctx context.Context, flash string) error {
	ctx = orBackground(ctx)

	c, err := s.carts.Load(ctx, s.repo())
	if err != nil {
		return err
	}
	v, err := render.BuildCart(ctx, c, s.catalog)
	if err != nil {
		return err
	}

	return s.render(render.Page{
		Mode:  render.ModeCart,
		Count: v.Count,
		Flash: flash,
		Cart:  &v,
	})
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("product id must be an integer, got %q", arg)
	}
	return id, nil
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
