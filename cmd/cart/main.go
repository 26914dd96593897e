package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"TeeShop/internal/cart"
	"TeeShop/internal/catalog"
	"TeeShop/internal/render"
)

const (
	storeFile   = "file"
	storeSQLite = "sqlite"
)

// session is the state one command invocation works against.
type session struct {
	store       string
	path        string
	profile     string
	catalogFile string
	verbose     bool

	out io.Writer
	now func() time.Time

	log     *zap.Logger
	catalog catalog.Store
	slot    cart.Slot
	closeFn func()
	carts   *cart.Service
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	s := &session{out: out, now: time.Now}

	root := &cobra.Command{
		Use:          "cart",
		Short:        "Browse the tee catalog and manage a local cart",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.shutdown()
		},
	}
	root.SetOut(out)

	f := root.PersistentFlags()
	f.StringVar(&s.store, "store", storeFile, "cart storage: file or sqlite")
	f.StringVar(&s.path, "path", "", "storage location (directory for file, database for sqlite)")
	f.StringVar(&s.profile, "profile", "", "cart profile; empty uses the shared default cart")
	f.StringVar(&s.catalogFile, "catalog", "", "YAML product seed; empty uses the built-in tees")
	f.BoolVarP(&s.verbose, "verbose", "v", false, "debug logging to stderr")

	root.AddCommand(
		&cobra.Command{
			Use:   "products",
			Short: "List the catalog",
			Args:  cobra.NoArgs,
			RunE:  s.runProducts,
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the cart with subtotals and total",
			Args:  cobra.NoArgs,
			RunE:  s.runShow,
		},
		&cobra.Command{
			Use:   "add ID",
			Short: "Add one unit of a product",
			Args:  cobra.ExactArgs(1),
			RunE:  s.runAdd,
		},
		&cobra.Command{
			Use:   "inc ID",
			Short: "Increase a line's quantity by one",
			Args:  cobra.ExactArgs(1),
			RunE:  s.runChange(1),
		},
		&cobra.Command{
			Use:   "dec ID",
			Short: "Decrease a line's quantity by one; the line is dropped at zero",
			Args:  cobra.ExactArgs(1),
			RunE:  s.runChange(-1),
		},
		&cobra.Command{
			Use:   "remove ID",
			Short: "Drop a line from the cart",
			Args:  cobra.ExactArgs(1),
			RunE:  s.runRemove,
		},
		&cobra.Command{
			Use:   "prune",
			Short: "Drop lines whose product is no longer in the catalog",
			Args:  cobra.NoArgs,
			RunE:  s.runPrune,
		},
	)
	return root
}

func (s *session) open(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if s.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	s.log = log.With(zap.String("service", "cart-cli"))

	s.catalog = catalog.NewStore()
	if s.catalogFile != "" {
		fs, err := catalog.LoadFile(s.catalogFile)
		if err != nil {
			return err
		}
		s.catalog = fs
	}

	s.closeFn = func() {}
	switch s.store {
	case storeFile:
		path := s.path
		if path == "" {
			path = "data/carts"
		}
		slot, err := cart.NewFileSlot(path)
		if err != nil {
			return err
		}
		s.slot = slot
	case storeSQLite:
		path := s.path
		if path == "" {
			path = "data/carts.db"
		}
		slot, err := cart.OpenSQLiteSlot(ctx, path)
		if err != nil {
			return err
		}
		s.slot = slot
		s.closeFn = func() { _ = slot.Close() }
	default:
		return fmt.Errorf("unknown --store %q (want %s or %s)", s.store, storeFile, storeSQLite)
	}

	s.carts = cart.NewService(s.catalog, s.log, nil)
	return nil
}

func (s *session) shutdown() {
	if s.closeFn != nil {
		s.closeFn()
	}
	if s.log != nil {
		_ = s.log.Sync()
	}
}

func (s *session) key() string {
	if s.profile == "" {
		return cart.DefaultKey
	}
	return cart.ProfileKey(s.profile)
}

func (s *session) repo() cart.Repository {
	return cart.NewBlobRepository(s.slot, s.key(), s.log.With(zap.String("profile", s.profile)))
}

func (s *session) render(p render.Page) error {
	p.Year = s.now().Year()
	return render.Terminal{}.Render(s.out, p)
}
