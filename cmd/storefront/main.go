package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"TeeShop/internal/cart"
	"TeeShop/internal/catalog"
	"TeeShop/internal/config"
	"TeeShop/internal/render"
	"TeeShop/internal/storefront"
	"TeeShop/pkg/kit"
)

const startupTimeout = 10 * time.Second

func main() {
	service := "storefront"

	cfg, err := config.Load()
	if err != nil {
		log := kit.NewLogger(service, "info")
		log.Fatal("invalid config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	var db *sql.DB
	if cfg.NeedsPostgres() {
		db, err = kit.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("open postgres", zap.Error(err))
		}
		defer db.Close()
	}

	products, err := openCatalog(cfg, db)
	if err != nil {
		log.Fatal("open catalog", zap.Error(err), zap.String("source", cfg.CatalogSource))
	}

	slot, closeSlot, err := openSlot(ctx, cfg, db)
	if err != nil {
		log.Fatal("open cart storage", zap.Error(err), zap.String("backend", cfg.CartBackend))
	}
	defer closeSlot()

	pages, err := render.NewHTML()
	if err != nil {
		log.Fatal("load templates", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &storefront.Server{
		Catalog: products,
		Carts:   cart.NewService(products, log, cart.NewMetrics(reg)),
		Slot:    slot,
		Pages:   pages,
		Log:     log,
	}

	h := storefront.NewHandler(s, storefront.HTTPDeps{
		Log:                 log,
		Service:             service,
		Registry:            reg,
		MetricsEnabled:      cfg.MetricsEnabled,
		MetricsTokenHash:    cfg.MetricsTokenHash,
		ProfileSecret:       cfg.ProfileSecret,
		AssetsDir:           cfg.AssetsDir,
		MutationLimitPerMin: cfg.MutationLimitPerMin,
	})

	log.Info("starting",
		zap.String("catalog", cfg.CatalogSource),
		zap.String("cart_backend", cfg.CartBackend),
	)
	if err := kit.RunHTTPServer(context.Background(), ":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openCatalog(cfg config.Config, db *sql.DB) (catalog.Store, error) {
	switch cfg.CatalogSource {
	case config.CatalogFile:
		return catalog.LoadFile(cfg.CatalogFile)
	case config.CatalogPostgres:
		return catalog.NewPostgresStore(db), nil
	case config.CatalogRemote:
		return catalog.NewClient(cfg.CatalogURL), nil
	case config.CatalogMemory:
		return catalog.NewStore(), nil
	}
	return nil, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
}

func openSlot(ctx context.Context, cfg config.Config, db *sql.DB) (cart.Slot, func(), error) {
	noop := func() {}

	switch cfg.CartBackend {
	case config.CartMemory:
		return cart.NewMemSlot(), noop, nil
	case config.CartFile:
		s, err := cart.NewFileSlot(cfg.CartDir)
		return s, noop, err
	case config.CartSQLite:
		s, err := cart.OpenSQLiteSlot(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.CartRedis:
		s := cart.NewRedisSlot(cfg.RedisAddr)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.CartPostgres:
		s := cart.NewPostgresSlot(db)
		if err := s.EnsureSchema(ctx); err != nil {
			return nil, noop, err
		}
		return s, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown cart backend %q", cfg.CartBackend)
}
