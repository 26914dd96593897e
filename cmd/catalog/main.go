package main

import (
	"context"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"TeeShop/internal/catalog"
	"TeeShop/pkg/kit"
)

func main() {
	_ = godotenv.Load()

	service := "catalog"
	log := kit.NewLogger(service, getenv("LOG_LEVEL", "info"))
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8082")

	var store catalog.Store = catalog.NewStore()
	switch {
	case os.Getenv("DATABASE_URL") != "":
		db, err := kit.OpenPostgres(context.Background(), os.Getenv("DATABASE_URL"))
		if err != nil {
			log.Fatal("open postgres", zap.Error(err))
		}
		defer db.Close()
		store = catalog.NewPostgresStore(db)
	case os.Getenv("CATALOG_FILE") != "":
		fs, err := catalog.LoadFile(os.Getenv("CATALOG_FILE"))
		if err != nil {
			log.Fatal("load catalog file", zap.Error(err))
		}
		store = fs
	}

	metricsOn, _ := strconv.ParseBool(getenv("METRICS_ENABLED", "false"))

	s := &catalog.Server{Store: store, Log: log}
	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:              log,
		Service:          service,
		Registry:         prometheus.NewRegistry(),
		MetricsEnabled:   metricsOn,
		MetricsTokenHash: os.Getenv("METRICS_TOKEN_HASH"),
	})

	if err := kit.RunHTTPServer(context.Background(), ":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
