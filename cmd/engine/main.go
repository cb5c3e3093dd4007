package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/lintang-b-s/shiproute/pkg/http"
	"github.com/lintang-b-s/shiproute/pkg/http/usecases"
	"github.com/lintang-b-s/shiproute/pkg/logger"
	"github.com/lintang-b-s/shiproute/pkg/ship"
	"github.com/lintang-b-s/shiproute/pkg/util"
	"go.uber.org/zap"
)

var (
	configPath   = flag.String("config", "", "path to config file, defaults to ./data/config.*")
	numWorkers   = flag.Int("workers", 4, "number of workers used to score candidate routes")
	useRateLimit = flag.Bool("rate_limit", false, "enable the API rate limiter (overrides config when set)")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := util.ReadConfig(*configPath)
	if err != nil {
		return err
	}
	if *useRateLimit {
		cfg.API.RateLimit = true
	}

	log, err := logger.NewWithLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // ignore

	boat, err := ship.NewBoat(cfg.Boat, nil, log)
	if err != nil {
		return err
	}
	boat.PrintInit()

	routeService := usecases.NewRouteService(log, boat, clockwork.NewRealClock(), *numWorkers)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := http.NewServer(log)
	if _, err := api.Use(ctx, log, cfg.API, routeService); err != nil {
		return err
	}

	sig := api.GracefulShutdown()
	cancel()
	if err := api.Wait(); err != nil {
		log.Error("API stopped with error", zap.Error(err))
		return err
	}

	if sig != nil {
		log.Info("Ship routing server stopped", zap.String("signal", sig.String()))
	}
	return nil
}
