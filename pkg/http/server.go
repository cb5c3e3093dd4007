package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/shiproute/pkg/http/router"
	"github.com/lintang-b-s/shiproute/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/shiproute/pkg/http/server"
	"github.com/lintang-b-s/shiproute/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log  *zap.Logger
	g    *errgroup.Group
	done <-chan struct{}
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use starts the API in the background. Wait returns once it has stopped.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,
	apiConfig util.APIConfig,
	routeService controllers.RouteService,
) (*Server, error) {
	config := http_server.Config{
		Port:    apiConfig.Port,
		Timeout: apiConfig.Timeout,
		RPS:     apiConfig.RPS,
		Burst:   apiConfig.Burst,
	}

	server := http_router.NewAPI(log)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gCtx, config, apiConfig.RateLimit, routeService)
	})
	s.g = g
	s.done = gCtx.Done()

	return s, nil
}

func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}

// GracefulShutdown blocks until SIGINT or SIGTERM arrives or the API stops on
// its own. The returned signal is nil in the latter case.
func (s *Server) GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		return sig
	case <-s.done:
		return nil
	}
}
