package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server exposes a registry on /metrics.
type Server struct {
	app    *fiber.App
	addr   string
	logger *zap.Logger
}

// ServerOption configures a Server.
type ServerOption func(*fiber.App)

// WithLogLevel serves level on /loglevel. GET reports the current level
// and PUT {"level":"debug"} changes it.
func WithLogLevel(level http.Handler) ServerOption {
	return func(app *fiber.App) {
		app.All("/loglevel", adaptor.HTTPHandler(level))
	}
}

// NewServer creates a metrics server for addr serving g.
func NewServer(addr string, g prometheus.Gatherer, logger *zap.Logger, opts ...ServerOption) *Server {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(fiberzap.New(fiberzap.Config{Logger: logger}))
	app.All("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(g, promhttp.HandlerOpts{})))
	for _, opt := range opts {
		opt(app)
	}

	return &Server{app: app, addr: addr, logger: logger.Named("metrics")}
}

// Handler returns the fiber app for in-process tests.
func (s *Server) Handler() *fiber.App {
	return s.app
}

// Run serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.logger.Info("serving metrics", zap.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- s.app.Listener(ln) }()

	select {
	case <-ctx.Done():
		if err := s.app.ShutdownWithContext(context.Background()); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, net.ErrClosed) {
			return nil
		}
		return err
	}
}
