package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Clover-Hill/iot-project/internal/gateway"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/config"
	"github.com/Clover-Hill/iot-project/internal/infrastructure/logging"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// DataSource provides the aggregate room state for the pull endpoints.
// Satisfied by *gateway.Aggregator.
type DataSource interface {
	Snapshot() gateway.Snapshot
	Analytics(now time.Time) gateway.Analytics
}

// CommandSender forwards control commands to actuators.
// Satisfied by *gateway.Router.
type CommandSender interface {
	Send(actuatorType string, cmd map[string]any) error
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config   config.APIConfig
	WS       config.WebSocketConfig
	Logger   *logging.Logger
	Data     DataSource
	Commands CommandSender
	// Events is the gateway's observer fan-out queue; every event is
	// broadcast to WebSocket clients. Optional: nil disables push.
	Events <-chan gateway.Event
	// Gatherer backs the /metrics endpoint. Optional: nil disables it.
	Gatherer prometheus.Gatherer
	// Observers, when set, tracks the connected WebSocket client count.
	Observers prometheus.Gauge
	Version   string
}

// Server is the HTTP API server for the Smart Room gateway.
//
// It manages the HTTP listener, routes, middleware, and WebSocket hub.
// The server is created with New() and started with Start().
type Server struct {
	cfg      config.APIConfig
	wsCfg    config.WebSocketConfig
	logger   *logging.Logger
	data     DataSource
	commands CommandSender
	events   <-chan gateway.Event
	gatherer prometheus.Gatherer
	version  string
	server   *http.Server
	hub      *Hub
	cancel   context.CancelFunc
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Data == nil {
		return nil, fmt.Errorf("data source is required")
	}
	if deps.Commands == nil {
		return nil, fmt.Errorf("command sender is required")
	}

	return &Server{
		cfg:      deps.Config,
		wsCfg:    deps.WS,
		logger:   deps.Logger,
		data:     deps.Data,
		commands: deps.Commands,
		events:   deps.Events,
		gatherer: deps.Gatherer,
		version:  deps.Version,
		hub:      NewHub(deps.WS, deps.Logger, deps.Observers),
	}, nil
}

// Start begins listening for HTTP connections.
//
// It starts the WebSocket hub, the gateway event relay, and the HTTP
// listener in background goroutines. The server is stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	var srvCtx context.Context
	srvCtx, s.cancel = context.WithCancel(ctx)

	go s.hub.Run(srvCtx)
	if s.events != nil {
		go s.relayEvents(srvCtx)
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           s.buildRouter(),
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		s.logger.Info("API server starting", "address", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	return nil
}

// relayEvents forwards gateway fan-out events to WebSocket clients.
// Update events broadcast on the "update" channel; edge alerts on "alert".
func (s *Server) relayEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.events:
			s.hub.Broadcast(ev.Name, ev)
		}
	}
}

// Close gracefully shuts down the API server.
//
// It waits up to 10 seconds for in-flight requests to complete,
// then forcefully closes remaining connections.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}
