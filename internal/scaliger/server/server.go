package server

import (
	"context"
	"fmt"
	"net"
	"time"

	mdwerror "github.com/msto63/scaliger/foundation/core/error"
	"github.com/msto63/scaliger/foundation/calendar"
	"github.com/msto63/scaliger/internal/scaliger/service"
	"github.com/msto63/scaliger/pkg/core/config"
	coreGrpc "github.com/msto63/scaliger/pkg/core/grpc"
	"github.com/msto63/scaliger/pkg/core/health"
	"github.com/msto63/scaliger/pkg/core/logging"
	"github.com/msto63/scaliger/pkg/core/version"
	"google.golang.org/grpc"
)

// Server is the calendar gRPC server
type Server struct {
	service   *service.Service
	grpc      *coreGrpc.Server
	health    *health.Registry
	logger    *logging.Logger
	config    config.ServerConfig
	startTime time.Time
}

// Ensure Server implements CalendarServer
var _ CalendarServer = (*Server)(nil)

// New creates a new calendar server around svc
func New(cfg config.ServerConfig, svc *service.Service, logger *logging.Logger) (*Server, error) {
	if svc == nil {
		return nil, mdwerror.New("calendar service is required").
			WithCode(mdwerror.CodeServiceInitialization).
			WithOperation("server.New")
	}
	if logger == nil {
		logger = logging.New("scaliger-server")
	}

	grpcCfg := coreGrpc.ServerConfig{
		Host:              cfg.Host,
		Port:              cfg.Port,
		MaxRecvMsgSize:    cfg.MaxRecvMsgSize,
		MaxSendMsgSize:    cfg.MaxSendMsgSize,
		EnableReflection:  cfg.EnableReflection,
		KeepaliveInterval: cfg.KeepaliveInterval.Duration,
		KeepaliveTimeout:  cfg.KeepaliveTimeout.Duration,
	}
	grpcServer := coreGrpc.NewServer(grpcCfg, logger)

	server := &Server{
		service:   svc,
		grpc:      grpcServer,
		health:    health.NewRegistry("scaliger", version.Server),
		logger:    logger,
		config:    cfg,
		startTime: time.Now(),
	}
	server.health.Register(health.NewChecker("calendar", selfCheck))
	server.health.RegisterFunc("cache", server.cacheCheck)

	RegisterCalendarServer(grpcServer.GRPCServer(), server)

	return server, nil
}

// selfCheck converts a known date both ways
func selfCheck(ctx context.Context) health.CheckResult {
	result := health.CheckResult{Name: "calendar"}

	d, err := calendar.Civil(2000, 1, 1, calendar.Italy)
	switch {
	case err != nil:
		result.Status = health.StatusUnhealthy
		result.Message = err.Error()
	case d.JD() != 2451545 || d.CWeek() != 52 || d.Weekday() != 6:
		result.Status = health.StatusUnhealthy
		result.Message = fmt.Sprintf("2000-01-01 converted to JD %d", d.JD())
	default:
		result.Status = health.StatusHealthy
		result.Message = "calendar conversions are consistent"
	}
	return result
}

func (s *Server) cacheCheck(ctx context.Context) health.CheckResult {
	result := health.CheckResult{Name: "cache", Status: health.StatusHealthy}

	hits, misses, size, ok := s.service.CacheStats()
	if !ok {
		result.Message = "result cache disabled"
		return result
	}
	result.Message = fmt.Sprintf("%d entries, %d hits, %d misses", size, hits, misses)
	result.Details = map[string]interface{}{
		"size":   size,
		"hits":   hits,
		"misses": misses,
	}
	return result
}

// Start starts the server
func (s *Server) Start() error {
	s.logger.Info("Starting calendar server", "address", s.config.Address())
	return s.grpc.Start()
}

// StartAsync starts the server asynchronously
func (s *Server) StartAsync() error {
	s.logger.Info("Starting calendar server (async)", "address", s.config.Address())
	return s.grpc.StartAsync()
}

// Serve serves on an existing listener
func (s *Server) Serve(listener net.Listener) error {
	return s.grpc.Serve(listener)
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Stopping calendar server")
	s.grpc.StopWithTimeout(ctx)
}

// GRPCServer returns the underlying gRPC server
func (s *Server) GRPCServer() *grpc.Server {
	return s.grpc.GRPCServer()
}

// HealthRegistry returns the health check registry
func (s *Server) HealthRegistry() *health.Registry {
	return s.health
}

// Address returns the listening address
func (s *Server) Address() string {
	return s.grpc.Address()
}
