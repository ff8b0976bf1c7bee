package admin

import (
	"context"
	"fmt"
	"net"
	"runtime/debug"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/jplfaria/gem-flux-mcp/internal/app/session"
	"github.com/jplfaria/gem-flux-mcp/internal/config"
	"github.com/jplfaria/gem-flux-mcp/internal/infrastructure/monitoring/logging"
)

// defaultGracefulTimeout bounds how long Stop waits for in-flight RPCs to
// drain before forcing the listener closed.
const defaultGracefulTimeout = 10 * time.Second

// Server wraps a grpc.Server exposing the SessionIntrospection facade over
// a session.Store, plus the standard grpc.health.v1 service and (in debug
// mode) reflection. Condensed from the teacher's generic interceptor-chain
// server skeleton down to the single recovery interceptor this module
// needs — there is no second service, no TLS requirement, and no separate
// gRPC-specific metrics surface to assemble (tool_invocations_total already
// covers MCP-facing instrumentation; this facade is operator-only).
type Server struct {
	grpcServer   *grpc.Server
	listener     net.Listener
	healthServer *health.Server
	logger       logging.Logger

	mu      sync.Mutex
	started bool
}

// NewServer binds a TCP listener on cfg.Host:cfg.Port and registers the
// SessionIntrospection service over store.
func NewServer(cfg config.GRPCConfig, store *session.Store, logger logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("admin: failed to listen on %s: %w", addr, err)
	}

	gs := grpc.NewServer(grpc.UnaryInterceptor(recoveryInterceptor(logger)))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	introspection := NewSessionIntrospectionServer(store)
	gs.RegisterService(&sessionIntrospectionServiceDesc, introspection)
	hs.SetServingStatus(sessionIntrospectionServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)

	if cfg.Debug {
		reflection.Register(gs)
		logger.Info("admin grpc reflection registered (debug mode)")
	}

	return &Server{grpcServer: gs, listener: lis, healthServer: hs, logger: logger}, nil
}

// Start runs the accept loop. It blocks until the listener is closed by
// Stop, matching net/http.Server.Serve's convention.
func (s *Server) Start() error {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	s.logger.Info("admin grpc server listening", logging.String("addr", s.listener.Addr().String()))
	return s.grpcServer.Serve(s.listener)
}

// Stop gracefully drains in-flight RPCs, falling back to a hard stop if
// draining takes longer than timeout. timeout <= 0 uses defaultGracefulTimeout.
func (s *Server) Stop(timeout time.Duration) {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return
	}
	if timeout <= 0 {
		timeout = defaultGracefulTimeout
	}

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		s.logger.Warn("admin grpc graceful stop timed out, forcing")
		s.grpcServer.Stop()
	}
}

// Addr returns the address the server is actually listening on, including
// the OS-assigned port when cfg.Port was 0 (used by tests).
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// recoveryInterceptor converts a panicking handler into codes.Internal
// instead of crashing the process.
func recoveryInterceptor(logger logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("admin grpc handler panicked",
					logging.String("method", info.FullMethod),
					logging.Any("panic", r),
					logging.String("stack", string(debug.Stack())),
				)
				err = status.Errorf(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}
