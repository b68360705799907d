// Package grpc exposes the standard gRPC health service so orchestrators can
// probe the backend without going through the JSON API.
package grpc

import (
	"context"
	"net"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/dmitrijs2005/portfolio/internal/logging"
)

// Checker reports whether a dependency is usable. A nil error means healthy.
type Checker func(ctx context.Context) error

type GRPCServer struct {
	address  string
	logger   logging.Logger
	health   *health.Server
	check    Checker
	interval time.Duration
}

// NewGRPCServer builds a health server on address. check is polled every
// interval to flip the overall status; a nil check leaves it SERVING.
func NewGRPCServer(address string, l logging.Logger, check Checker, interval time.Duration) *GRPCServer {
	return &GRPCServer{
		address:  address,
		logger:   l.With("module", "grpc_server"),
		health:   health.NewServer(),
		check:    check,
		interval: interval,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve runs on an existing listener until ctx is cancelled. It returns only
// after in-flight RPCs have drained and the checker is no longer polled, so
// callers may release what the checker uses.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))

	healthpb.RegisterHealthServer(srv, s.health)
	reflection.Register(srv)

	var wg sync.WaitGroup

	s.probe(ctx)
	if s.check != nil && s.interval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.watch(ctx)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	err := srv.Serve(listen)

	cancel()
	wg.Wait()
	return err
}
