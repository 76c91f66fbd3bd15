package grpc

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName - имя сервиса в gRPC health (пустое имя - сервер целиком)
const ServiceName = "pomodoro.v1.PomodoroService"

// Pinger - хранилище, доступность которого определяет статус health
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type GRPCServer struct {
	health *health.Server
	pinger Pinger
	log    logrus.FieldLogger
	server *grpc.Server
}

func NewGRPCServer(pinger Pinger, log logrus.FieldLogger) *GRPCServer {
	s := &GRPCServer{
		health: health.NewServer(),
		pinger: pinger,
		log:    log,
	}

	s.server = grpc.NewServer(
		grpc.UnaryInterceptor(s.unaryInterceptor),
	)
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)

	// до первой проверки хранилища сервис считается недоступным
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return s
}

func (s *GRPCServer) Start(port string) error {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.log.WithField("port", port).Info("gRPC server listening")
	return s.Serve(lis)
}

func (s *GRPCServer) Serve(lis net.Listener) error {
	return s.server.Serve(lis)
}

func (s *GRPCServer) Stop() {
	if s.server != nil {
		s.health.Shutdown()
		s.server.GracefulStop()
	}
}

// WatchStore периодически проверяет хранилище и обновляет статус health до отмены ctx
func (s *GRPCServer) WatchStore(ctx context.Context, interval time.Duration) {
	s.checkStore(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkStore(ctx)
		}
	}
}

func (s *GRPCServer) checkStore(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.pinger.HealthCheck(ctx); err != nil {
		s.log.WithError(err).Warn("❌ Хранилище недоступно")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

func (s *GRPCServer) unaryInterceptor(ctx context.Context, req interface{},
	info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	s.log.WithField("method", info.FullMethod).Debug("gRPC method")
	return handler(ctx, req)
}
