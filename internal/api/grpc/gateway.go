package grpc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// NewGatewayHandler создает HTTP Gateway с /healthz поверх gRPC health.
// Возвращаемую функцию нужно вызвать для закрытия соединения.
func NewGatewayHandler(ctx context.Context, grpcAddr string, extra ...grpc.DialOption) (http.Handler, func() error, error) {
	opts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, extra...)

	conn, err := grpc.NewClient(grpcAddr, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to register gateway: %w", err)
	}

	mux := runtime.NewServeMux(
		runtime.WithHealthzEndpoint(healthpb.NewHealthClient(conn)),
	)

	return mux, conn.Close, nil
}
