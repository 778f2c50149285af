package upstream

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthGateway checks the upstream API through the standard gRPC health service.
type HealthGateway struct {
	client  healthpb.HealthClient
	service string
}

// NewHealthGateway wraps an existing health client. service may be empty for the whole server.
func NewHealthGateway(client healthpb.HealthClient, service string) *HealthGateway {
	if client == nil {
		return nil
	}
	return &HealthGateway{client: client, service: service}
}

// Dial opens a plaintext client connection to addr. The caller closes it.
func Dial(addr string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("upstream dial %s: %w", addr, err)
	}
	return conn, nil
}

// Check returns nil when the upstream reports SERVING.
func (g *HealthGateway) Check(ctx context.Context) error {
	resp, err := g.client.Check(ctx, &healthpb.HealthCheckRequest{Service: g.service})
	if err != nil {
		return fmt.Errorf("upstream health: %w", err)
	}
	if st := resp.GetStatus(); st != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("upstream health: status %s", st)
	}
	return nil
}
