package interceptor

import (
	"context"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// Metrics は RPC の件数と処理時間を記録します。
func Metrics(m *metrics.RPCMetrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		m.InFlight.Inc()
		defer m.InFlight.Dec()

		timer := prometheus.NewTimer(nil)
		resp, err := handler(ctx, req)
		elapsed := timer.ObserveDuration()

		code := status.Code(err).String()
		m.RequestsTotal.WithLabelValues(info.FullMethod, code).Inc()
		m.RequestDuration.WithLabelValues(info.FullMethod, code).Observe(elapsed.Seconds())
		return resp, err
	}
}
