package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	metricsPath         = "/metrics"
	readHeaderTimeout   = 5 * time.Second
	metricsShutdownWait = 5 * time.Second
)

// MetricsServer は Prometheus のスクレイプ用 HTTP エンドポイントです。
type MetricsServer struct {
	listenAddr string
	httpServer *http.Server
}

// NewMetricsServer は /metrics で h を公開する MetricsServer を生成します。
func NewMetricsServer(listenAddr string, h http.Handler) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle(metricsPath, h)

	return &MetricsServer{
		listenAddr: listenAddr,
		httpServer: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Run は HTTP サーバーを起動し、コンテキストがキャンセルされると停止します。
func (m *MetricsServer) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", m.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", m.listenAddr, err)
	}
	return m.Serve(ctx, lis)
}

// Serve は lis で待ち受けます。
func (m *MetricsServer) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- m.httpServer.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve metrics: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownWait)
	defer cancel()
	if err := m.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown metrics: %w", err)
	}
	return nil
}
