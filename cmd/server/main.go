package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/adapters/grpc/auth"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/adapters/grpc/handler"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/adapters/grpc/interceptor"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/adapters/repository/memory"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/adapters/repository/postgres"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/drivingschool"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/config"
	pg "github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/db/postgres"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/idgen"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/logging"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/metrics"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/server"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

type transactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type repositories struct {
	companies company.Repository
	schools   drivingschool.Repository
	users     user.Repository
	tx        transactionManager
	close     func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.Log, os.Stdout)
	slog.SetDefault(logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer repos.close()

	if err := seedUsers(ctx, repos.users, cfg.Seed.Users); err != nil {
		return err
	}

	clock := clockwork.NewRealClock()
	tokens, err := auth.NewTokenManager(cfg.Auth, clock)
	if err != nil {
		return err
	}

	registry := metrics.NewRegistry()
	rpcMetrics := metrics.NewRPCMetrics(registry)

	ids := idgen.UUID{}
	companySvc := company.NewService(repos.companies, ids, clock, repos.tx)
	schoolSvc := drivingschool.NewService(repos.schools, ids, clock, repos.tx)

	grpcServer := server.New(cfg.Server.ListenAddr, server.Services{
		Companies:      handler.NewCompanyGrpcHandler(companySvc),
		DrivingSchools: handler.NewDrivingSchoolGrpcHandler(schoolSvc),
	}, grpc.ChainUnaryInterceptor(
		interceptor.Logging(logger),
		interceptor.Metrics(rpcMetrics),
		auth.UnaryServerInterceptor(tokens, repos.users),
	))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("gRPC server listening", slog.String("addr", cfg.Server.ListenAddr), slog.String("storage", string(cfg.Storage.Driver)))
		return grpcServer.Run(gctx)
	})
	if cfg.Metrics.ListenAddr != "" {
		metricsServer := server.NewMetricsServer(cfg.Metrics.ListenAddr, metrics.Handler(registry))
		g.Go(func() error {
			logger.Info("metrics server listening", slog.String("addr", cfg.Metrics.ListenAddr))
			return metricsServer.Run(gctx)
		})
	}

	return g.Wait()
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*repositories, error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		storage := memory.NewStorage()
		return &repositories{
			companies: memory.NewCompanyRepository(storage),
			schools:   memory.NewDrivingSchoolRepository(storage),
			users:     memory.NewUserRepository(storage),
			close:     func() {},
		}, nil
	}

	pool, err := pg.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	return &repositories{
		companies: postgres.NewCompanyRepository(pool),
		schools:   postgres.NewDrivingSchoolRepository(pool),
		users:     postgres.NewUserRepository(pool),
		tx:        pg.NewTransactionManager(pool),
		close:     pool.Close,
	}, nil
}
