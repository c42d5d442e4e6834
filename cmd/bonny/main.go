package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/carlosCACB333/bonny/config"
	"github.com/carlosCACB333/bonny/internal/delivery"
	"github.com/carlosCACB333/bonny/internal/delivery/http"
	httpmiddleware "github.com/carlosCACB333/bonny/internal/delivery/http/middleware"
	"github.com/carlosCACB333/bonny/internal/delivery/http/router/handler"
	deliverymiddleware "github.com/carlosCACB333/bonny/internal/delivery/middleware"
	"github.com/carlosCACB333/bonny/internal/domain/repository"
	"github.com/carlosCACB333/bonny/internal/infra/auth"
	logs "github.com/carlosCACB333/bonny/internal/infra/log"
	"github.com/carlosCACB333/bonny/internal/infra/persistence/postgres"
	"github.com/carlosCACB333/bonny/internal/infra/storage"
	"github.com/carlosCACB333/bonny/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
			startSessionCleanup,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
			postgres.NewPersonRepository,
			postgres.NewCompanyRepository,
			postgres.NewEmployeeRepository,
			postgres.NewClientRepository,
			postgres.NewSessionRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTTokenService,
			storage.NewBlobAttachmentStore,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewProfileService,
			impl.NewEmployeeService,
			impl.NewClientService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			httpmiddleware.NewAuthMiddleware,
			httpmiddleware.NewErrorMiddleware,
			httpmiddleware.NewLoggerMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAccountHandler,
			handler.NewProfileHandler,
			handler.NewEmployeeHandler,
			handler.NewClientHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

type sessionCleanupParams struct {
	fx.In
	fx.Lifecycle

	Sessions repository.SessionRepository
	Logger   *slog.Logger
}

// startSessionCleanup periodically removes expired session tokens, so revoked
// and abandoned sessions do not pile up in the table.
func startSessionCleanup(params sessionCleanupParams) {
	ctx, cancel := context.WithCancel(context.Background())
	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()

			return nil
		},
	})

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				count, err := params.Sessions.DeleteExpired(ctx)
				if err != nil {
					params.Logger.Warn("Failed to delete expired sessions", slog.Any("error", err))

					continue
				}
				if count > 0 {
					params.Logger.Info("Expired sessions deleted", slog.Int64("count", count))
				}
			}
		}
	}()
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
