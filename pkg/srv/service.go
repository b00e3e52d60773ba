package srv

import (
	"context"
	"time"

	"github.com/sandevgo/memobot/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%T failed to start", service)
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then stops services in reverse
// start order so that the database outlives the transports using it.
func ShutdownServices(ctx context.Context, services []Service, timeout time.Duration) {
	<-ctx.Done()

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	logger := log.FromCtx(ctx)
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(sctx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
	logger.Info().Msg("all services stopped")
}
