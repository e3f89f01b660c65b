package srv

import (
	"context"
	"time"

	"github.com/sandevgo/protox/pkg/log"
)

// shutdownTimeout bounds the time every service gets to stop.
const shutdownTimeout = 10 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices launches each service on its own goroutine. A service that
// fails to start takes the process down.
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

// ShutdownServices blocks until ctx is cancelled, then stops the services in
// reverse start order.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()

	logger := log.FromCtx(ctx)
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(stopCtx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
