//go:build wireinject

package bootstrap

import (
	"context"

	httpserver "projects-service/internal/infrastructure/http"

	"github.com/google/wire"
)

var infraSet = wire.NewSet(
	ProvideLogger,
	ProvideConfig,
	ProvideStorage,
	ProvideRedisClient,
	ProvideIdempotency,
	ProvideProjectService,
)

// API injector: builds *httpserver.Server + Cleanup
func InitAPI(ctx context.Context) (*httpserver.Server, func(), error) {
	wire.Build(
		infraSet,
		ProvideServer,
	)
	return nil, nil, nil
}
