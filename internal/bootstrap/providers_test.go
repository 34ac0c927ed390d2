package bootstrap

import (
	"context"
	"testing"

	"projects-service/internal/application"
	"projects-service/internal/config"
	"projects-service/internal/infrastructure/memstore"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProvideStorage_Memory(t *testing.T) {
	st, cleanup, err := ProvideStorage(context.Background(), zap.NewNop(), config.Config{Storage: "memory"})
	require.NoError(t, err)
	defer cleanup()
	require.IsType(t, &memstore.Store{}, st.UoW)
	require.Nil(t, st.Ready)
}

func TestProvideStorage_Errors(t *testing.T) {
	_, _, err := ProvideStorage(context.Background(), zap.NewNop(), config.Config{Storage: "pg"})
	require.ErrorIs(t, err, ErrMissingDBURL)

	_, _, err = ProvideStorage(context.Background(), zap.NewNop(), config.Config{Storage: "sqlite"})
	require.ErrorContains(t, err, "unsupported STORAGE")
}

func TestProvideIdempotency(t *testing.T) {
	client, cleanup, err := ProvideRedisClient(config.Config{IdempotencyBackend: "none"})
	require.NoError(t, err)
	defer cleanup()
	require.Nil(t, client)
	require.Equal(t, application.NoopIdempotency{}, ProvideIdempotency(client, config.Config{}))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client, cleanup2, err := ProvideRedisClient(config.Config{IdempotencyBackend: "redis", RedisAddr: mr.Addr()})
	require.NoError(t, err)
	defer cleanup2()
	idem := ProvideIdempotency(client, config.Config{})
	ok, err := idem.TryReserve(context.Background(), "k")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestInitAPI_Memory(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("IDEMPOTENCY_BACKEND", "none")
	srv, cleanup, err := InitAPI(context.Background())
	require.NoError(t, err)
	defer cleanup()
	require.NotNil(t, srv)
}
