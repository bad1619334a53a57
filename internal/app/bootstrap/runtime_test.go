package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arceusss10/sports-news-dashboard/internal/adapters/postgres"
	"github.com/arceusss10/sports-news-dashboard/internal/domain"
)

func TestNewRuntimeLeavesRatesToTheAPI(t *testing.T) {
	ctx := context.Background()
	dbURL := "sqlite://" + filepath.Join(t.TempDir(), "dashboard.db")
	t.Setenv("DB_URL", dbURL)
	t.Setenv("RATES_SEED", "fixed")
	t.Setenv("BCRYPT_ROUNDS", "4")

	rt, err := NewRuntime(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	t.Cleanup(func() { rt.cleanupFn(context.Background()) })

	inspect, err := postgres.Connect(ctx, dbURL, 1)
	require.NoError(t, err)
	sqlDB, err := inspect.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	repos := postgres.NewRepositories(inspect)

	_, err = repos.Rates.Load(ctx, "default")
	require.ErrorIs(t, err, domain.ErrNotFound, "building a runtime must not seed rates")

	require.NoError(t, rt.prepareAPI(ctx))
	snapshot, err := repos.Rates.Load(ctx, "default")
	require.NoError(t, err)
	require.Equal(t, domain.DefaultRateTable(), snapshot.Rates)
}
