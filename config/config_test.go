package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netsim/ctrlsim/config"
)

func TestNew_Defaults(t *testing.T) {
	c := config.New()
	require.Nil(t, c.SyncPeriod)
	require.Equal(t, config.DefaultStepSize, c.StepSize)
	require.Equal(t, config.DefaultGreedyLimit, c.GreedyLimit)
	require.Equal(t, config.DefaultAlpha, c.Alpha)
	require.NoError(t, c.Validate())
}

func TestWithSyncPeriod_DistinguishesZeroFromNil(t *testing.T) {
	never := config.New()
	require.Nil(t, never.SyncPeriod)

	everyTick := config.New(config.WithSyncPeriod(0))
	require.NotNil(t, everyTick.SyncPeriod)
	require.Equal(t, 0.0, *everyTick.SyncPeriod)

	periodic := config.New(config.WithSyncPeriod(5))
	require.NotNil(t, periodic.SyncPeriod)
	require.Equal(t, 5.0, *periodic.SyncPeriod)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	require.ErrorIs(t, config.New(config.WithStepSize(0)).Validate(), config.ErrBadStepSize)
	require.ErrorIs(t, config.New(config.WithSyncPeriod(-1)).Validate(), config.ErrBadSyncPeriod)
	require.ErrorIs(t, config.New(config.WithStaleness(-1)).Validate(), config.ErrBadStaleness)
	require.ErrorIs(t, config.New(config.WithGreedyLimit(-1)).Validate(), config.ErrBadGreedyLimit)
	require.ErrorIs(t, config.New(config.WithAlpha(2)).Validate(), config.ErrBadAlpha)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	c := config.New(config.WithSyncPeriod(3), config.WithStaleness(2), config.WithAlpha(0.75))
	path := filepath.Join(t.TempDir(), "sim.yaml")

	require.NoError(t, c.Save(path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	require.NotNil(t, loaded.SyncPeriod)
	require.Equal(t, 3.0, *loaded.SyncPeriod)
	require.Equal(t, 2, loaded.Staleness)
	require.Equal(t, 0.75, loaded.Alpha)
}

func TestLoad_NullSyncPeriodMeansNeverSync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sync_period: null\nstep_size: 2\n"), 0o644))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	require.Nil(t, loaded.SyncPeriod)
	require.Equal(t, 2.0, loaded.StepSize)
}
