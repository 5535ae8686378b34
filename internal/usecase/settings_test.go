package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rut304/polybot-sub000/pkg/logger"
)

func TestLoadReturnsDefaultsWhenNeverSaved(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsStore{}, logger.Nop())

	settings, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "paper", settings.Mode)
	assert.False(t, settings.TradingEnabled)
	assert.InDelta(t, 10000.0, settings.StartingBalance, 1e-9)
	assert.Equal(t, 10, settings.MaxOpenPositions)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	store := &fakeSettingsStore{}
	svc := NewSettingsService(store, logger.Nop())

	settings, err := DefaultSettings()
	require.NoError(t, err)
	settings.TradingEnabled = true
	settings.Mode = "live"
	settings.StartingBalance = 25000

	require.NoError(t, svc.Save(context.Background(), settings))

	loaded, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded.TradingEnabled)
	assert.Equal(t, "live", loaded.Mode)
	assert.InDelta(t, 25000.0, loaded.StartingBalance, 1e-9)
}

func TestSaveRejectsInvalidSettings(t *testing.T) {
	store := &fakeSettingsStore{}
	svc := NewSettingsService(store, logger.Nop())

	settings, err := DefaultSettings()
	require.NoError(t, err)
	settings.Mode = "turbo"

	assert.Error(t, svc.Save(context.Background(), settings))
	assert.Nil(t, store.saved)

	settings.Mode = "paper"
	settings.KellyFraction = 1.5
	assert.Error(t, svc.Save(context.Background(), settings))
}
