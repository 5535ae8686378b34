package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rut304/polybot-sub000/internal/domain/models"
	"github.com/Rut304/polybot-sub000/internal/domain/repository"
	"github.com/Rut304/polybot-sub000/internal/usecase"
	"github.com/Rut304/polybot-sub000/pkg/logger"
)

type memSettingsStore struct {
	saved *models.BotSettings
}

func (m *memSettingsStore) Load(context.Context) (*models.BotSettings, error) {
	if m.saved == nil {
		return nil, repository.ErrNotFound
	}
	return m.saved, nil
}

func (m *memSettingsStore) Save(_ context.Context, s *models.BotSettings) error {
	copied := *s
	m.saved = &copied
	return nil
}

func (m *memSettingsStore) Health(context.Context) error { return nil }

func putSettings(t *testing.T, h *SettingsHandler, doc *models.BotSettings) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(doc)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/settings", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Put(e.NewContext(req, rec)))
	return rec
}

func TestPutSavesExplicitZeroValuesVerbatim(t *testing.T) {
	store := &memSettingsStore{}
	h := NewSettingsHandler(logger.Nop(), usecase.NewSettingsService(store, logger.Nop()))

	doc, err := usecase.DefaultSettings()
	require.NoError(t, err)
	// Turn default-on switches off and zero out a defaulted number; the
	// stored document must keep exactly these values.
	doc.PolymarketEnabled = false
	doc.KalshiEnabled = false
	doc.SizeOnConfidence = false
	doc.NotifyOnFill = false
	doc.CooldownMinutes = 0
	doc.MaxDailyLossUsd = 0

	putSettings(t, h, doc)

	require.NotNil(t, store.saved)
	assert.False(t, store.saved.PolymarketEnabled)
	assert.False(t, store.saved.KalshiEnabled)
	assert.False(t, store.saved.SizeOnConfidence)
	assert.False(t, store.saved.NotifyOnFill)
	assert.Equal(t, 0, store.saved.CooldownMinutes)
	assert.InDelta(t, 0.0, store.saved.MaxDailyLossUsd, 1e-9)
}

func TestPutRoundTripsThroughGet(t *testing.T) {
	store := &memSettingsStore{}
	svc := usecase.NewSettingsService(store, logger.Nop())
	h := NewSettingsHandler(logger.Nop(), svc)

	doc, err := usecase.DefaultSettings()
	require.NoError(t, err)
	doc.TradingEnabled = true
	doc.CryptoEnabled = false
	doc.StartingBalance = 31337

	putSettings(t, h, doc)

	loaded, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded.TradingEnabled)
	assert.False(t, loaded.CryptoEnabled)
	assert.InDelta(t, 31337.0, loaded.StartingBalance, 1e-9)
}

func TestPutRejectsInvalidDocument(t *testing.T) {
	store := &memSettingsStore{}
	h := NewSettingsHandler(logger.Nop(), usecase.NewSettingsService(store, logger.Nop()))

	doc, err := usecase.DefaultSettings()
	require.NoError(t, err)
	doc.Mode = "turbo"

	rec := putSettings(t, h, doc)

	assert.Nil(t, store.saved)
	var envelope struct {
		Status int `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, http.StatusBadRequest, envelope.Status)
}
