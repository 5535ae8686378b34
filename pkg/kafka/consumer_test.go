package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopHandler struct {
	topic string
}

func (h *nopHandler) Topic() string                        { return h.topic }
func (h *nopHandler) Handle(context.Context, []byte) error { return nil }

func TestNewConsumerRequiresBrokers(t *testing.T) {
	_, err := NewConsumer()
	assert.Error(t, err)
}

func TestStartRequiresHandlers(t *testing.T) {
	c, err := NewConsumer(WithConsumerBrokers([]string{"127.0.0.1:1"}))
	require.NoError(t, err)
	assert.Error(t, c.Start())
}

func TestStopWithoutStartIsSafe(t *testing.T) {
	c, err := NewConsumer(WithConsumerBrokers([]string{"127.0.0.1:1"}))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, c.Stop(ctx))
	// Stop is idempotent.
	assert.NoError(t, c.Stop(ctx))
}

func TestStopShutsDownReadersBeforeQueue(t *testing.T) {
	c, err := NewConsumer(
		WithConsumerBrokers([]string{"127.0.0.1:1"}), // unreachable on purpose
		WithConsumerWorkers(2),
	)
	require.NoError(t, err)
	c.RegisterHandler(&nopHandler{topic: "bot.trades"})

	require.NoError(t, c.Start())
	time.Sleep(100 * time.Millisecond)

	// Must not panic with a send on the closed message channel while the
	// reader goroutines are still draining.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	assert.NoError(t, c.Stop(ctx))
}

func TestBackoffWithJitterBounds(t *testing.T) {
	min := 50 * time.Millisecond
	max := 2 * time.Second
	for attempt := 1; attempt <= 8; attempt++ {
		d := backoffWithJitter(min, max, attempt)
		assert.Greater(t, d, time.Duration(0))
		assert.LessOrEqual(t, d, max)
	}
}
