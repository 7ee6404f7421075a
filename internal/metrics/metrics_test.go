package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dshills/tickbind/internal/event"
	"github.com/dshills/tickbind/internal/input/binding"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)
	var _ binding.Observer = c

	c.EventHandled(event.Closed, 2)
	c.EventHandled(event.KeyPressed, 0)
	c.EventHandled(event.Closed, 1)
	c.Reconciled(1, 3, 5)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.events.WithLabelValues("Closed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.events.WithLabelValues("KeyPressed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.callbacks))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.reconciles))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.added))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.removed))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.orders))

	_, err = New(reg)
	assert.Error(t, err, "double registration")
}

func TestServerHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := New(reg)
	require.NoError(t, err)
	c.EventHandled(event.Closed, 1)

	s := NewServer("127.0.0.1:0", reg, zap.NewNop())
	resp, err := s.Handler().Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), `tickbind_events_total{kind="Closed"} 1`)
}
