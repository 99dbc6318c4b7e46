package telemetry

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiod/internal/manager"
)

func TestPublisherTracksManagerLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	pub := NewPublisher(reg)
	m := manager.NewWithConfig(manager.ManagerConfig{Impl: manager.NewNullImpl(), Publisher: pub})

	var evs []*manager.Event
	for i := 0; i < 4; i++ {
		ev, err := m.ConstructEvent("beep", nil)
		require.NoError(t, err)
		evs = append(evs, ev)
	}
	m.DestructEvent(evs[0])
	assert.Equal(t, 3.0, testutil.ToFloat64(pub.tracked))

	m.SwitchImpl(manager.NewNullImpl())
	assert.Equal(t, 0.0, testutil.ToFloat64(pub.tracked))
	assert.Equal(t, 4.0, testutil.ToFloat64(pub.constructed.WithLabelValues("null")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pub.destructed))
	assert.Equal(t, 1.0, testutil.ToFloat64(pub.switches.WithLabelValues("null")))

	// Detaching the backend at shutdown is not a switch.
	m.SwitchImpl(nil)
	assert.Equal(t, 1, testutil.CollectAndCount(pub.switches))
	assert.Equal(t, 1.0, testutil.ToFloat64(pub.switches.WithLabelValues("null")))
	assert.Equal(t, 0.0, testutil.ToFloat64(pub.tracked))
}

func TestPublisherViolationsAndFailures(t *testing.T) {
	reg := prometheus.NewRegistry()
	pub := NewPublisher(reg)
	pub.Publish(manager.Notification{Name: manager.NoteContractViolation, Fields: map[string]any{"op": "Release"}})
	pub.Publish(manager.Notification{Name: manager.NoteConstructFailed, Backend: "oto"})

	expected := `
# HELP audiod_contract_violations_total Event manager contract violations, by operation
# TYPE audiod_contract_violations_total counter
audiod_contract_violations_total{op="Release"} 1
`
	err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "audiod_contract_violations_total")
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(pub.failures.WithLabelValues("oto")))
}
