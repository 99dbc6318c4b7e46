package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiod/internal/manager"
	"audiod/internal/registry"
	"audiod/pkg/types"
)

var testTriggers = []types.Trigger{
	{Name: "beep", FrequencyHz: 880, DurationMS: 100},
	{Name: "hum", FrequencyHz: 60, Loop: true},
	{Name: "click"},
}

func newTestEngine(t *testing.T, mutate func(*Config)) *Engine {
	t.Helper()
	reg, err := registry.New(testTriggers)
	require.NoError(t, err)
	cfg := Config{
		Backend:      "null",
		Triggers:     reg,
		AudibleRange: 50,
		Objects: []types.GameObject{
			{Name: "player", Position: types.Vec3{X: 1}},
			{Name: "distant", Position: types.Vec3{X: 100}},
		},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	e, err := New(cfg)
	require.NoError(t, err)
	return e
}

func nullImpl(t *testing.T, e *Engine) *manager.NullImpl {
	t.Helper()
	impl, ok := e.Manager().Impl().(*manager.NullImpl)
	require.True(t, ok, "active backend is %T", e.Manager().Impl())
	return impl
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(Config{Backend: "fmod"})
	assert.True(t, manager.IsBackendNotFound(err))
}

func TestFireValidatesTriggerAndObject(t *testing.T) {
	e := newTestEngine(t, nil)

	_, err := e.Fire("nope", "player")
	assert.True(t, IsTriggerNotFound(err))

	_, err = e.Fire("beep", "ghost")
	assert.True(t, IsObjectNotFound(err))

	ev, err := e.Fire("beep", "")
	require.NoError(t, err)
	assert.Nil(t, ev.Owner())
	assert.Equal(t, 1, e.Manager().GetNumConstructed())
}

func TestFireWithoutBackend(t *testing.T) {
	e := newTestEngine(t, func(c *Config) { c.Backend = "" })
	assert.False(t, e.Ready())
	_, err := e.Fire("beep", "player")
	assert.ErrorIs(t, err, ErrNoBackend)
}

func TestNonLoopingEventsComplete(t *testing.T) {
	e := newTestEngine(t, nil)
	_, err := e.Fire("beep", "player")
	require.NoError(t, err)
	_, err = e.Fire("click", "player") // default length
	require.NoError(t, err)

	e.Step(50 * time.Millisecond)
	assert.Equal(t, 2, e.Manager().GetNumConstructed())
	e.Step(50 * time.Millisecond)
	assert.Equal(t, 1, e.Manager().GetNumConstructed())

	for i := 0; i < 10; i++ {
		e.Step(50 * time.Millisecond)
	}
	assert.Equal(t, 0, e.Manager().GetNumConstructed())
	assert.Equal(t, 0, nullImpl(t, e).Live())
	assert.Equal(t, uint64(2), e.Status().DestructedTotal)
	assert.Equal(t, uint64(12), e.Status().Frames)
}

func TestLoopingEventsPersistUntilStopped(t *testing.T) {
	e := newTestEngine(t, nil)
	ev, err := e.Fire("hum", "player")
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		e.Step(100 * time.Millisecond)
	}
	require.Equal(t, 1, e.Manager().GetNumConstructed())

	require.NoError(t, e.Stop(ev.ID().String()))
	assert.Equal(t, 0, e.Manager().GetNumConstructed())
	assert.True(t, IsEventNotFound(e.Stop(ev.ID().String())))
}

func TestEmittersFireOnSchedule(t *testing.T) {
	e := newTestEngine(t, func(c *Config) {
		c.Objects = []types.GameObject{
			{Name: "walker", Emit: []string{"beep"}, EmitIntervalMS: 200},
			{Name: "generator", Emit: []string{"hum", "missing"}, EmitIntervalMS: 100},
		}
	})
	for i := 0; i < 5; i++ {
		e.Step(100 * time.Millisecond)
	}
	// beep at 100, 300, 500 ms; hum only once since the loop stays alive.
	assert.Equal(t, uint64(4), e.Status().ConstructedTotal)
	infos := e.Query("hum", 0)
	require.Len(t, infos, 1)
	assert.Equal(t, "generator", infos[0].Object)
}

func TestEmitOnceWithoutInterval(t *testing.T) {
	e := newTestEngine(t, func(c *Config) {
		c.Objects = []types.GameObject{{Name: "bell", Emit: []string{"beep"}}}
	})
	for i := 0; i < 10; i++ {
		e.Step(100 * time.Millisecond)
	}
	assert.Equal(t, uint64(1), e.Status().ConstructedTotal)
}

func TestVirtualization(t *testing.T) {
	e := newTestEngine(t, nil)
	near, err := e.Fire("hum", "player")
	require.NoError(t, err)
	far, err := e.Fire("hum", "distant")
	require.NoError(t, err)

	assert.Equal(t, manager.StatePlaying, near.State())
	assert.Equal(t, manager.StateVirtual, far.State())

	e.Step(time.Millisecond)
	assert.Equal(t, manager.StateVirtual, far.State())
}

func TestVirtualizationDisabled(t *testing.T) {
	e := newTestEngine(t, func(c *Config) { c.AudibleRange = 0 })
	far, err := e.Fire("hum", "distant")
	require.NoError(t, err)
	e.Step(time.Millisecond)
	assert.Equal(t, manager.StatePlaying, far.State())
}

func TestQuerySortedAndFiltered(t *testing.T) {
	e := newTestEngine(t, nil)
	for _, tr := range []string{"hum", "beep", "hum"} {
		_, err := e.Fire(tr, "player")
		require.NoError(t, err)
	}
	_, err := e.Fire("beep", "distant")
	require.NoError(t, err)

	all := e.Query("", 0)
	require.Len(t, all, 4)
	assert.Equal(t, "beep", all[0].Trigger)
	assert.Equal(t, "hum", all[3].Trigger)

	assert.Len(t, e.Query("HUM", 0), 2)
	assert.Len(t, e.Query("beep", 10), 1)
}

func TestBackendsAndTriggers(t *testing.T) {
	e := newTestEngine(t, nil)
	b := e.Backends()
	assert.Equal(t, []string{"null", "oto"}, b.Backends)
	assert.Equal(t, "null", b.Active)
	assert.Len(t, e.ListTriggers(), len(testTriggers))
}
