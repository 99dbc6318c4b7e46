//go:build !oto

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audiod/internal/manager"
)

func TestSwitchToUnbuiltBackend(t *testing.T) {
	e := newTestEngine(t, nil)
	_, err := e.Fire("hum", "player")
	require.NoError(t, err)

	_, err = e.SwitchBackend("oto")
	assert.True(t, manager.IsDependencyUnavailable(err))
	assert.Equal(t, 1, e.Manager().GetNumConstructed())
	assert.Equal(t, "null", e.Backends().Active)
}
