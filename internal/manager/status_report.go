package manager

import (
	"strings"
	"time"

	"audiod/pkg/types"
)

// DebugFilter selects tracked events for the debug overlay.
type DebugFilter struct {
	// Search is matched case-insensitively against trigger names.
	// Empty or "0" matches every trigger.
	Search string
	// MaxDistance keeps only events whose owner is strictly closer than this
	// to Listener. Zero or negative disables the distance check.
	MaxDistance float64
	Listener    types.Vec3
}

func (f DebugFilter) matches(info types.EventInfo) bool {
	if f.MaxDistance > 0 && info.Distance >= f.MaxDistance {
		return false
	}
	search := strings.ToLower(f.Search)
	if search == "" || search == "0" {
		return true
	}
	return strings.Contains(strings.ToLower(info.Trigger), search)
}

// Snapshot returns a read-only view of the manager state.
func (m *EventManager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{Phase: m.phase, Backend: m.backendName(), Constructed: len(m.events)}
}

// Status builds a detailed status response for /status.
func (m *EventManager) Status() types.StatusResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	return types.StatusResponse{
		Backend:                m.backendName(),
		Phase:                  string(m.phase),
		Constructed:            len(m.events),
		ConstructedTotal:       m.constructedTotal,
		DestructedTotal:        m.destructedTotal,
		ReleasedTotal:          m.releasedTotal,
		SwitchesTotal:          m.switchesTotal,
		ConstructFailuresTotal: m.failuresTotal,
		ViolationsTotal:        m.violationsTotal,
		UptimeSeconds:          int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix:         now.Unix(),
	}
}

// Events lists every tracked event, with distances measured from listener.
func (m *EventManager) Events(listener types.Vec3) []types.EventInfo {
	return m.Query(DebugFilter{Listener: listener})
}

// Query lists the tracked events accepted by f. The order follows the tracked
// set and is not stable across destructions.
func (m *EventManager) Query(f DebugFilter) []types.EventInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.EventInfo, 0, len(m.events))
	for _, ev := range m.events {
		info := types.EventInfo{
			ID:      ev.id.String(),
			State:   string(ev.state),
			Trigger: ev.trigger,
		}
		if ev.owner != nil {
			info.Object = ev.owner.Name()
			info.Position = ev.owner.Position()
		}
		info.Distance = info.Position.Distance(f.Listener)
		if f.matches(info) {
			out = append(out, info)
		}
	}
	return out
}
