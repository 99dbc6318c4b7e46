package manager

// SwitchResult summarizes a backend switch.
type SwitchResult struct {
	Previous Impl
	Released int
}

// SwitchImpl replaces the active backend with next. It runs the whole swap
// sequence under the manager lock:
//
//	ReleaseImplData -> swap backend -> Release -> OnAfterImplChanged
//
// Every tracked event is destroyed; callers recreate the ones they still need
// on the new backend. The previous backend is returned so the caller can close it.
//
// A nil next detaches the backend. That is a teardown, not a switch: it is not
// counted in the switch total and publishes impl_detached instead of impl_changed.
func (m *EventManager) SwitchImpl(next Impl) SwitchResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseSteady {
		m.violate("SwitchImpl", "cannot switch backends while phase is %s", m.phase)
		return SwitchResult{}
	}
	prev := m.impl
	n := len(m.events)
	from := m.backendName()

	m.releaseImplDataLocked()
	m.impl = next
	m.releaseLocked()
	m.onAfterImplChangedLocked()

	if next == nil {
		m.log.Info().Str("from", from).Int("released", n).Msg("backend detached")
		m.publisher.Publish(Notification{Name: NoteImplDetached, Backend: from, Fields: map[string]any{"released": n}})
		return SwitchResult{Previous: prev, Released: n}
	}
	m.switchesTotal++
	to := m.backendName()
	m.log.Info().Str("from", from).Str("to", to).Int("released", n).Msg("backend switched")
	m.publisher.Publish(Notification{Name: NoteImplChanged, Backend: to, Fields: map[string]any{"from": from, "released": n}})
	return SwitchResult{Previous: prev, Released: n}
}
