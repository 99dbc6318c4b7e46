package manager

import "audiod/pkg/types"

// State is the lifecycle state of an event as reported by the backend.
type State string

const (
	StateNone     State = "none"
	StateLoading  State = "loading"
	StatePlaying  State = "playing"
	StateVirtual  State = "virtual"
	StateStopping State = "stopping"
)

// Phase tracks the manager's position in the backend swap sequence:
//
//	steady --ReleaseImplData--> payloads_released --Release--> empty --OnAfterImplChanged--> steady
type Phase string

const (
	PhaseSteady           Phase = "steady"
	PhasePayloadsReleased Phase = "payloads_released"
	PhaseEmpty            Phase = "empty"
)

// Object is the game-world entity that fired a trigger. Events keep it for
// diagnostics only and never decide lifetimes based on it.
type Object interface {
	Name() string
	Position() types.Vec3
}

// Snapshot is a read-only projection of the manager state.
type Snapshot struct {
	Phase       Phase
	Backend     string
	Constructed int
}
