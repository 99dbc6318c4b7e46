package types

// PlayRequest is the body of POST /events.
type PlayRequest struct {
	// Trigger to fire.
	// example: footstep_gravel
	Trigger string `json:"trigger" example:"footstep_gravel"`
	// Name of the game object firing the trigger.
	// example: player
	Object string `json:"object" example:"player"`
}

// PlayResponse is returned by POST /events.
type PlayResponse struct {
	// ID of the constructed event.
	// example: 6f1c2a1e-7d4b-4f6e-9a57-3c0a7d1b2e11
	ID string `json:"id" example:"6f1c2a1e-7d4b-4f6e-9a57-3c0a7d1b2e11"`
}

// SwitchRequest is the body of POST /switch.
type SwitchRequest struct {
	// Backend to activate.
	// example: null
	Backend string `json:"backend" example:"null"`
}

// SwitchResponse is returned by POST /switch.
type SwitchResponse struct {
	// Backend active before the switch.
	Previous string `json:"previous"`
	// Backend active after the switch.
	Current string `json:"current"`
	// Events torn down by the switch.
	Released int `json:"released"`
	// Looping events re-fired on the new backend.
	Refired int `json:"refired"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// EventInfo is a read-only view of one tracked event.
type EventInfo struct {
	// example: 6f1c2a1e-7d4b-4f6e-9a57-3c0a7d1b2e11
	ID string `json:"id"`
	// Lifecycle state reported by the backend (none, loading, playing, virtual, stopping).
	// example: playing
	State string `json:"state" example:"playing"`
	// example: footstep_gravel
	Trigger string `json:"trigger" example:"footstep_gravel"`
	// Name of the owning game object.
	// example: player
	Object string `json:"object" example:"player"`
	// Owner position at the time of the query.
	Position Vec3 `json:"position"`
	// Distance from the owner to the listener.
	// example: 4.2
	Distance float64 `json:"distance" example:"4.2"`
}

// EventsResponse wraps GET /events.
type EventsResponse struct {
	Events []EventInfo `json:"events"`
}

// TriggersResponse wraps GET /triggers.
type TriggersResponse struct {
	Triggers []Trigger `json:"triggers"`
}

// BackendsResponse wraps GET /backends.
type BackendsResponse struct {
	// Registered backend names.
	Backends []string `json:"backends"`
	// Currently active backend, empty when none.
	Active string `json:"active"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Active backend name, empty when none.
	// example: null
	Backend string `json:"backend" example:"null"`
	// Swap phase of the event manager (steady, payloads_released, empty).
	// example: steady
	Phase string `json:"phase" example:"steady"`
	// Number of tracked events.
	// example: 3
	Constructed int `json:"constructed" example:"3"`
	// Total events constructed since start.
	ConstructedTotal uint64 `json:"constructed_total"`
	// Total events destructed individually since start.
	DestructedTotal uint64 `json:"destructed_total"`
	// Total events torn down by backend switches.
	ReleasedTotal uint64 `json:"released_total"`
	// Total backend switches.
	SwitchesTotal uint64 `json:"switches_total"`
	// Total backend construct failures.
	ConstructFailuresTotal uint64 `json:"construct_failures_total"`
	// Total contract violations observed (non-zero only with a non-panicking handler).
	ViolationsTotal uint64 `json:"violations_total"`
	// Uptime in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Engine frames processed.
	Frames uint64 `json:"frames"`
}
