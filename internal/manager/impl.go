package manager

// Payload is backend-specific event data. The manager stores it but never
// looks inside; the Impl that produced it owns it until DestructEvent.
type Payload any

// Impl is the audio middleware backend the manager delegates to.
// Concrete implementations (null, oto) live next to this file; tests use fakes.
type Impl interface {
	// Name identifies the backend in logs and status output.
	Name() string
	// ConstructEvent allocates backend data for ev. Events start out Loading;
	// backends in this package mark them Playing here, others use SetEventState.
	// A nil payload with a nil error is a contract violation.
	ConstructEvent(ev *Event) (Payload, error)
	// DestructEvent frees data previously returned by ConstructEvent.
	DestructEvent(p Payload)
}
