package engine

import "errors"

// ErrStopped is returned by command methods once Run has returned.
var ErrStopped = errors.New("engine stopped")

// ErrNoBackend is returned when firing while no backend is active.
var ErrNoBackend = errors.New("no active backend")

type triggerNotFoundError struct{ name string }

func (e triggerNotFoundError) Error() string { return "trigger not found: " + e.name }

// ErrTriggerNotFound returns an error for a trigger missing from the registry.
func ErrTriggerNotFound(name string) error { return triggerNotFoundError{name: name} }

// IsTriggerNotFound reports whether err indicates an unknown trigger.
func IsTriggerNotFound(err error) bool {
	var e triggerNotFoundError
	return errors.As(err, &e)
}

type objectNotFoundError struct{ name string }

func (e objectNotFoundError) Error() string { return "object not found: " + e.name }

// ErrObjectNotFound returns an error for an unknown game object.
func ErrObjectNotFound(name string) error { return objectNotFoundError{name: name} }

// IsObjectNotFound reports whether err indicates an unknown game object.
func IsObjectNotFound(err error) bool {
	var e objectNotFoundError
	return errors.As(err, &e)
}

type eventNotFoundError struct{ id string }

func (e eventNotFoundError) Error() string { return "event not found: " + e.id }

// ErrEventNotFound returns an error for an id that names no live event.
func ErrEventNotFound(id string) error { return eventNotFoundError{id: id} }

// IsEventNotFound reports whether err indicates an unknown event id.
func IsEventNotFound(err error) bool {
	var e eventNotFoundError
	return errors.As(err, &e)
}
