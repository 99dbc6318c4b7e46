package manager

import (
	"errors"
	"fmt"
)

// ContractViolation reports a broken precondition of the event manager. It is
// a programming error, not a runtime condition, and the default handler panics
// with it.
type ContractViolation struct {
	Op  string
	Msg string
}

func (v *ContractViolation) Error() string {
	return "event manager contract violation in " + v.Op + ": " + v.Msg
}

// IsContractViolation reports whether err (or a value recovered from a panic)
// is a contract violation.
func IsContractViolation(err error) bool {
	var v *ContractViolation
	return errors.As(err, &v)
}

// panicOnViolation is the default violation handler.
func panicOnViolation(v *ContractViolation) { panic(v) }

// constructFailedError wraps an error returned by Impl.ConstructEvent.
type constructFailedError struct {
	trigger string
	backend string
	err     error
}

func (e constructFailedError) Error() string {
	return fmt.Sprintf("construct event %q on backend %s: %v", e.trigger, e.backend, e.err)
}

func (e constructFailedError) Unwrap() error { return e.err }

// IsConstructFailed reports whether err came from a failing backend construct call.
func IsConstructFailed(err error) bool {
	var e constructFailedError
	return errors.As(err, &e)
}

// backendNotFoundError is returned by OpenImpl for unknown backend names.
type backendNotFoundError struct{ name string }

func (e backendNotFoundError) Error() string { return "backend not found: " + e.name }

// ErrBackendNotFound returns an error for a backend name that is not registered.
func ErrBackendNotFound(name string) error { return backendNotFoundError{name: name} }

// IsBackendNotFound reports whether err indicates an unknown backend name.
func IsBackendNotFound(err error) bool {
	var e backendNotFoundError
	return errors.As(err, &e)
}

// dependencyUnavailableError signals a backend that was not compiled in or
// whose device could not be opened, so the HTTP layer can return 503.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed backend dependency.
func IsDependencyUnavailable(err error) bool {
	var e dependencyUnavailableError
	return errors.As(err, &e)
}
