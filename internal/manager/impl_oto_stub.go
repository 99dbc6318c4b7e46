//go:build !oto

package manager

// This file provides a no-CGO stub for the oto backend. It is compiled when
// the 'oto' build tag is NOT set, keeping default builds and CI CGO-free.
// The real backend lives in impl_oto.go (tagged 'oto').

// otoBuilt indicates whether this binary can play audio through oto.
var otoBuilt = false

func newOtoImpl(ImplOptions) (Impl, error) {
	return nil, ErrDependencyUnavailable("oto backend not built (missing 'oto' build tag)")
}
