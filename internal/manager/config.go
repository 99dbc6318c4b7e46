package manager

import (
	"time"

	"github.com/rs/zerolog"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultPoolSize = 128
)

// ManagerConfig encapsulates all tunables for EventManager construction.
type ManagerConfig struct {
	// Impl is the initially active backend. It may be nil and set later via SwitchImpl.
	Impl Impl
	// PoolSize is passed to Initialize as the expected number of events.
	PoolSize int
	// Logger receives construct failures, swaps and violations. Defaults to zerolog.Nop().
	Logger *zerolog.Logger
	// Publisher receives lifecycle notifications. Defaults to a no-op publisher.
	Publisher EventPublisher
	// OnViolation handles contract violations. Defaults to panicking. A handler
	// that returns makes the violating call a no-op.
	OnViolation func(*ContractViolation)
}

// NewWithConfig constructs an EventManager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *EventManager {
	m := &EventManager{
		impl:        cfg.Impl,
		phase:       PhaseSteady,
		publisher:   cfg.Publisher,
		onViolation: cfg.OnViolation,
		startTime:   time.Now(),
	}
	if cfg.Logger != nil {
		m.log = cfg.Logger.With().Str("component", "event_manager").Logger()
	} else {
		m.log = zerolog.Nop()
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	if m.onViolation == nil {
		m.onViolation = panicOnViolation
	}
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	m.Initialize(poolSize)
	return m
}
