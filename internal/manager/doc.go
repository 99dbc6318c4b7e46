// Package manager owns the lifecycle of audio events and keeps them in lockstep
// with the active middleware backend (Impl). It is structured into small files
// by concern:
//
//   - manager.go: EventManager, construction/destruction and the swap steps.
//   - config.go: ManagerConfig and package defaults; NewWithConfig applies defaults.
//   - types.go: State, Phase, Object and Snapshot.
//   - event.go: the Event handle handed out to callers.
//   - impl.go: the Impl capability interface and Payload.
//   - switch.go: SwitchImpl, the full backend swap sequence.
//   - errors.go: ContractViolation and error helpers (IsContractViolation, ...).
//   - events.go, eventpub_memory.go: lifecycle notifications.
//   - status_report.go: Snapshot/Status and the read-only debug query.
//   - impl_null.go, impl_oto*.go, impl_registry.go: concrete backends.
//   - device.go, tone.go: the shared output device and tone source used by oto.
//
// Build tags and backends:
//
//   - null: always available, produces no sound.
//   - oto: real playback through github.com/ebitengine/oto/v3. Enabled with
//     `-tags=oto` (needs CGO and ALSA on Linux). Without the tag a stub returns
//     a dependency-unavailable error.
//
// The manager is meant to be driven from a single update pass. Every mutation
// still runs under one mutex so that lookup, removal and backend destruction
// form a single critical section and read-only queries are safe from other
// goroutines.
//
// Precondition violations are fatal by default: they are raised as
// *ContractViolation through ManagerConfig.OnViolation, which panics unless
// replaced. A handler that returns makes the offending call a no-op.
package manager
