package manager

import (
	"sort"

	"github.com/rs/zerolog"

	"audiod/pkg/types"
)

// Defaults for backends that render audio.
const (
	defaultSampleRate   = 48000
	defaultChannels     = 2
	defaultToneFreqHz   = 440
	defaultToneLengthMS = 500
)

// ImplOptions configures backends opened through OpenImpl.
type ImplOptions struct {
	SampleRate int
	Channels   int
	// Triggers resolves trigger definitions by name. Optional.
	Triggers func(name string) (types.Trigger, bool)
	Logger   *zerolog.Logger
}

func (o ImplOptions) withDefaults() ImplOptions {
	if o.SampleRate <= 0 {
		o.SampleRate = defaultSampleRate
	}
	if o.Channels <= 0 {
		o.Channels = defaultChannels
	}
	if o.Logger == nil {
		nop := zerolog.Nop()
		o.Logger = &nop
	}
	return o
}

// Resolve returns the trigger definition for name with playback defaults
// filled in. Unknown names resolve to a short default tone.
func (o ImplOptions) Resolve(name string) types.Trigger {
	if o.Triggers != nil {
		if t, ok := o.Triggers(name); ok {
			if t.FrequencyHz <= 0 {
				t.FrequencyHz = defaultToneFreqHz
			}
			if t.DurationMS <= 0 && !t.Loop {
				t.DurationMS = defaultToneLengthMS
			}
			return t
		}
	}
	return types.Trigger{Name: name, FrequencyHz: defaultToneFreqHz, DurationMS: defaultToneLengthMS}
}

var backends = map[string]func(ImplOptions) (Impl, error){
	"null": func(ImplOptions) (Impl, error) { return NewNullImpl(), nil },
	"oto":  newOtoImpl,
}

// BackendNames lists the registered backends in sorted order.
func BackendNames() []string {
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// BackendAvailable reports whether the named backend is compiled into this binary.
func BackendAvailable(name string) bool {
	switch name {
	case "null":
		return true
	case "oto":
		return otoBuilt
	}
	return false
}

// OpenImpl creates the backend registered under name.
func OpenImpl(name string, opts ImplOptions) (Impl, error) {
	open, ok := backends[name]
	if !ok {
		return nil, ErrBackendNotFound(name)
	}
	return open(opts.withDefaults())
}
