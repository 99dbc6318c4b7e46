//go:build oto

package manager

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// otoBuilt indicates whether this binary can play audio through oto.
var otoBuilt = true

// oto supports a single context per process, so it outlives backend swaps and
// is suspended/resumed instead of closed.
var (
	otoOnce      sync.Once
	otoShared    *oto.Context
	otoDevice    *sharedDevice
	otoFormat    [2]int // sample rate, channels
	otoCreateErr error
)

// otoImpl plays one synthesized tone per event through an oto.Player.
type otoImpl struct {
	ctx       *oto.Context
	opts      ImplOptions
	closeOnce sync.Once
}

type otoVoice struct {
	player *oto.Player
}

func newOtoImpl(opts ImplOptions) (Impl, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   opts.SampleRate,
			ChannelCount: opts.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			otoCreateErr = err
			return
		}
		<-ready
		otoShared = ctx
		otoDevice = &sharedDevice{resume: ctx.Resume, suspend: ctx.Suspend}
		otoFormat = [2]int{opts.SampleRate, opts.Channels}
	})
	if otoCreateErr != nil {
		return nil, ErrDependencyUnavailable(fmt.Sprintf("oto context: %v", otoCreateErr))
	}
	if otoFormat != [2]int{opts.SampleRate, opts.Channels} {
		opts.Logger.Warn().
			Int("sample_rate", otoFormat[0]).Int("channels", otoFormat[1]).
			Msg("oto cannot be reinitialized; keeping the existing output format")
		opts.SampleRate, opts.Channels = otoFormat[0], otoFormat[1]
	}
	if err := otoDevice.acquire(); err != nil {
		return nil, ErrDependencyUnavailable(fmt.Sprintf("oto resume: %v", err))
	}
	return &otoImpl{ctx: otoShared, opts: opts}, nil
}

func (o *otoImpl) Name() string { return "oto" }

func (o *otoImpl) ConstructEvent(ev *Event) (Payload, error) {
	if err := o.ctx.Err(); err != nil {
		return nil, fmt.Errorf("oto device: %w", err)
	}
	trig := o.opts.Resolve(ev.TriggerName())
	var d time.Duration
	if !trig.Loop {
		d = time.Duration(trig.DurationMS) * time.Millisecond
	}
	p := o.ctx.NewPlayer(NewTone(trig.FrequencyHz, d, o.opts.SampleRate, o.opts.Channels))
	p.Play()
	ev.setState(StatePlaying)
	return &otoVoice{player: p}, nil
}

func (o *otoImpl) DestructEvent(p Payload) {
	v, ok := p.(*otoVoice)
	if !ok {
		panic(fmt.Sprintf("oto backend: foreign payload %T", p))
	}
	v.player.Pause()
	if err := v.player.Close(); err != nil {
		o.opts.Logger.Warn().Err(err).Msg("oto player close failed")
	}
}

// Close releases this backend's hold on the shared context. The context is
// suspended once no oto backend is left.
func (o *otoImpl) Close() error {
	var err error
	o.closeOnce.Do(func() { err = otoDevice.release() })
	return err
}
