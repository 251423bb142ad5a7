package segment

import (
	"time"

	"github.com/orpilot/orvoice-core/core/audio"
)

type Options struct {
	SampleRate int
	BlockSize  int

	// WindowDuration bounds the ring buffer; an emitted window never covers
	// more audio than this.
	WindowDuration time.Duration

	// SpeechThreshold and SilenceThreshold form the RMS hysteresis gap;
	// speech is declared above the first, silence below the second.
	SpeechThreshold  float64
	SilenceThreshold float64

	// TrailingAfter is the negative-block run that moves Voicing to Trailing
	// (the hangover that keeps word endings). SilenceAfter is the longer run
	// that returns Trailing to Silence.
	TrailingAfter time.Duration
	SilenceAfter  time.Duration

	// EmitStride re-emits a growing window while voicing persists, for
	// low-latency partial results on long utterances.
	EmitStride time.Duration

	MinSpeechDuration time.Duration
	PreRollDuration   time.Duration

	OnWindow        func(Window)
	OnSpeechStarted func()
	OnSpeechEnded   func()
}

type Option func(*Options)

func defaultOptions() Options {
	return Options{
		SampleRate:        audio.DefaultSampleRate,
		BlockSize:         audio.DefaultBlockSize,
		WindowDuration:    10 * time.Second,
		SpeechThreshold:   0.012,
		SilenceThreshold:  0.007,
		TrailingAfter:     200 * time.Millisecond,
		SilenceAfter:      750 * time.Millisecond,
		EmitStride:        3 * time.Second,
		MinSpeechDuration: 300 * time.Millisecond,
		PreRollDuration:   500 * time.Millisecond,
	}
}

func WithWindowDuration(d time.Duration) Option {
	return func(o *Options) { o.WindowDuration = d }
}

func WithThresholds(speech, silence float64) Option {
	return func(o *Options) {
		o.SpeechThreshold = speech
		o.SilenceThreshold = silence
	}
}

func WithTrailingAfter(d time.Duration) Option {
	return func(o *Options) { o.TrailingAfter = d }
}

func WithSilenceAfter(d time.Duration) Option {
	return func(o *Options) { o.SilenceAfter = d }
}

func WithEmitStride(d time.Duration) Option {
	return func(o *Options) { o.EmitStride = d }
}

func WithMinSpeechDuration(d time.Duration) Option {
	return func(o *Options) { o.MinSpeechDuration = d }
}

func WithPreRollDuration(d time.Duration) Option {
	return func(o *Options) { o.PreRollDuration = d }
}

func WithSampleRate(rate int) Option {
	return func(o *Options) { o.SampleRate = rate }
}

func WithBlockSize(size int) Option {
	return func(o *Options) { o.BlockSize = size }
}

func WithWindowCallback(callback func(Window)) Option {
	return func(o *Options) { o.OnWindow = callback }
}

func WithSpeechStartedCallback(callback func()) Option {
	return func(o *Options) { o.OnSpeechStarted = callback }
}

func WithSpeechEndedCallback(callback func()) Option {
	return func(o *Options) { o.OnSpeechEnded = callback }
}
