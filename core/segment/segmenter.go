// Package segment turns a continuous stream of capture blocks into discrete
// analysis windows using an RMS voice-activity state machine. The producer
// side (Push) never blocks: audio lands in a fixed ring that overwrites its
// oldest samples when the consumer falls behind.
package segment

import (
	"context"
	"math"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
)

type vadState int

const (
	stateSilence vadState = iota
	stateVoicing
	stateTrailing
)

// Window is one fixed-bound slice of the audio stream, handed to the
// recognizer exactly once. Seq is monotonic over the segmenter's lifetime.
type Window struct {
	Samples  []float32
	Seq      uint64
	Duration time.Duration
}

type Segmenter struct {
	mu      sync.Mutex
	options Options
	ring    *ring
	pending []float32

	state          vadState
	negativeRun    int
	utteranceStart uint64
	strideAnchor   uint64
	seq            uint64

	trailingBlocks int
	silenceBlocks  int
	strideSamples  uint64
	minSamples     int
	preRollSamples uint64

	windowsEmitted metric.Int64Counter
}

func NewSegmenter(opts ...Option) *Segmenter {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	blocksPer := func(d time.Duration) int {
		blocks := int(d.Seconds() * float64(options.SampleRate) / float64(options.BlockSize))
		if blocks < 1 {
			blocks = 1
		}
		return blocks
	}

	windowsEmitted, err := meter.Int64Counter("segmenter.windows_emitted")
	if err != nil {
		logger.Warn("Failed to create windows emitted counter", "error", err)
	}

	return &Segmenter{
		options:        options,
		ring:           newRing(int(options.WindowDuration.Seconds() * float64(options.SampleRate))),
		trailingBlocks: blocksPer(options.TrailingAfter),
		silenceBlocks:  blocksPer(options.SilenceAfter),
		strideSamples:  uint64(options.EmitStride.Seconds() * float64(options.SampleRate)),
		minSamples:     int(options.MinSpeechDuration.Seconds() * float64(options.SampleRate)),
		preRollSamples: uint64(options.PreRollDuration.Seconds() * float64(options.SampleRate)),
		windowsEmitted: windowsEmitted,
	}
}

// Push feeds raw capture samples into the segmenter. It re-chunks arbitrary
// sized input into the configured block size and must never block; it is
// safe to call from an audio device callback.
func (s *Segmenter) Push(samples []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = append(s.pending, samples...)
	for len(s.pending) >= s.options.BlockSize {
		block := s.pending[:s.options.BlockSize]
		s.pending = s.pending[s.options.BlockSize:]
		s.processBlock(block)
	}
}

// Flush emits whatever utterance is in flight, if it is long enough. Called
// on session stop so trailing speech is not lost.
func (s *Segmenter) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != stateSilence {
		s.emitWindow()
		s.state = stateSilence
		s.negativeRun = 0
		if s.options.OnSpeechEnded != nil {
			s.options.OnSpeechEnded()
		}
	}
}

func (s *Segmenter) processBlock(block []float32) {
	s.ring.write(block)
	level := rms(block)

	switch s.state {
	case stateSilence:
		if level >= s.options.SpeechThreshold {
			start := uint64(0)
			written := s.ring.total
			if span := uint64(len(block)) + s.preRollSamples; written > span {
				start = written - span
			}
			s.state = stateVoicing
			s.negativeRun = 0
			s.utteranceStart = start
			s.strideAnchor = written
			logger.Debug("voice activity started")
			if s.options.OnSpeechStarted != nil {
				s.options.OnSpeechStarted()
			}
		}

	case stateVoicing:
		if level < s.options.SilenceThreshold {
			s.negativeRun++
			if s.negativeRun >= s.trailingBlocks {
				s.state = stateTrailing
				s.emitWindow()
			}
			return
		}
		s.negativeRun = 0

		if s.ring.total-s.strideAnchor >= s.strideSamples {
			// Long utterance: emit a partial window so transcription does
			// not wait for the speaker to pause.
			s.strideAnchor = s.ring.total
			s.emitWindow()
		}

	case stateTrailing:
		if level >= s.options.SpeechThreshold {
			s.state = stateVoicing
			s.negativeRun = 0
			return
		}
		s.negativeRun++
		if s.negativeRun >= s.silenceBlocks {
			s.state = stateSilence
			s.negativeRun = 0
			logger.Debug("voice activity ended")
			if s.options.OnSpeechEnded != nil {
				s.options.OnSpeechEnded()
			}
		}
	}
}

func (s *Segmenter) emitWindow() {
	samples := s.ring.since(s.utteranceStart)
	if len(samples) < s.minSamples {
		logger.Debug("utterance too short, skipped",
			"samples", len(samples), "minimum", s.minSamples)
		return
	}

	s.seq++
	if s.windowsEmitted != nil {
		s.windowsEmitted.Add(context.Background(), 1)
	}
	if s.options.OnWindow != nil {
		s.options.OnWindow(Window{
			Samples:  samples,
			Seq:      s.seq,
			Duration: time.Duration(float64(len(samples)) / float64(s.options.SampleRate) * float64(time.Second)),
		})
	}
}

func rms(block []float32) float64 {
	if len(block) == 0 {
		return 0
	}
	sum := 0.0
	for _, sample := range block {
		sum += float64(sample) * float64(sample)
	}
	return math.Sqrt(sum / float64(len(block)))
}
