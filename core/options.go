package orchestration

import (
	"context"

	"github.com/orpilot/orvoice-core/core/audio"
	"github.com/orpilot/orvoice-core/core/events"
	"github.com/orpilot/orvoice-core/core/intent"
	"github.com/orpilot/orvoice-core/core/segment"
	"github.com/orpilot/orvoice-core/core/speechtotext"
	"github.com/orpilot/orvoice-core/core/state"
)

type OrchestratorOption func(*Orchestrator)

// Recognizer converts an audio window into a transcript.
type Recognizer interface {
	Recognize(ctx context.Context, samples []float32, seq uint64) (speechtotext.TranscriptEvent, error)
}

// IntentReasoner extracts an equipment instruction from a transcription.
type IntentReasoner interface {
	Reason(ctx context.Context, transcription string, snapshot state.Snapshot) (intent.ReasoningResult, error)
}

// StateStore is the slice of the state store the pipeline mutates.
type StateStore interface {
	Apply(turnOn, turnOff, unavailable []string, transcription, reasoning string) (state.Snapshot, error)
	Snapshot() state.Snapshot
}

// AudioInput is a capture backend, such as the miniaudio or portaudio
// clients.
type AudioInput interface {
	StartCapture(ctx context.Context, onAudio func(audio []byte)) error
	StopCapture() error
	EncodingInfo() audio.EncodingInfo
}

// WithAudioInput wires a capture backend. Without one, audio must be fed
// through PushAudio, which is how a server frontend delivers client audio.
func WithAudioInput(client AudioInput) OrchestratorOption {
	return func(o *Orchestrator) {
		o.audioInput = client
	}
}

// WithQueueSize overrides how many windows may wait for the inference
// worker before the oldest is dropped.
func WithQueueSize(size int) OrchestratorOption {
	return func(o *Orchestrator) {
		o.queueSize = size
	}
}

// WithSegmentOptions forwards tuning options to the voice activity
// segmenter.
func WithSegmentOptions(opts ...segment.Option) OrchestratorOption {
	return func(o *Orchestrator) {
		o.segmentOptions = append(o.segmentOptions, opts...)
	}
}

// OrchestrateOptions carries the per-run callbacks.
type OrchestrateOptions struct {
	onEvent         func(events.Event)
	onSpeechStarted func()
	onSpeechEnded   func()
	onTranscription func(transcript string)
	onSnapshot      func(snapshot state.Snapshot)
	onWindowDropped func(seq uint64)
}

type OrchestrateOption func(*OrchestrateOptions)

// WithEventHandler receives every pipeline event. The typed callbacks below
// are usually more convenient; this one exists for logging and replay.
func WithEventHandler(handler func(events.Event)) OrchestrateOption {
	return func(opts *OrchestrateOptions) {
		opts.onEvent = handler
	}
}

func WithSpeechStartedCallback(callback func()) OrchestrateOption {
	return func(opts *OrchestrateOptions) {
		opts.onSpeechStarted = callback
	}
}

func WithSpeechEndedCallback(callback func()) OrchestrateOption {
	return func(opts *OrchestrateOptions) {
		opts.onSpeechEnded = callback
	}
}

func WithTranscriptionCallback(callback func(transcript string)) OrchestrateOption {
	return func(opts *OrchestrateOptions) {
		opts.onTranscription = callback
	}
}

func WithSnapshotCallback(callback func(snapshot state.Snapshot)) OrchestrateOption {
	return func(opts *OrchestrateOptions) {
		opts.onSnapshot = callback
	}
}

func WithWindowDroppedCallback(callback func(seq uint64)) OrchestrateOption {
	return func(opts *OrchestrateOptions) {
		opts.onWindowDropped = callback
	}
}
