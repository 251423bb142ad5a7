package events

import (
	"time"

	"github.com/orpilot/orvoice-core/core/state"
)

const (
	// KindSpeechStarted identifies start of voice activity in the input stream.
	KindSpeechStarted Kind = "pipeline.speech_started"
	// KindSpeechEnded identifies end of voice activity in the input stream.
	KindSpeechEnded Kind = "pipeline.speech_ended"
	// KindWindowDropped identifies an analysis window discarded under backpressure.
	KindWindowDropped Kind = "pipeline.window_dropped"
	// KindTranscriptFinal identifies the recognized text for one window.
	KindTranscriptFinal Kind = "pipeline.transcript_final"
	// KindSnapshotUpdated identifies a committed equipment state change.
	KindSnapshotUpdated Kind = "pipeline.snapshot_updated"
)

// SpeechStarted marks when voice activity starts.
type SpeechStarted struct{ Base }

// NewSpeechStarted creates a speech started event.
func NewSpeechStarted() SpeechStarted {
	return SpeechStarted{Base: NewBase(KindSpeechStarted)}
}

// SpeechEnded marks when voice activity ends.
type SpeechEnded struct{ Base }

// NewSpeechEnded creates a speech ended event.
func NewSpeechEnded() SpeechEnded {
	return SpeechEnded{Base: NewBase(KindSpeechEnded)}
}

// WindowDropped marks an analysis window dropped because the inference worker
// fell behind the capture stream.
type WindowDropped struct {
	Base
	Seq uint64
}

// NewWindowDropped creates a window dropped event.
func NewWindowDropped(seq uint64) WindowDropped {
	return WindowDropped{Base: NewBase(KindWindowDropped), Seq: seq}
}

// TranscriptFinal carries the recognized text of one analysis window.
type TranscriptFinal struct {
	Base
	Seq        uint64
	Transcript string
	Latency    time.Duration
}

// NewTranscriptFinal creates a final transcript event.
func NewTranscriptFinal(seq uint64, transcript string, latency time.Duration) TranscriptFinal {
	return TranscriptFinal{Base: NewBase(KindTranscriptFinal), Seq: seq, Transcript: transcript, Latency: latency}
}

// SnapshotUpdated carries the committed equipment snapshot after an apply.
type SnapshotUpdated struct {
	Base
	Snapshot state.Snapshot
}

// NewSnapshotUpdated creates a snapshot updated event.
func NewSnapshotUpdated(snapshot state.Snapshot) SnapshotUpdated {
	return SnapshotUpdated{Base: NewBase(KindSnapshotUpdated), Snapshot: snapshot}
}
