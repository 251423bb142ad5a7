// Package speechtotext defines the recognizer contract shared by the local
// CTC backend and remote transcription providers.
package speechtotext

import (
	"context"
	"time"
)

// TranscriptEvent is the result of recognizing one analysis window.
type TranscriptEvent struct {
	// Text is the recognized transcript, lower-cased, empty when the window
	// contained no recognizable speech or recognition degraded.
	Text string
	// Latency measures the recognition call itself.
	Latency time.Duration
	// Seq is the sequence number of the originating window.
	Seq uint64
}

// Recognizer converts an audio window (16 kHz mono float32 samples) into a
// transcript. Implementations are single-flight: concurrent calls queue
// rather than run in parallel.
type Recognizer interface {
	Recognize(ctx context.Context, samples []float32, seq uint64) (TranscriptEvent, error)
}
