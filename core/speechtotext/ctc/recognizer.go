// Package ctc implements on-device speech recognition with a CTC acoustic
// model: log-mel feature extraction, ONNX inference and greedy decoding.
package ctc

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/orpilot/orvoice-core/core/speechtotext"
)

// Recognizer runs a CTC acoustic model over audio windows. Calls are
// single-flight: a second window waits for the first to finish rather than
// contending for the inference session.
type Recognizer struct {
	mu        sync.Mutex
	model     AcousticModel
	vocab     []string
	extractor *featureExtractor

	recognitionDuration metric.Float64Histogram
}

// NewRecognizer wires a loaded acoustic model to its vocabulary. The blank
// token must be the first vocabulary entry.
func NewRecognizer(model AcousticModel, vocab []string) (*Recognizer, error) {
	if model == nil {
		return nil, fmt.Errorf("acoustic model is required")
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("vocabulary is required")
	}

	recognitionDuration, err := meter.Float64Histogram("stt.recognition.duration",
		metric.WithDescription("Time spent recognizing a single window"),
		metric.WithUnit("s"),
	)
	if err != nil {
		logger.Warn("Failed to create recognition duration histogram", "error", err)
	}

	return &Recognizer{
		model:               model,
		vocab:               vocab,
		extractor:           newFeatureExtractor(),
		recognitionDuration: recognitionDuration,
	}, nil
}

// Recognize transcribes one window. Model failures degrade to an empty
// transcript instead of failing the pipeline; only context cancellation is
// surfaced as an error.
func (r *Recognizer) Recognize(ctx context.Context, samples []float32, seq uint64) (speechtotext.TranscriptEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, span := tracer.Start(ctx, "recognize window",
		trace.WithAttributes(
			attribute.Int64("window.seq", int64(seq)),
			attribute.Int("window.samples", len(samples)),
		),
	)
	defer span.End()

	start := time.Now()
	event := speechtotext.TranscriptEvent{Seq: seq}

	features := r.extractor.LogMel(samples)
	logits, outLen, err := r.model.Infer(ctx, features)
	if err != nil {
		if ctx.Err() != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return event, err
		}
		logger.Error("Acoustic model inference failed, dropping window", "error", err, "seq", seq)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		event.Latency = time.Since(start)
		return event, nil
	}

	// Rows past the reported length are padding from the batched export.
	if outLen >= 0 && outLen < len(logits) {
		logits = logits[:outLen]
	}
	event.Text = strings.ToLower(strings.TrimSpace(greedyDecode(logits, r.vocab)))
	event.Latency = time.Since(start)
	if r.recognitionDuration != nil {
		r.recognitionDuration.Record(ctx, event.Latency.Seconds())
	}
	span.SetAttributes(attribute.String("transcript", event.Text))
	return event, nil
}

// Close releases the underlying inference session.
func (r *Recognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.model.Close()
}
