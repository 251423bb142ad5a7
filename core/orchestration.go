// Package orchestration runs the voice control pipeline: capture audio,
// segment it into speech windows, recognize each window, reason about the
// transcription, and apply the resulting instruction to the state store.
package orchestration

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/orpilot/orvoice-core/core/audio"
	"github.com/orpilot/orvoice-core/core/catalog"
	"github.com/orpilot/orvoice-core/core/events"
	"github.com/orpilot/orvoice-core/core/intent"
	"github.com/orpilot/orvoice-core/core/segment"
)

// Orchestrator owns one control session. Windows flow through a bounded
// queue into a single inference worker, so recognition and reasoning are
// strictly sequential even when capture runs hot.
type Orchestrator struct {
	recognizer Recognizer
	reasoner   IntentReasoner
	store      StateStore
	catalog    catalog.Catalog

	audioInput     AudioInput
	queueSize      int
	segmentOptions []segment.Option

	segmenter *segment.Segmenter
	queue     *windowQueue

	orchestrateOptions OrchestrateOptions
	baseContext        context.Context
	cancel             context.CancelFunc

	started   atomic.Bool
	closeOnce sync.Once
	done      chan struct{}
	errMu     sync.Mutex
	err       error

	windowsProcessed metric.Int64Counter
	windowsDropped   metric.Int64Counter
}

// NewOrchestrator wires the pipeline stages together. The catalog must be
// the one the store and reasoner were built with.
func NewOrchestrator(recognizer Recognizer, reasoner IntentReasoner, store StateStore, cat catalog.Catalog, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		recognizer:  recognizer,
		reasoner:    reasoner,
		store:       store,
		catalog:     cat,
		queueSize:   defaultQueueSize,
		baseContext: context.Background(),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(o)
	}

	var err error
	if o.windowsProcessed, err = meter.Int64Counter("pipeline.windows.processed",
		metric.WithDescription("Number of windows run through recognition"),
	); err != nil {
		logger.Warn("Failed to create processed windows counter", "error", err)
	}
	if o.windowsDropped, err = meter.Int64Counter("pipeline.windows.dropped",
		metric.WithDescription("Number of windows dropped under backpressure"),
	); err != nil {
		logger.Warn("Failed to create dropped windows counter", "error", err)
	}

	return o
}

// Orchestrate starts the pipeline and returns once capture and the worker
// are running. ctx cancellation closes the orchestrator.
//
// Contract: call Orchestrate at most once per orchestrator instance.
func (o *Orchestrator) Orchestrate(ctx context.Context, opts ...OrchestrateOption) error {
	if !o.started.CompareAndSwap(false, true) {
		return fmt.Errorf("orchestrator already started")
	}

	o.orchestrateOptions = OrchestrateOptions{}
	for _, opt := range opts {
		opt(&o.orchestrateOptions)
	}

	ctx, cancel := context.WithCancel(ctx)
	o.baseContext = ctx
	o.cancel = cancel

	o.queue = newWindowQueue(o.queueSize, func(dropped segment.Window) {
		logger.Warn("Dropping window under backpressure", "seq", dropped.Seq)
		if o.windowsDropped != nil {
			o.windowsDropped.Add(ctx, 1)
		}
		o.emit(events.NewWindowDropped(dropped.Seq))
	})

	segmentOptions := append([]segment.Option{
		segment.WithWindowCallback(func(w segment.Window) { o.queue.push(w) }),
		segment.WithSpeechStartedCallback(func() { o.emit(events.NewSpeechStarted()) }),
		segment.WithSpeechEndedCallback(func() { o.emit(events.NewSpeechEnded()) }),
	}, o.segmentOptions...)
	o.segmenter = segment.NewSegmenter(segmentOptions...)

	worker := panicSafeNamedWorker("pipeline", o.runPipeline)
	go func() {
		defer close(o.done)
		if err := worker(ctx); err != nil {
			o.recordErr(err)
			logger.Error("Pipeline worker stopped", "error", err)
		}
		cancel()
	}()

	withContextCancelHook(ctx, func() { o.Close() })

	if o.audioInput != nil {
		if err := o.audioInput.StartCapture(ctx, func(raw []byte) {
			o.PushAudio(raw)
		}); err != nil {
			o.Close()
			return fmt.Errorf("failed to start audio capture: %w", err)
		}
	}

	return nil
}

// PushAudio feeds raw little-endian 16-bit PCM into the pipeline. This is
// the entry point for audio that arrives over the network instead of a
// local capture device.
func (o *Orchestrator) PushAudio(raw []byte) {
	if o.segmenter == nil {
		return
	}
	o.segmenter.Push(audio.DecodeS16LE(raw))
}

// Close stops capture, flushes any in-flight speech through the pipeline,
// and waits for the worker to drain.
func (o *Orchestrator) Close() {
	// Without a started worker there is nothing closing o.done to wait on.
	if !o.started.Load() {
		return
	}
	o.closeOnce.Do(func() {
		if o.audioInput != nil {
			if err := o.audioInput.StopCapture(); err != nil {
				logger.Warn("Failed to stop audio capture", "error", err)
			}
		}
		if o.segmenter != nil {
			o.segmenter.Flush()
		}
		if o.queue != nil {
			o.queue.close()
		}
		<-o.done
		if o.cancel != nil {
			o.cancel()
		}
	})
}

// Done closes when the pipeline worker has stopped, either through Close or
// a fatal error.
func (o *Orchestrator) Done() <-chan struct{} {
	return o.done
}

// Err reports why the pipeline stopped, nil for a clean shutdown.
func (o *Orchestrator) Err() error {
	o.errMu.Lock()
	defer o.errMu.Unlock()
	return o.err
}

func (o *Orchestrator) recordErr(err error) {
	o.errMu.Lock()
	defer o.errMu.Unlock()
	if o.err == nil {
		o.err = err
	}
}

// runPipeline is the single inference worker. Persistence failures are
// fatal: continuing after one would let the in-memory state diverge from
// the on-disk record.
func (o *Orchestrator) runPipeline(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case window, ok := <-o.queue.windows:
			if !ok {
				return nil
			}
			if err := o.processWindow(ctx, window); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

func (o *Orchestrator) processWindow(ctx context.Context, window segment.Window) error {
	ctx, span := tracer.Start(ctx, "process window",
		trace.WithAttributes(attribute.Int64("window.seq", int64(window.Seq))),
	)
	defer span.End()

	if o.windowsProcessed != nil {
		o.windowsProcessed.Add(ctx, 1)
	}

	transcript, err := o.recognizer.Recognize(ctx, window.Samples, window.Seq)
	if err != nil {
		// Recognition failures only cost this window.
		logger.Error("Recognition failed", "error", err, "seq", window.Seq)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil
	}
	o.emit(events.NewTranscriptFinal(transcript.Seq, transcript.Text, transcript.Latency))

	if transcript.Text == "" {
		return nil
	}

	result, err := o.reasoner.Reason(ctx, transcript.Text, o.store.Snapshot())
	if err != nil {
		logger.Error("Reasoning failed", "error", err, "seq", window.Seq)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil
	}

	instruction := intent.Resolve(result, o.catalog)
	snapshot, err := o.store.Apply(
		instruction.TurnOn,
		instruction.TurnOff,
		instruction.Unresolved,
		transcript.Text,
		instruction.Reasoning,
	)
	if err != nil {
		err = fmt.Errorf("failed to apply instruction: %w", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	o.emit(events.NewSnapshotUpdated(snapshot))
	return nil
}
