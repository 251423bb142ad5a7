package orchestration

import "github.com/orpilot/orvoice-core/core/events"

// emit dispatches a pipeline event to the general handler and the matching
// typed callback. Callbacks run on the pipeline goroutine, so they should
// hand off heavy work.
func (o *Orchestrator) emit(event events.Event) {
	opts := &o.orchestrateOptions
	if opts.onEvent != nil {
		opts.onEvent(event)
	}

	switch e := event.(type) {
	case events.SpeechStarted:
		if opts.onSpeechStarted != nil {
			opts.onSpeechStarted()
		}
	case events.SpeechEnded:
		if opts.onSpeechEnded != nil {
			opts.onSpeechEnded()
		}
	case events.TranscriptFinal:
		if opts.onTranscription != nil {
			opts.onTranscription(e.Transcript)
		}
	case events.SnapshotUpdated:
		if opts.onSnapshot != nil {
			opts.onSnapshot(e.Snapshot)
		}
	case events.WindowDropped:
		if opts.onWindowDropped != nil {
			opts.onWindowDropped(e.Seq)
		}
	}
}
