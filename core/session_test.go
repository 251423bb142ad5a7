package orchestration

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/orpilot/orvoice-core/core/llms"
	"github.com/orpilot/orvoice-core/core/state"
)

type stubLLM struct {
	response string
}

func (l *stubLLM) Prompt(_ context.Context, _ string, _ ...llms.PromptOption) (string, error) {
	return l.response, nil
}

func TestStartSessionRejectsUnknownProcedure(t *testing.T) {
	_, err := StartSession(context.Background(), "Knee Replacement", &stubRecognizer{}, &stubLLM{})
	if err == nil {
		t.Fatal("expected an error for an unknown procedure")
	}
}

func TestStartSessionRunsEndToEnd(t *testing.T) {
	recognizer := &stubRecognizer{text: "turn on the ventilator"}
	llm := &stubLLM{
		response: `{"reasoning": "Ventilation requested.", "machine_states": {"0": [], "1": ["Ventilator"]}}`,
	}

	snapshotSeen := make(chan struct{})
	var once sync.Once
	session, err := StartSession(context.Background(), "Heart Transplantation", recognizer, llm,
		WithStoreOptions(state.WithPath(filepath.Join(t.TempDir(), "machine_states.json"))),
		WithOrchestrateOptions(
			WithSnapshotCallback(func(state.Snapshot) { once.Do(func() { close(snapshotSeen) }) }),
		),
	)
	if err != nil {
		t.Fatalf("failed to start session: %v", err)
	}
	defer session.Stop()

	if session.Catalog.Procedure != "Heart Transplantation" {
		t.Fatalf("unexpected catalog %q", session.Catalog.Procedure)
	}
	if on := session.Store.Snapshot().On(); len(on) != 0 {
		t.Fatalf("expected an all-off initial state, got %v", on)
	}

	session.Orchestrator.PushAudio(speechAudio(25))
	waitForSignal(t, snapshotSeen, "a snapshot update")

	snapshot := session.Store.Snapshot()
	if on := snapshot.On(); len(on) != 1 || on[0] != "Ventilator" {
		t.Fatalf("expected the ventilator on, got %v", on)
	}
	if snapshot.Transcription != "turn on the ventilator" {
		t.Fatalf("unexpected transcription %q", snapshot.Transcription)
	}
}
