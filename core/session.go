package orchestration

import (
	"context"
	"fmt"

	"github.com/orpilot/orvoice-core/core/catalog"
	"github.com/orpilot/orvoice-core/core/intent"
	"github.com/orpilot/orvoice-core/core/state"
)

// Session bundles the pieces of one running procedure: the catalog chosen
// at start, the store holding its equipment state, and the orchestrator
// driving the pipeline.
type Session struct {
	Catalog      catalog.Catalog
	Store        *state.Store
	Orchestrator *Orchestrator
}

type SessionOptions struct {
	StoreOptions        []state.StoreOption
	OrchestratorOptions []OrchestratorOption
	OrchestrateOptions  []OrchestrateOption
}

type SessionOption func(*SessionOptions)

func WithStoreOptions(opts ...state.StoreOption) SessionOption {
	return func(o *SessionOptions) { o.StoreOptions = append(o.StoreOptions, opts...) }
}

func WithOrchestratorOptions(opts ...OrchestratorOption) SessionOption {
	return func(o *SessionOptions) { o.OrchestratorOptions = append(o.OrchestratorOptions, opts...) }
}

func WithOrchestrateOptions(opts ...OrchestrateOption) SessionOption {
	return func(o *SessionOptions) { o.OrchestrateOptions = append(o.OrchestrateOptions, opts...) }
}

// StartSession looks up the built-in catalog for the procedure, initializes
// an all-off store, builds a reasoner against the catalog, and starts the
// pipeline. Stop the session by cancelling ctx or calling Stop.
func StartSession(ctx context.Context, procedureID string, recognizer Recognizer, llm intent.TextGenerator, opts ...SessionOption) (*Session, error) {
	options := SessionOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	cat, err := catalog.Get(procedureID)
	if err != nil {
		return nil, err
	}

	store, err := state.NewStore(cat, options.StoreOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize state store: %w", err)
	}

	reasoner := intent.NewReasoner(llm, cat)
	orchestrator := NewOrchestrator(recognizer, reasoner, store, cat, options.OrchestratorOptions...)
	if err := orchestrator.Orchestrate(ctx, options.OrchestrateOptions...); err != nil {
		return nil, err
	}

	return &Session{
		Catalog:      cat,
		Store:        store,
		Orchestrator: orchestrator,
	}, nil
}

// Stop shuts the pipeline down, letting the in-flight window finish first.
func (s *Session) Stop() {
	s.Orchestrator.Close()
}
