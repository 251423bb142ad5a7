// Package intent turns a transcription into a validated equipment
// instruction: prompt the language model, recover JSON from whatever it
// returns, and resolve machine names against the procedure's catalog.
package intent

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"

	"github.com/orpilot/orvoice-core/core/catalog"
	"github.com/orpilot/orvoice-core/core/llms"
	"github.com/orpilot/orvoice-core/core/state"
)

const inferenceFailedReasoning = "Inference failed - no state change applied."

// Sampling parameters tuned for instruction extraction: near-greedy output,
// capped by token count rather than wall clock.
const (
	temperature = 0.1
	topP        = 0.9
	maxTokens   = 256
)

// TextGenerator is the slice of the LLM client the reasoner needs.
type TextGenerator interface {
	Prompt(ctx context.Context, prompt string, opts ...llms.PromptOption) (string, error)
}

// Reasoner extracts equipment instructions from transcriptions. It never
// fails a pipeline step: model and parse failures degrade to a do-nothing
// result, and only context cancellation is returned as an error.
type Reasoner struct {
	llm     TextGenerator
	catalog catalog.Catalog
	prompts *promptBuilder

	parseFallbacks metric.Int64Counter
}

func NewReasoner(llm TextGenerator, cat catalog.Catalog) *Reasoner {
	parseFallbacks, err := meter.Int64Counter("intent.parse.fallbacks",
		metric.WithDescription("Number of model responses no parse strategy could recover"),
	)
	if err != nil {
		logger.Warn("Failed to create parse fallback counter", "error", err)
	}

	return &Reasoner{
		llm:            llm,
		catalog:        cat,
		prompts:        newPromptBuilder(cat),
		parseFallbacks: parseFallbacks,
	}
}

// Reason prompts the model with the transcription and the current state,
// then parses the response through the strategy cascade. The returned
// result holds machine names as the model wrote them; use Resolve to map
// them to the catalog.
func (r *Reasoner) Reason(ctx context.Context, transcription string, snapshot state.Snapshot) (ReasoningResult, error) {
	ctx, span := tracer.Start(ctx, "reason about transcription")
	defer span.End()
	span.SetAttributes(attribute.String("transcription", transcription))

	response, err := r.llm.Prompt(ctx,
		r.prompts.buildUserMessage(transcription, snapshot),
		llms.WithSystemPrompt(r.prompts.systemPrompt),
		llms.WithTemperature(temperature),
		llms.WithTopP(topP),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if ctx.Err() != nil {
			return ReasoningResult{}, err
		}
		logger.Error("Model inference failed", "error", err)
		return ReasoningResult{Reasoning: inferenceFailedReasoning}, nil
	}

	parsed, strategy, ok := parseResponse(response)
	span.SetAttributes(attribute.String("parse.strategy", strategy))
	if !ok {
		logger.Warn("Could not parse model response", "response", truncate(response, 300))
		if r.parseFallbacks != nil {
			r.parseFallbacks.Add(ctx, 1)
		}
	}

	return ReasoningResult{
		Reasoning: parsed.Reasoning,
		TurnOn:    parsed.turnOn(),
		TurnOff:   parsed.turnOff(),
	}, nil
}

// Catalog returns the catalog this reasoner resolves against.
func (r *Reasoner) Catalog() catalog.Catalog {
	return r.catalog
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
