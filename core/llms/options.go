// Package llms holds the provider-independent prompt types shared by the
// chat completion backends.
package llms

// PromptOptions is a struct that contains all the options for a prompt.
type PromptOptions struct {
	Instructions  string
	Messages      []Message
	Temperature   *float64
	TopP          *float64
	MaxTokens     int
	StopSequences []string
}

// PromptOption is a function that can be used to modify the prompt options.
type PromptOption func(*PromptOptions)

// WithSystemPrompt is a PromptOption that sets the system prompt for the
// prompt.
// Repeating this option will overwrite the previous system prompt.
func WithSystemPrompt(prompt string) PromptOption {
	return func(opts *PromptOptions) {
		opts.Instructions = prompt
		if len(opts.Messages) == 0 {
			opts.Messages = append(opts.Messages, Message{
				Role:    MessageRoleSystem,
				Content: prompt,
			})
		} else if opts.Messages[0].Role == MessageRoleSystem {
			opts.Messages[0].Content = prompt
		} else {
			opts.Messages = append([]Message{{
				Role:    MessageRoleSystem,
				Content: prompt,
			}}, opts.Messages...)
		}
	}
}

// WithMessages is a PromptOption that adds passed messages to the prompt.
// Repeating this option will sequentially add more messages.
func WithMessages(messages ...Message) PromptOption {
	return func(opts *PromptOptions) {
		opts.Messages = append(opts.Messages, messages...)
	}
}

// WithTemperature sets the sampling temperature. Low values keep the model
// close to the prompt's wording, which is what instruction extraction wants.
func WithTemperature(temperature float64) PromptOption {
	return func(opts *PromptOptions) {
		opts.Temperature = &temperature
	}
}

// WithTopP sets the nucleus sampling cutoff.
func WithTopP(topP float64) PromptOption {
	return func(opts *PromptOptions) {
		opts.TopP = &topP
	}
}

// WithMaxTokens caps the completion length.
func WithMaxTokens(maxTokens int) PromptOption {
	return func(opts *PromptOptions) {
		opts.MaxTokens = maxTokens
	}
}

// WithStopSequences adds sequences that end the completion early.
func WithStopSequences(sequences ...string) PromptOption {
	return func(opts *PromptOptions) {
		opts.StopSequences = append(opts.StopSequences, sequences...)
	}
}
