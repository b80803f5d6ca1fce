package sitechat

import "context"

// Embedder converts text into a vector representation.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Completer invokes a language model to complete a prompt.
type Completer interface {
	// Complete returns the model's raw completion for the prompt.
	Complete(ctx context.Context, prompt string) (string, error)

	// Ping reports whether the completion backend is reachable.
	// Returns EUNAVAILABLE if it is not.
	Ping(ctx context.Context) error
}
