package completion

import "context"

// Completer is an abstraction over text-completion providers. Input is a single
// opaque prompt; output is the generated text. No streaming, no multi-turn state.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
