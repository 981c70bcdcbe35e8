package completion

import (
	"context"
	"fmt"
	"time"

	"github.com/mabdullah/linkedin-seo-poster/internal/config"
)

// NewCompleter creates a completion client based on configuration
func NewCompleter(ctx context.Context, cfg *config.Config) (Completer, error) {
	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	switch cfg.CompletionProvider {
	case "groq":
		return NewGroqClient(cfg.GroqAPIKey, cfg.CompletionModel, timeout), nil
	case "gemini":
		return NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.CompletionModel)
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", cfg.CompletionProvider)
	}
}
