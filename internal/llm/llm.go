package llm

import "context"

// Request carries one chat completion call. APIKey, when set, overrides the
// server's default key for this call only.
type Request struct {
	System      string
	Prompt      string
	Model       string
	APIKey      string
	Temperature float64
	MaxTokens   int
}

// Client is a minimal chat-completion interface to allow pluggable providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
