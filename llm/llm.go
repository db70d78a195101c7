package llm

import "context"

// Client abstracts the multimodal model provider used by the identifier.
// Implementations must be concurrency-safe if used across goroutines.
type Client interface {
	// IdentifyImage takes raw image bytes and their MIME type and returns
	// a single JSON string per the identification schema.
	IdentifyImage(ctx context.Context, imageData []byte, mimeType string) (string, error)
	// SourceName returns a short provider label for logs (e.g., "Gemini", "Stub").
	SourceName() string
}
