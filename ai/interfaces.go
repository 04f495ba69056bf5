package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity scoring.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages an Embedder instance; whether a usable
// embedding model exists is a process-lifetime capability, reported by
// Available rather than by a nil Embedder.
type Provider interface {
	// Available reports whether this provider can serve embeddings.
	// Callers that see false must run in lexical-only degraded mode.
	Available() bool

	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	// When Available is false, the returned Embedder fails every call
	// with ErrEmbeddingUnavailable.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
