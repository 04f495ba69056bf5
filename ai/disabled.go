package ai

import (
	"context"
	"errors"
)

// ErrEmbeddingUnavailable is returned by the disabled provider's embedder.
// Seeing it means the caller skipped the Available check.
var ErrEmbeddingUnavailable = errors.New("embedding capability unavailable")

// Disabled returns a Provider that represents the absence of an embedding
// model. Consumers run in lexical-only degraded mode when they receive one.
// This is the typed "no capability" variant: engine code branches on
// Available() once instead of scattering nil checks.
func Disabled() Provider {
	return disabledProvider{}
}

type disabledProvider struct{}

var _ Provider = disabledProvider{}

func (disabledProvider) Available() bool { return false }

func (disabledProvider) Embedder() Embedder { return disabledEmbedder{} }

func (disabledProvider) Close() error { return nil }

type disabledEmbedder struct{}

var _ Embedder = disabledEmbedder{}

func (disabledEmbedder) EmbedText(_ context.Context, _ string) ([]float32, error) {
	return nil, ErrEmbeddingUnavailable
}

func (disabledEmbedder) EmbedTexts(_ context.Context, _ []string) ([][]float32, error) {
	return nil, ErrEmbeddingUnavailable
}
