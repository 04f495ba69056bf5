package match

import (
	"context"
	"fmt"
	"math"
)

// CosineSimilarity calculates the cosine similarity between two vectors.
// Returns a value between -1 and 1, where 1 means identical direction.
// Either vector having zero magnitude (or mismatched dimensions) yields 0
// rather than a division error.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// semanticSimilarities embeds the documents and the query in a single batch
// and computes per-document cosine similarity against the query.
// The query is appended last so one round trip covers everything.
func (m *Matcher) semanticSimilarities(ctx context.Context, query string, docs []string) ([]float64, error) {
	if !m.semantic {
		return nil, ErrSemanticUnavailable
	}

	texts := make([]string, 0, len(docs)+1)
	texts = append(texts, docs...)
	texts = append(texts, query)

	vectors, err := m.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding result mismatch. expected %d, received %d", len(texts), len(vectors))
	}

	queryVec := vectors[len(vectors)-1]
	similarities := make([]float64, len(docs))
	for i := range docs {
		similarities[i] = CosineSimilarity(queryVec, vectors[i])
	}
	return similarities, nil
}
