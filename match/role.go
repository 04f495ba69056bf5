package match

import (
	"context"

	"github.com/poiesic/jobmatch/core"
)

// suggestRole picks the single best-fit role label for the resume.
//
// With an embedding model the titles alone are embedded (not the full
// descriptions) and the suggestion is the title with the highest raw cosine
// similarity against the query, tagged ScaleCosine. Without a model the
// already-normalized fused scores stand in: the argmax posting's title wins
// and the confidence is its normalized score divided by 100, tagged
// ScaleNormalized. The two scales are not comparable; callers must branch on
// the tag.
//
// Any failure here yields the zero suggestion and never fails the request.
func (m *Matcher) suggestRole(ctx context.Context, query string, titles []string, normalized []float64) core.RoleSuggestion {
	if !m.semantic {
		best := argmaxStable(normalized)
		if best < 0 {
			return core.RoleSuggestion{}
		}
		return core.RoleSuggestion{
			Role:       titles[best],
			Confidence: normalized[best] / normalizedCeiling,
			Scale:      core.ScaleNormalized,
		}
	}

	titleVecs, err := m.embedder.EmbedTexts(ctx, titles)
	if err != nil {
		m.logger.Warn("error embedding posting titles for role suggestion", "err", err)
		return core.RoleSuggestion{}
	}
	if len(titleVecs) != len(titles) {
		m.logger.Warn("title embedding count mismatch", "expected", len(titles), "received", len(titleVecs))
		return core.RoleSuggestion{}
	}

	queryVec, err := m.embedder.EmbedText(ctx, query)
	if err != nil {
		m.logger.Warn("error embedding resume for role suggestion", "err", err)
		return core.RoleSuggestion{}
	}

	similarities := make([]float64, len(titles))
	for i, vec := range titleVecs {
		similarities[i] = CosineSimilarity(queryVec, vec)
	}

	best := argmaxStable(similarities)
	if best < 0 {
		return core.RoleSuggestion{}
	}
	return core.RoleSuggestion{
		Role:       titles[best],
		Confidence: similarities[best],
		Scale:      core.ScaleCosine,
	}
}
