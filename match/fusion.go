package match

import "math"

const (
	// Fixed fusion weights favor the semantic channel as the higher-signal
	// source when a model is available. With an all-zero semantic signal the
	// fusion degrades to a 0.4-scaled lexical ranking; the subsequent min-max
	// normalization rescales it relative to the observed range either way.
	semanticWeight = 0.6
	lexicalWeight  = 0.4

	// normalizedCeiling is the upper bound of the normalized score scale.
	normalizedCeiling = 100.0

	// normalizeEpsilon guards the min-max division when every combined score
	// is identical.
	normalizeEpsilon = 1e-8
)

// FuseScores linearly combines the semantic and lexical similarity signals
// elementwise: 0.6*semantic + 0.4*lexical. Both inputs must be aligned to the
// same corpus snapshot and of equal length.
func FuseScores(semantic, lexical []float64) []float64 {
	combined := make([]float64, len(lexical))
	for i := range combined {
		combined[i] = semanticWeight*semantic[i] + lexicalWeight*lexical[i]
	}
	return combined
}

// MinMaxNormalize rescales scores onto [0, normalizedCeiling]:
// 100 * (score - min) / (max - min + ε). When all scores are identical every
// normalized value is 0. An empty input yields an empty output.
func MinMaxNormalize(scores []float64) []float64 {
	if len(scores) == 0 {
		return []float64{}
	}

	min, max := scores[0], scores[0]
	for _, score := range scores[1:] {
		if score < min {
			min = score
		}
		if score > max {
			max = score
		}
	}

	normalized := make([]float64, len(scores))
	spread := max - min + normalizeEpsilon
	for i, score := range scores {
		normalized[i] = normalizedCeiling * (score - min) / spread
	}
	return normalized
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// argmaxStable returns the index of the maximum value, preferring the
// earliest index among equal maxima. Returns -1 for an empty slice.
func argmaxStable(values []float64) int {
	if len(values) == 0 {
		return -1
	}
	best := 0
	for i, value := range values[1:] {
		if value > values[best] {
			best = i + 1
		}
	}
	return best
}
