package match

import (
	"math"
	"sort"
)

// maxVocabularyTerms caps the lexical vocabulary at the most frequent terms
// across the corpus plus the query.
const maxVocabularyTerms = 20000

// termVector is a sparse TF-IDF vector keyed by vocabulary index.
type termVector map[int]float64

// lexicalSimilarities computes a TF-IDF cosine similarity between the query
// and every document. The query participates in vocabulary fitting and
// document frequencies like any other document, then is excluded from the
// corpus side of the comparison.
//
// Returns one value per document, each in [0, 1]. Returns
// ErrVocabularyDegenerate when no usable terms exist (for example, all texts
// are empty); callers collapse that to an all-zero signal.
func lexicalSimilarities(query string, docs []string) ([]float64, error) {
	all := make([][]string, 0, len(docs)+1)
	for _, doc := range docs {
		all = append(all, tokenize(doc))
	}
	all = append(all, tokenize(query))

	vocab := fitVocabulary(all)
	if len(vocab) == 0 {
		return nil, ErrVocabularyDegenerate
	}

	idf := inverseDocumentFrequencies(all, vocab)

	vectors := make([]termVector, len(all))
	for i, tokens := range all {
		vectors[i] = weighTerms(tokens, vocab, idf)
	}

	queryVec := vectors[len(vectors)-1]
	similarities := make([]float64, len(docs))
	for i := range docs {
		similarities[i] = sparseDot(queryVec, vectors[i])
	}
	return similarities, nil
}

// fitVocabulary selects up to maxVocabularyTerms terms, preferring the terms
// with the highest total occurrence count. Ties break alphabetically so the
// vocabulary is deterministic.
func fitVocabulary(tokenized [][]string) map[string]int {
	counts := make(map[string]int)
	for _, tokens := range tokenized {
		for _, token := range tokens {
			counts[token]++
		}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > maxVocabularyTerms {
		terms = terms[:maxVocabularyTerms]
	}

	vocab := make(map[string]int, len(terms))
	for i, term := range terms {
		vocab[term] = i
	}
	return vocab
}

// inverseDocumentFrequencies computes smoothed IDF values:
// idf(t) = ln((1+n)/(1+df(t))) + 1. Smoothing keeps terms that appear in
// every document from being zeroed out entirely.
func inverseDocumentFrequencies(tokenized [][]string, vocab map[string]int) []float64 {
	df := make([]int, len(vocab))
	for _, tokens := range tokenized {
		seen := make(map[int]bool, len(tokens))
		for _, token := range tokens {
			if idx, ok := vocab[token]; ok && !seen[idx] {
				seen[idx] = true
				df[idx]++
			}
		}
	}

	n := float64(len(tokenized))
	idf := make([]float64, len(vocab))
	for i, count := range df {
		idf[i] = math.Log((1+n)/(1+float64(count))) + 1
	}
	return idf
}

// weighTerms builds the L2-normalized TF-IDF vector for one document.
func weighTerms(tokens []string, vocab map[string]int, idf []float64) termVector {
	vec := make(termVector)
	for _, token := range tokens {
		if idx, ok := vocab[token]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for idx := range vec {
		vec[idx] *= idf[idx]
		norm += vec[idx] * vec[idx]
	}
	if norm == 0 {
		return vec
	}

	norm = math.Sqrt(norm)
	for idx := range vec {
		vec[idx] /= norm
	}
	return vec
}

// sparseDot computes the dot product of two sparse vectors. For unit-length
// inputs this is their cosine similarity.
func sparseDot(a, b termVector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, value := range a {
		dot += value * b[idx]
	}
	return dot
}
