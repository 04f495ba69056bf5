package match

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/poiesic/jobmatch/ai"
	"github.com/poiesic/jobmatch/core"
	"github.com/poiesic/jobmatch/storage"
)

const (
	defaultMaxResults  = 10
	snippetRunes       = 400
	extractedTextRunes = 5000
)

// Matcher scores a resume against the job posting corpus using hybrid
// lexical and semantic similarity.
type Matcher struct {
	jobRepository storage.JobRepository
	embedder      ai.Embedder
	semantic      bool // whether the embedding capability is present for this process
	maxResults    int
	logger        *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// WithMaxResults sets how many ranked results a report holds.
// Default is 10; values below 1 reset to the default.
func WithMaxResults(n int) Option {
	return func(m *Matcher) error {
		if n < 1 {
			n = defaultMaxResults
		}
		m.maxResults = n
		return nil
	}
}

// NewMatcher creates a new matcher. The provider's availability is captured
// here, once per matcher: pass ai.Disabled() to run lexical-only.
func NewMatcher(
	jobRepository storage.JobRepository,
	provider ai.Provider,
	opts ...Option,
) (*Matcher, error) {
	if jobRepository == nil {
		return nil, ErrJobRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	m := &Matcher{
		jobRepository: jobRepository,
		embedder:      provider.Embedder(),
		semantic:      provider.Available(),
		maxResults:    defaultMaxResults,
		logger:        slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Match scores the resume text against every posting in the corpus and
// returns ranked results plus a best-fit role suggestion.
// Returns ErrEmptyQuery or ErrEmptyCorpus before any scoring happens; scorer
// failures degrade to zero signals and never abort the request.
func (m *Matcher) Match(ctx context.Context, resumeText string) (*core.MatchReport, error) {
	return m.MatchWithMonitor(ctx, resumeText, nil)
}

// MatchWithMonitor scores the resume with monitoring.
// The monitor receives callbacks at each stage of the pipeline.
func (m *Matcher) MatchWithMonitor(ctx context.Context, resumeText string, monitor MatchMonitor) (*core.MatchReport, error) {
	// Use noop monitor if none provided
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	query := Normalize(resumeText)
	monitor.Start(query)

	if query == "" {
		return nil, ErrEmptyQuery
	}

	// Corpus snapshot: ordering is fixed for the rest of the request and
	// every similarity vector indexes against it.
	postings, err := m.jobRepository.ListJobPostings(ctx)
	if err != nil {
		m.logger.Error("error listing job postings", "err", err)
		return nil, err
	}
	if len(postings) == 0 {
		return nil, ErrEmptyCorpus
	}

	docs := make([]string, len(postings))
	titles := make([]string, len(postings))
	for i, posting := range postings {
		docs[i] = Normalize(posting.CombinedText())
		titles[i] = posting.Title
	}

	// The two channels are pure computations over the same immutable inputs,
	// so they run concurrently and join before fusion.
	var wg sync.WaitGroup
	var lexical, semantic []float64
	var lexicalErr, semanticErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		lexical, lexicalErr = lexicalSimilarities(query, docs)
	}()
	go func() {
		defer wg.Done()
		semantic, semanticErr = m.semanticSimilarities(ctx, query, docs)
	}()
	wg.Wait()

	// Degradation policy: a failed channel contributes zeros instead of
	// failing the request.
	if lexicalErr != nil {
		m.logger.Warn("lexical scoring degraded to zero signal", "err", lexicalErr)
		lexical = make([]float64, len(docs))
	}
	if semanticErr != nil {
		m.logger.Warn("semantic scoring degraded to zero signal", "err", semanticErr)
		semantic = make([]float64, len(docs))
	}
	monitor.AfterLexicalScoring(lexical, lexicalErr)
	monitor.AfterSemanticScoring(semantic, semanticErr)

	normalized := MinMaxNormalize(FuseScores(semantic, lexical))
	monitor.AfterFusion(normalized)

	suggestion := m.suggestRole(ctx, query, titles, normalized)
	suggestion.Confidence = roundTo(suggestion.Confidence, 3)
	monitor.AfterRoleSuggestion(suggestion)

	report := &core.MatchReport{
		Suggestion:    suggestion,
		Results:       m.rank(postings, normalized),
		ExtractedText: truncateRunes(query, extractedTextRunes),
	}
	monitor.Finish(report)

	return report, nil
}

// rank orders postings by normalized score descending and assembles the top
// results. The sort is stable: equal scores preserve corpus order.
func (m *Matcher) rank(postings []*core.JobPosting, normalized []float64) []*core.MatchResult {
	indices := make([]int, len(postings))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return normalized[indices[a]] > normalized[indices[b]]
	})

	if len(indices) > m.maxResults {
		indices = indices[:m.maxResults]
	}

	results := make([]*core.MatchResult, 0, len(indices))
	for _, idx := range indices {
		posting := postings[idx]
		results = append(results, &core.MatchResult{
			Posting: posting,
			Score:   roundTo(normalized[idx], 2),
			Snippet: truncateRunes(posting.Description, snippetRunes),
			Links:   BuildSearchLinks(posting.Title),
		})
	}
	return results
}
