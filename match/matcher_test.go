package match

import (
	"context"
	"testing"

	"github.com/poiesic/jobmatch/ai"
	"github.com/poiesic/jobmatch/ai/mock"
	"github.com/poiesic/jobmatch/core"
	"github.com/poiesic/jobmatch/storage"
	"github.com/poiesic/jobmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) storage.JobRepository {
	jobRepo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)

	t.Cleanup(func() {
		jobRepo.Close()
		backend.Close()
	})

	return jobRepo
}

func seedPostings(t *testing.T, jobRepo storage.JobRepository, postings ...*core.JobPosting) {
	_, err := jobRepo.AddJobPostings(context.Background(), postings...)
	require.NoError(t, err)
}

// capturingMonitor records every pipeline callback for assertions.
type capturingMonitor struct {
	started      bool
	query        string
	lexical      []float64
	lexicalErr   error
	semantic     []float64
	semanticErr  error
	normalized   []float64
	suggestion   core.RoleSuggestion
	report       *core.MatchReport
}

var _ MatchMonitor = (*capturingMonitor)(nil)

func (c *capturingMonitor) Start(query string) {
	c.started = true
	c.query = query
}

func (c *capturingMonitor) AfterLexicalScoring(similarities []float64, degraded error) {
	c.lexical = similarities
	c.lexicalErr = degraded
}

func (c *capturingMonitor) AfterSemanticScoring(similarities []float64, degraded error) {
	c.semantic = similarities
	c.semanticErr = degraded
}

func (c *capturingMonitor) AfterFusion(normalized []float64) {
	c.normalized = normalized
}

func (c *capturingMonitor) AfterRoleSuggestion(suggestion core.RoleSuggestion) {
	c.suggestion = suggestion
}

func (c *capturingMonitor) Finish(report *core.MatchReport) {
	c.report = report
}

func TestNewMatcher(t *testing.T) {
	jobRepo := setupTestRepository(t)

	t.Run("creates matcher", func(t *testing.T) {
		m, err := NewMatcher(jobRepo, mock.NewMockProvider())
		require.NoError(t, err)
		require.NotNil(t, m)

		assert.True(t, m.semantic)
		assert.Equal(t, defaultMaxResults, m.maxResults)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewMatcher(nil, mock.NewMockProvider())
		assert.ErrorIs(t, err, ErrJobRepositoryRequired)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewMatcher(jobRepo, nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})

	t.Run("disabled provider runs lexical-only", func(t *testing.T) {
		m, err := NewMatcher(jobRepo, ai.Disabled())
		require.NoError(t, err)

		assert.False(t, m.semantic)
	})

	t.Run("with max results", func(t *testing.T) {
		m, err := NewMatcher(jobRepo, mock.NewMockProvider(), WithMaxResults(3))
		require.NoError(t, err)

		assert.Equal(t, 3, m.maxResults)
	})
}

func TestMatch_InputValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("empty resume", func(t *testing.T) {
		jobRepo := setupTestRepository(t)
		seedPostings(t, jobRepo, &core.JobPosting{Source: core.SourceIndeed, Title: "Data Scientist"})

		m, err := NewMatcher(jobRepo, mock.NewMockProvider())
		require.NoError(t, err)

		_, err = m.Match(ctx, "   \t\n  ")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("empty corpus", func(t *testing.T) {
		jobRepo := setupTestRepository(t)

		m, err := NewMatcher(jobRepo, mock.NewMockProvider())
		require.NoError(t, err)

		_, err = m.Match(ctx, "I know Python and SQL")
		assert.ErrorIs(t, err, ErrEmptyCorpus)
	})
}

func TestMatch_SinglePosting(t *testing.T) {
	ctx := context.Background()
	jobRepo := setupTestRepository(t)
	seedPostings(t, jobRepo, &core.JobPosting{
		Source:      core.SourceNaukri,
		Title:       "Data Scientist",
		Company:     "XYZ Analytics",
		Description: "Data analysis, statistics, Python, SQL, ML pipelines and dashboards",
	})

	m, err := NewMatcher(jobRepo, mock.NewMockProvider())
	require.NoError(t, err)

	report, err := m.Match(ctx, "I know Python and SQL")
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	// A one-posting corpus min-max normalizes to zero
	assert.Equal(t, 0.0, report.Results[0].Score)
	assert.Equal(t, "Data Scientist", report.Results[0].Posting.Title)

	// Role suggestion comes from title embeddings with a cosine confidence
	assert.Equal(t, "Data Scientist", report.Suggestion.Role)
	assert.Equal(t, core.ScaleCosine, report.Suggestion.Scale)

	assert.Equal(t, "I know Python and SQL", report.ExtractedText)
}

func TestMatch_RankingAndTruncation(t *testing.T) {
	ctx := context.Background()
	jobRepo := setupTestRepository(t)

	postings := []*core.JobPosting{
		{Source: core.SourceIndeed, Title: "Machine Learning Engineer", Company: "ABC Corp", Description: "Develop machine learning models, Python, scikit-learn, PyTorch, model deployment"},
		{Source: core.SourceNaukri, Title: "Data Scientist", Company: "XYZ Analytics", Description: "Data analysis, statistics, Python, SQL, ML pipelines and dashboards"},
		{Source: core.SourceLinkedIn, Title: "DevOps Engineer", Company: "CloudWorks", Description: "CI/CD, Docker, Kubernetes, monitoring, AWS"},
		{Source: core.SourceNaukri, Title: "Software Developer", Company: "NextGen Software", Description: "Backend development, Java, Spring, REST APIs"},
	}
	seedPostings(t, jobRepo, postings...)

	m, err := NewMatcher(jobRepo, mock.NewMockProvider())
	require.NoError(t, err)

	report, err := m.Match(ctx, "Python, SQL, statistics and data analysis")
	require.NoError(t, err)

	// Fewer postings than the cap: every posting is reported
	require.Len(t, report.Results, 4)

	// Scores are non-increasing and within the normalized range
	for i := 1; i < len(report.Results); i++ {
		assert.GreaterOrEqual(t, report.Results[i-1].Score, report.Results[i].Score)
	}
	for _, result := range report.Results {
		assert.GreaterOrEqual(t, result.Score, 0.0)
		assert.LessOrEqual(t, result.Score, 100.0)
		assert.NotEmpty(t, result.Links.LinkedIn)
		assert.NotEmpty(t, result.Links.Indeed)
		assert.NotEmpty(t, result.Links.Naukri)
	}
}

func TestMatch_ResultCap(t *testing.T) {
	ctx := context.Background()
	jobRepo := setupTestRepository(t)

	for i := 0; i < 15; i++ {
		seedPostings(t, jobRepo, &core.JobPosting{
			Source:      core.SourceIndeed,
			Title:       "Software Engineer",
			Description: "Backend development with Go and Postgres",
		})
	}

	m, err := NewMatcher(jobRepo, mock.NewMockProvider())
	require.NoError(t, err)

	report, err := m.Match(ctx, "Go developer with Postgres experience")
	require.NoError(t, err)
	assert.Len(t, report.Results, defaultMaxResults)

	capped, err := NewMatcher(jobRepo, mock.NewMockProvider(), WithMaxResults(3))
	require.NoError(t, err)

	report, err = capped.Match(ctx, "Go developer with Postgres experience")
	require.NoError(t, err)
	assert.Len(t, report.Results, 3)
}

func TestMatch_Idempotent(t *testing.T) {
	ctx := context.Background()
	jobRepo := setupTestRepository(t)

	seedPostings(t, jobRepo,
		&core.JobPosting{Source: core.SourceIndeed, Title: "NLP Engineer", Description: "NLP, transformers, huggingface, Python, tokenization"},
		&core.JobPosting{Source: core.SourceNaukri, Title: "Business Analyst", Description: "Business analysis, SQL, Excel, data visualization"},
	)

	m, err := NewMatcher(jobRepo, mock.NewMockProvider())
	require.NoError(t, err)

	first, err := m.Match(ctx, "Python NLP and transformers")
	require.NoError(t, err)

	second, err := m.Match(ctx, "Python NLP and transformers")
	require.NoError(t, err)

	require.Equal(t, len(first.Results), len(second.Results))
	for i := range first.Results {
		assert.Equal(t, first.Results[i].Posting.Id, second.Results[i].Posting.Id)
		assert.Equal(t, first.Results[i].Score, second.Results[i].Score)
	}
	assert.Equal(t, first.Suggestion, second.Suggestion)
}

func TestMatch_LexicalOnlyDegradation(t *testing.T) {
	ctx := context.Background()
	jobRepo := setupTestRepository(t)

	seedPostings(t, jobRepo,
		&core.JobPosting{Source: core.SourceIndeed, Title: "Data Scientist", Description: "Python, SQL, statistics"},
		&core.JobPosting{Source: core.SourceNaukri, Title: "Software Developer", Description: "Java, Spring, REST APIs"},
	)

	m, err := NewMatcher(jobRepo, ai.Disabled())
	require.NoError(t, err)

	monitor := &capturingMonitor{}
	report, err := m.MatchWithMonitor(ctx, "Python and SQL", monitor)
	require.NoError(t, err)

	// Semantic channel degraded to zeros, request still succeeded
	assert.ErrorIs(t, monitor.semanticErr, ErrSemanticUnavailable)
	for _, v := range monitor.semantic {
		assert.Equal(t, 0.0, v)
	}
	assert.NoError(t, monitor.lexicalErr)

	// Ranking driven by the lexical signal alone
	require.Len(t, report.Results, 2)
	assert.Equal(t, "Data Scientist", report.Results[0].Posting.Title)
	assert.Greater(t, report.Results[0].Score, report.Results[1].Score)

	// Fallback role suggestion reuses the normalized ranking
	assert.Equal(t, "Data Scientist", report.Suggestion.Role)
	assert.Equal(t, core.ScaleNormalized, report.Suggestion.Scale)
}

func TestMatchWithMonitor_Callbacks(t *testing.T) {
	ctx := context.Background()
	jobRepo := setupTestRepository(t)

	seedPostings(t, jobRepo,
		&core.JobPosting{Source: core.SourceIndeed, Title: "AI Researcher", Description: "Research on ML algorithms, Python, PyTorch, publications"},
		&core.JobPosting{Source: core.SourceLinkedIn, Title: "DevOps Engineer", Description: "CI/CD, Docker, Kubernetes, monitoring, AWS"},
	)

	m, err := NewMatcher(jobRepo, mock.NewMockProvider())
	require.NoError(t, err)

	monitor := &capturingMonitor{}
	report, err := m.MatchWithMonitor(ctx, "  ML   research with PyTorch ", monitor)
	require.NoError(t, err)

	assert.True(t, monitor.started)
	assert.Equal(t, "ML research with PyTorch", monitor.query)
	assert.Len(t, monitor.lexical, 2)
	assert.Len(t, monitor.semantic, 2)
	assert.Len(t, monitor.normalized, 2)
	assert.Equal(t, report.Suggestion, monitor.suggestion)
	assert.Same(t, report, monitor.report)
}

func TestMatch_SnippetTruncation(t *testing.T) {
	ctx := context.Background()
	jobRepo := setupTestRepository(t)

	longDescription := ""
	for i := 0; i < 60; i++ {
		longDescription += "distributed systems engineering "
	}

	seedPostings(t, jobRepo, &core.JobPosting{
		Source:      core.SourceLinkedIn,
		Title:       "Platform Engineer",
		Description: longDescription,
	})

	m, err := NewMatcher(jobRepo, mock.NewMockProvider())
	require.NoError(t, err)

	report, err := m.Match(ctx, "distributed systems")
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	assert.Len(t, []rune(report.Results[0].Snippet), snippetRunes)
}
