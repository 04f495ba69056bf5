package ingestion

import (
	"context"
	"testing"

	"github.com/poiesic/jobmatch/core"
	"github.com/poiesic/jobmatch/storage"
	"github.com/poiesic/jobmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) storage.JobRepository {
	backend, err := badger.OpenBackend(t.TempDir(), false)
	require.NoError(t, err)

	jobRepo, err := badger.NewJobRepository(backend)
	require.NoError(t, err)

	t.Cleanup(func() {
		jobRepo.Close()
		backend.Close()
	})

	return jobRepo
}

func TestNewPipeline(t *testing.T) {
	jobRepo := setupTestRepository(t)

	t.Run("creates pipeline with defaults", func(t *testing.T) {
		p, err := NewPipeline(jobRepo)
		require.NoError(t, err)
		require.NotNil(t, p)
		defer p.Release()

		assert.Equal(t, defaultBatchSize, p.batchSize)
	})

	t.Run("nil repository", func(t *testing.T) {
		_, err := NewPipeline(nil)
		assert.ErrorIs(t, err, ErrJobRepositoryRequired)
	})

	t.Run("with options", func(t *testing.T) {
		p, err := NewPipeline(jobRepo, WithPoolSize(2), WithBatchSize(5))
		require.NoError(t, err)
		defer p.Release()

		assert.Equal(t, 5, p.batchSize)
	})
}

func TestIngestJobPostings(t *testing.T) {
	jobRepo := setupTestRepository(t)

	p, err := NewPipeline(jobRepo, WithPoolSize(2))
	require.NoError(t, err)
	defer p.Release()

	ctx := context.Background()

	postings := []*core.JobPosting{
		{Source: core.SourceIndeed, Title: "Machine Learning Engineer", Company: "ABC Corp"},
		{Source: core.SourceNaukri, Title: "Data Scientist", Company: "XYZ Analytics"},
		{Source: core.SourceLinkedIn, Title: "NLP Engineer", Company: "LangTech"},
	}

	report, err := p.IngestJobPostings(ctx, postings...)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Len(t, report.Added, 3)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Invalid)

	for _, posting := range report.Added {
		assert.NotZero(t, posting.Id)
		assert.False(t, posting.InsertedAt.IsZero())
	}

	count, err := jobRepo.CountJobPostings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestIngestJobPostings_RejectsInvalid(t *testing.T) {
	jobRepo := setupTestRepository(t)

	p, err := NewPipeline(jobRepo)
	require.NoError(t, err)
	defer p.Release()

	ctx := context.Background()

	postings := []*core.JobPosting{
		{Source: core.SourceIndeed, Title: "DevOps Engineer", Company: "CloudWorks"},
		{Source: core.SourceIndeed, Title: ""},               // missing title
		{Source: core.Source(99), Title: "Business Analyst"}, // unknown source
	}

	report, err := p.IngestJobPostings(ctx, postings...)
	require.NoError(t, err)

	assert.Len(t, report.Added, 1)
	assert.Equal(t, 2, report.Invalid)

	count, err := jobRepo.CountJobPostings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestJobPostings_SkipsDuplicates(t *testing.T) {
	jobRepo := setupTestRepository(t)

	p, err := NewPipeline(jobRepo)
	require.NoError(t, err)
	defer p.Release()

	ctx := context.Background()

	posting := &core.JobPosting{
		Source:  core.SourceNaukri,
		Title:   "AI Researcher",
		Company: "DeepThink",
		Url:     "https://example.com/jobs/ai-1",
	}

	first, err := p.IngestJobPostings(ctx, posting)
	require.NoError(t, err)
	assert.Len(t, first.Added, 1)

	// Same identity fields scraped again
	again := &core.JobPosting{
		Source:  core.SourceNaukri,
		Title:   "AI Researcher",
		Company: "DeepThink",
		Url:     "https://example.com/jobs/ai-1",
	}

	second, err := p.IngestJobPostings(ctx, again)
	require.NoError(t, err)
	assert.Empty(t, second.Added)
	assert.Equal(t, 1, second.Skipped)

	count, err := jobRepo.CountJobPostings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIngestJobPostings_EmptyBatch(t *testing.T) {
	jobRepo := setupTestRepository(t)

	p, err := NewPipeline(jobRepo)
	require.NoError(t, err)
	defer p.Release()

	report, err := p.IngestJobPostings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Added)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Invalid)
}

func TestIngestJobPostings_SmallBatches(t *testing.T) {
	jobRepo := setupTestRepository(t)

	p, err := NewPipeline(jobRepo, WithPoolSize(4), WithBatchSize(2))
	require.NoError(t, err)
	defer p.Release()

	ctx := context.Background()

	postings := make([]*core.JobPosting, 7)
	for i := range postings {
		postings[i] = &core.JobPosting{
			Source: core.SourceIndeed,
			Title:  "Software Engineer",
			Url:    "https://example.com/jobs/" + string(rune('a'+i)),
		}
	}

	report, err := p.IngestJobPostings(ctx, postings...)
	require.NoError(t, err)
	assert.Len(t, report.Added, 7)

	count, err := jobRepo.CountJobPostings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
