package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/jobmatch/core"
	"github.com/poiesic/jobmatch/storage"
)

const defaultBatchSize = 25

// Pipeline orchestrates the ingestion of scraped job postings.
// It validates, deduplicates and stores postings using a worker pool so that
// large scrape batches load concurrently.
type Pipeline struct {
	jobRepository storage.JobRepository
	pool          *ants.Pool
	batchSize     int
	logger        *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many postings each worker stores per transaction.
// Default is 25; values below 1 reset to the default.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = defaultBatchSize
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(jobRepository storage.JobRepository, opts ...Option) (*Pipeline, error) {
	if jobRepository == nil {
		return nil, ErrJobRepositoryRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		jobRepository: jobRepository,
		pool:          pool,
		batchSize:     defaultBatchSize,
		logger:        slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Report summarizes one ingestion run.
type Report struct {
	Added   []*core.JobPosting // postings stored, with IDs assigned
	Skipped int                // duplicates already present under the same fingerprint
	Invalid int                // postings rejected by validation
}

// IngestJobPostings validates, deduplicates and stores a batch of postings.
// Invalid postings and duplicates are counted and logged, never fatal; the
// returned report says what happened to each slice of the batch. Storage
// errors within one batch drop that batch and are logged, leaving the rest
// of the run intact.
func (p *Pipeline) IngestJobPostings(ctx context.Context, postings ...*core.JobPosting) (*Report, error) {
	report := &Report{}

	// Validate up front on the caller's goroutine
	valid := make([]*core.JobPosting, 0, len(postings))
	for _, posting := range postings {
		if err := core.ValidateJobPosting(posting); err != nil {
			p.logger.Warn("rejecting invalid job posting", "title", posting.Title, "err", err)
			report.Invalid++
			continue
		}
		valid = append(valid, posting)
	}

	if len(valid) == 0 {
		return report, nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for start := 0; start < len(valid); start += p.batchSize {
		end := min(start+p.batchSize, len(valid))
		batch := valid[start:end]

		store := func() {
			added, skipped := p.storeBatch(ctx, batch)
			mu.Lock()
			report.Added = append(report.Added, added...)
			report.Skipped += skipped
			mu.Unlock()
		}

		wg.Add(1)
		if submitErr := p.pool.Submit(func() {
			defer wg.Done()
			store()
		}); submitErr != nil {
			// Pool rejected the task; store on the caller's goroutine instead
			p.logger.Warn("worker pool rejected batch, storing inline", "err", submitErr)
			store()
			wg.Done()
		}
	}
	wg.Wait()

	return report, nil
}

// storeBatch deduplicates by content fingerprint and stores what remains.
func (p *Pipeline) storeBatch(ctx context.Context, batch []*core.JobPosting) ([]*core.JobPosting, int) {
	fresh := make([]*core.JobPosting, 0, len(batch))
	skipped := 0

	for _, posting := range batch {
		existing, err := p.jobRepository.FindByFingerprint(ctx, posting.Fingerprint())
		if err != nil {
			p.logger.Error("error checking posting fingerprint", "title", posting.Title, "err", err)
			continue
		}
		if existing != nil {
			p.logger.Debug("skipping duplicate job posting", "title", posting.Title, "id", existing.Id)
			skipped++
			continue
		}
		fresh = append(fresh, posting)
	}

	if len(fresh) == 0 {
		return nil, skipped
	}

	added, err := p.jobRepository.AddJobPostings(ctx, fresh...)
	if err != nil {
		p.logger.Error("error storing job posting batch", "count", len(fresh), "err", err)
		return nil, skipped
	}

	return added, skipped
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
