package storage

import (
	"context"

	"github.com/poiesic/jobmatch/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// JobRepository provides operations for managing job postings.
// It is the corpus provider for the matching engine: ListJobPostings is the
// corpus snapshot read once per scoring request.
type JobRepository interface {
	Repository

	// AddJobPostings adds one or more job postings to storage.
	// Generates new IDs from sequence and sets the InsertedAt timestamp.
	// Returns the postings with generated IDs and timestamps populated.
	AddJobPostings(ctx context.Context, postings ...*core.JobPosting) ([]*core.JobPosting, error)

	// UpdateJobPostings updates existing job postings.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any posting doesn't exist.
	UpdateJobPostings(ctx context.Context, postings ...*core.JobPosting) ([]*core.JobPosting, error)

	// DeleteJobPostings removes job postings by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any posting doesn't exist.
	DeleteJobPostings(ctx context.Context, ids ...core.ID) error

	// GetJobPosting retrieves a single job posting by ID.
	// Returns ErrNotFound if the posting doesn't exist.
	GetJobPosting(ctx context.Context, id core.ID) (*core.JobPosting, error)

	// GetJobPostings retrieves multiple job postings by their IDs.
	// Returns only the postings that exist (no error for missing postings).
	GetJobPostings(ctx context.Context, ids ...core.ID) ([]*core.JobPosting, error)

	// ListJobPostings retrieves every job posting, ordered by ascending ID.
	// This ordering is the corpus snapshot ordering scoring requests rely on.
	ListJobPostings(ctx context.Context) ([]*core.JobPosting, error)

	// GetJobPostingsBySource retrieves postings collected from one job board,
	// ordered by ascending ID.
	GetJobPostingsBySource(ctx context.Context, source core.Source) ([]*core.JobPosting, error)

	// CountJobPostings returns the number of stored postings.
	CountJobPostings(ctx context.Context) (int, error)

	// FindByFingerprint retrieves the posting with the given content
	// fingerprint. Returns nil (and no error) when none exists.
	FindByFingerprint(ctx context.Context, fingerprint core.ID) (*core.JobPosting, error)
}
