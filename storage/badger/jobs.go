package badger

import (
	"bytes"
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/jobmatch/core"
	"github.com/poiesic/jobmatch/storage"
)

// JobRepository implements storage.JobRepository for BadgerDB.
type JobRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.JobRepository = (*JobRepository)(nil)

// NewJobRepository creates a new JobRepository.
func NewJobRepository(backend *Backend) (*JobRepository, error) {
	idSeq, err := backend.GetSequence(jobRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &JobRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *JobRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *JobRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddJobPostings adds one or more job postings to storage.
func (r *JobRepository) AddJobPostings(ctx context.Context, postings ...*core.JobPosting) ([]*core.JobPosting, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Generate IDs and set timestamps
		for _, posting := range postings {
			// Always generate new ID from sequence
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			posting.Id = core.ID(nextID)

			posting.InsertedAt = time.Now().UTC()
			posting.UpdatedAt = posting.InsertedAt

			// Store primary record
			key := makeJobRecordKey(posting.Id)
			value := storage.MarshalJobPosting(posting)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update source index
			sourceKey := makeJobSourceKey(posting.Source, posting.Id)
			if err := tx.Set(sourceKey, storage.MarshalID(posting.Id)); err != nil {
				return err
			}

			// Update fingerprint index
			fingerprintKey := makeJobFingerprintKey(posting.Fingerprint())
			if err := tx.Set(fingerprintKey, storage.MarshalID(posting.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return postings, err
}

// UpdateJobPostings updates existing job postings.
func (r *JobRepository) UpdateJobPostings(ctx context.Context, postings ...*core.JobPosting) ([]*core.JobPosting, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, posting := range postings {
			key := makeJobRecordKey(posting.Id)

			// Read old record to detect changes
			old, err := r.readJobPosting(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			posting.InsertedAt = old.InsertedAt
			posting.UpdatedAt = time.Now().UTC()

			// Store updated record
			value := storage.MarshalJobPosting(posting)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update source index if the source changed
			if old.Source != posting.Source {
				oldSourceKey := makeJobSourceKey(old.Source, old.Id)
				if err := tx.Delete(oldSourceKey); err != nil {
					return err
				}
				newSourceKey := makeJobSourceKey(posting.Source, posting.Id)
				if err := tx.Set(newSourceKey, storage.MarshalID(posting.Id)); err != nil {
					return err
				}
			}

			// Update fingerprint index if identity fields changed
			if old.Fingerprint() != posting.Fingerprint() {
				oldFingerprintKey := makeJobFingerprintKey(old.Fingerprint())
				if err := tx.Delete(oldFingerprintKey); err != nil {
					return err
				}
				newFingerprintKey := makeJobFingerprintKey(posting.Fingerprint())
				if err := tx.Set(newFingerprintKey, storage.MarshalID(posting.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return postings, err
}

// DeleteJobPostings removes job postings by their IDs.
func (r *JobRepository) DeleteJobPostings(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeJobRecordKey(id)

			// Read record to get metadata for index cleanup
			posting, err := r.readJobPosting(tx, key)
			if err != nil {
				return err
			}
			if posting == nil {
				return storage.ErrNotFound
			}

			// Delete from source index
			sourceKey := makeJobSourceKey(posting.Source, posting.Id)
			if err := tx.Delete(sourceKey); err != nil {
				return err
			}

			// Delete from fingerprint index
			fingerprintKey := makeJobFingerprintKey(posting.Fingerprint())
			if err := tx.Delete(fingerprintKey); err != nil {
				return err
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetJobPosting retrieves a single job posting by ID.
func (r *JobRepository) GetJobPosting(ctx context.Context, id core.ID) (*core.JobPosting, error) {
	var result *core.JobPosting
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeJobRecordKey(id)
		var err error
		result, err = r.readJobPosting(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetJobPostings retrieves multiple job postings by their IDs.
func (r *JobRepository) GetJobPostings(ctx context.Context, ids ...core.ID) ([]*core.JobPosting, error) {
	var result []*core.JobPosting
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeJobRecordKey(id)
			posting, err := r.readJobPosting(tx, key)
			if err != nil {
				return err
			}
			if posting != nil {
				result = append(result, posting)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListJobPostings retrieves every job posting, ordered by ascending ID.
func (r *JobRepository) ListJobPostings(ctx context.Context) ([]*core.JobPosting, error) {
	var results []*core.JobPosting
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(jobRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Skip index keys and the sequence key
			if bytes.Equal(key, []byte(jobRecordIDSeq)) ||
				bytes.HasPrefix(key, []byte(jobRecordSourcePrefix)) ||
				bytes.HasPrefix(key, []byte(jobRecordFingerprintPrefix)) {
				continue
			}

			var posting *core.JobPosting
			err := item.Value(func(val []byte) error {
				var err error
				posting, err = storage.UnmarshalJobPosting(val)
				return err
			})
			if err != nil {
				return err
			}
			if posting != nil {
				results = append(results, posting)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	// Record keys sort lexicographically, not numerically, so order here
	slices.SortFunc(results, func(a, b *core.JobPosting) int {
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})

	return results, nil
}

// GetJobPostingsBySource retrieves postings collected from one job board,
// ordered by ascending ID.
func (r *JobRepository) GetJobPostingsBySource(ctx context.Context, source core.Source) ([]*core.JobPosting, error) {
	var results []*core.JobPosting
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialJobSourceKey(source)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			// Read the ID from the index
			var postingID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				postingID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			recordKey := makeJobRecordKey(postingID)
			posting, err := r.readJobPosting(tx, recordKey)
			if err != nil {
				return err
			}
			if posting != nil {
				results = append(results, posting)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountJobPostings returns the number of stored postings.
func (r *JobRepository) CountJobPostings(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(jobRecordPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if bytes.Equal(key, []byte(jobRecordIDSeq)) ||
				bytes.HasPrefix(key, []byte(jobRecordSourcePrefix)) ||
				bytes.HasPrefix(key, []byte(jobRecordFingerprintPrefix)) {
				continue
			}
			count++
		}
		return nil
	}, false)
	return count, err
}

// FindByFingerprint retrieves the posting with the given content fingerprint.
// Returns nil when none exists.
func (r *JobRepository) FindByFingerprint(ctx context.Context, fingerprint core.ID) (*core.JobPosting, error) {
	var result *core.JobPosting
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeJobFingerprintKey(fingerprint))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}

		var postingID core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			postingID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		result, err = r.readJobPosting(tx, makeJobRecordKey(postingID))
		return err
	}, false)
	return result, err
}

// readJobPosting reads and deserializes a posting, returning nil if the key
// doesn't exist.
func (r *JobRepository) readJobPosting(tx *badger.Txn, key []byte) (*core.JobPosting, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var posting *core.JobPosting
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		posting, unmarshalErr = storage.UnmarshalJobPosting(val)
		return unmarshalErr
	})
	return posting, err
}
