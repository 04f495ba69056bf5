// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package jobmatch

import (
	"log/slog"

	"github.com/poiesic/jobmatch/ai"
	"github.com/poiesic/jobmatch/ai/openai"
	"github.com/poiesic/jobmatch/ingestion"
	"github.com/poiesic/jobmatch/match"
	"github.com/poiesic/jobmatch/storage"
	"github.com/poiesic/jobmatch/storage/badger"
)

type Database struct {
	backend  *badger.Backend
	jobRepo  storage.JobRepository
	provider ai.Provider
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig   *ai.Config
	embeddings bool
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithoutEmbeddings disables the embedding capability for the process.
// Matchers created from the database run lexical-only.
func WithoutEmbeddings() DatabaseOption {
	return func(o *databaseOptions) {
		o.embeddings = false
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig:   ai.DefaultConfig(), // Default if not provided
		embeddings: true,
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create job repository
	jobRepo, err := badger.NewJobRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	var provider ai.Provider
	if options.embeddings {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			jobRepo.Close()
			backend.Close()
			return nil, err
		}
	} else {
		provider = ai.Disabled()
	}

	return &Database{
		backend:  backend,
		jobRepo:  jobRepo,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := db.jobRepo.Close(); err != nil {
		db.logger.Error("error closing job repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) JobRepository() storage.JobRepository {
	return db.jobRepo
}

func (db *Database) Provider() ai.Provider {
	return db.provider
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.jobRepo, opts...)
}

func (db *Database) NewMatcher(opts ...match.Option) (*match.Matcher, error) {
	return match.NewMatcher(db.jobRepo, db.provider, opts...)
}
