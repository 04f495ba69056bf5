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


package match

import "errors"

var (
	// ErrJobRepositoryRequired is returned when a job repository is not provided.
	ErrJobRepositoryRequired = errors.New("job repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	// Pass ai.Disabled() to run without an embedding model.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrEmptyQuery is returned when the resume text is empty after
	// normalization. No scoring is attempted.
	ErrEmptyQuery = errors.New("resume text is empty")

	// ErrEmptyCorpus is returned when no job postings are available.
	// No scoring is attempted.
	ErrEmptyCorpus = errors.New("no job postings available")
)

// Degradation reasons. These never abort a request: the owning signal is
// replaced with an all-zero vector and the reason is logged and reported to
// the match monitor.
var (
	// ErrVocabularyDegenerate indicates the lexical vocabulary came out empty
	// (all texts empty or stop words only).
	ErrVocabularyDegenerate = errors.New("lexical vocabulary is degenerate")

	// ErrSemanticUnavailable indicates no embedding model is configured for
	// this process.
	ErrSemanticUnavailable = errors.New("semantic model unavailable")
)
