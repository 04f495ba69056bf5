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


// Package match scores resumes against a job posting corpus.
//
// The Matcher type implements a hybrid similarity pipeline that combines:
//   - Lexical similarity using TF-IDF cosine over title, company and description
//   - Semantic similarity using vector embeddings, when a model is available
//
// The two signals are fused with fixed weights (0.6 semantic, 0.4 lexical),
// min-max normalized onto [0, 100], ranked descending, and truncated to the
// top results. A best-fit role suggestion is derived independently from the
// posting titles.
//
// A missing embedding model or a failing scorer degrades that channel to an
// all-zero signal; only an empty resume or an empty corpus fails a request.
package match
