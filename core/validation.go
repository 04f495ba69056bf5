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


package core

import (
	"fmt"
	"time"
)

// ValidateJobPosting validates a JobPosting according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Source must be a known job board
//   - InsertedAt/UpdatedAt must not lie in the future (zero values are fine;
//     storage assigns them on insert)
//
// NOT validated:
//   - Company, Location, Description, Url (boards frequently omit them)
//   - ID (0 is valid from database sequences)
func ValidateJobPosting(posting *JobPosting) error {
	if posting == nil {
		return fmt.Errorf("%w: posting is nil", ErrInvalidJobPosting)
	}

	if posting.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidJobPosting, ErrEmptyTitle)
	}

	if err := ValidateSource(posting.Source); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJobPosting, err)
	}

	if !IsValidTimestamp(posting.InsertedAt) || !IsValidTimestamp(posting.UpdatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidJobPosting, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateSource validates that a Source has a valid value.
func ValidateSource(source Source) error {
	if source != SourceIndeed && source != SourceNaukri && source != SourceLinkedIn {
		return fmt.Errorf("%w: value %d", ErrInvalidSource, source)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
