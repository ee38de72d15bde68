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

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//
// NOT validated (documents are owned by the mail collaborator):
//   - Subject, Body, From (any of them may legitimately be empty)
//   - Date (mail servers do deliver messages with skewed dates)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocumentID)
	}

	return nil
}

// ValidateQueryLogEntry validates a QueryLogEntry according to domain rules.
//
// Validation rules:
//   - Query must not be empty
//   - Timestamp must not be in the future
//   - ResultsCount must not be negative
//
// NOT validated:
//   - ID (0 is valid; content-based IDs are assigned on append)
func ValidateQueryLogEntry(entry *QueryLogEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidQueryLogEntry)
	}

	if entry.Query == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQueryLogEntry, ErrEmptyQuery)
	}

	if !IsValidTimestamp(entry.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidQueryLogEntry, ErrInvalidTimestamp)
	}

	if entry.ResultsCount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidQueryLogEntry, ErrNegativeResultsCount)
	}

	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
