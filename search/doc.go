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


// Package search provides relevance-ranked search over an indexed document
// collection.
//
// The Searcher combines several scoring signals:
//   - Accumulated field weights for verbatim token matches
//   - A flat bonus for partial token matches
//   - An exact-phrase multiplier when the whole query appears in a document
//   - A recency bonus for documents from the last 30 days
//
// Scores are normalized to [0, 1]; search degrades to an empty result list
// on any internal failure and never returns an error to the caller. The
// package also hosts the highlighter and the token-set similarity engine.
package search
