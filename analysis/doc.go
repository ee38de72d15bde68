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


// Package analysis provides the text analysis primitives of the search engine:
//
//   - Tokenization with optional stop-word filtering
//   - Typed term extraction (addresses, dates, amounts, emails)
//   - Query classification into semantic categories
//
// Everything in this package is a pure function over its arguments and is
// safe to call concurrently.
package analysis
