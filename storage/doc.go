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


// Package storage provides the storage abstraction layer for the query log.
//
// This package defines the repository interface that decouples the insights
// pipeline from the storage implementation, so different backends (BadgerDB,
// in-memory) can be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.QueryLogRepository interface rather
// than a concrete type:
//
//	log, err := badger.NewQueryLog(backend)  // returns storage.QueryLogRepository
//
// Internal package constructors may return concrete types since they are
// only used within the implementation package.
//
// # Thread Safety
//
// Repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support. Pass context.Background() for operations without
// specific timeout requirements.
package storage
