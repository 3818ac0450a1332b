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


// Package storage provides the storage abstraction layer for studykit.
//
// This package defines repository interfaces that decouple storage
// implementation from business logic, so different backends (BadgerDB,
// in-memory, etc.) can be used interchangeably.
//
// Public constructors in implementation packages return interface types to
// enforce abstraction:
//
//	repo, err := badger.NewResultRepository(backend)  // returns storage.ResultRepository
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//	defer backend.Close()
//
// All repository implementations must be thread-safe, and all methods
// accept context.Context for cancellation.
//
// Records are serialized as JSON documents: the persisted contract for
// study artifacts is JSON-shaped, and storing the same representation keeps
// the stored bytes inspectable with standard tooling.
package storage
