// Copyright 2025 The Finchly Authors
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


// Package storage provides the storage abstraction layer for finchly.
//
// LinkRepository is a keyed store with upsert-by-unique-URL semantics
// plus vector similarity search. The badger sub-package is the
// production implementation; consumers depend only on the interface,
// which keeps alternative backends and test doubles interchangeable.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines. The enrichment pipeline
// explicitly tolerates concurrent updates for the same URL as
// last-write-wins.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
