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


// Package ai provides abstractions for the model services Finchly uses.
//
// Three interfaces cover the model boundary:
//
//   - Summarizer: derives a summary and taxonomy-constrained tags
//   - Embedder: generates vector embeddings from text
//   - Answerer: generates grounded answers from a retrieval context
//
// AIProvider aggregates them for initialization and lifecycle management.
//
// Two implementation sub-packages exist:
//
//   - ai/openai: production implementation over OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles with behavior injection
//
// Summarization and embedding are optional enhancements: when their
// service is unconfigured the implementations return empty results rather
// than errors, and the enrichment pipeline degrades field-by-field.
// Answer generation is a hard dependency of the ask flow and fails
// explicitly when unconfigured.
package ai
