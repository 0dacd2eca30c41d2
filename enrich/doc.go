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


// Package enrich orchestrates the link enrichment pipeline.
//
// A saved URL passes through classification, content extraction,
// summarization, and embedding before the derived fields are merged
// into storage. Each stage degrades independently: a failed extractor
// falls back to the webpage path, a missing model skips its stage, and
// the link is persisted with whatever survived. URLs discovered inside
// content are saved and enriched one level deep.
//
// Enrichment runs on a worker pool; Submit is fire-and-forget while
// EnrichLink runs synchronously for callers that need the result.
package enrich
