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


// Package search provides semantic retrieval over saved links and
// grounded question answering on top of it.
//
// Searcher embeds a query and ranks stored links by cosine similarity.
// RAG retrieves the closest links, renders them into a numbered context
// block, and asks a language model to answer strictly from that
// context, returning the sources alongside the answer.
package search
