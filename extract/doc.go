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


// Package extract implements per-source content extraction.
//
// Each source kind gets its own extractor: code-host URLs go through
// the hosting provider's API, social posts through the public
// syndication CDN, and everything else through an external scrape
// service. Extractors degrade gracefully: when an upstream service is
// unconfigured or declines a URL, they return a bare result carrying
// only the source classification instead of an error. Hard errors are
// reserved for failures the enrichment pipeline should fall back on.
package extract
