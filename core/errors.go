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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidLink indicates a Link failed validation.
	ErrInvalidLink = errors.New("invalid link")

	// ErrEmptyURL indicates the URL field is empty.
	ErrEmptyURL = errors.New("url cannot be empty")

	// ErrMalformedURL indicates the URL could not be parsed.
	ErrMalformedURL = errors.New("url is malformed")

	// ErrUnsupportedScheme indicates a URL scheme other than http or https.
	ErrUnsupportedScheme = errors.New("url scheme must be http or https")
)
