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


// Package pipeline orchestrates document analysis and exam generation.
//
// Analysis runs one request to completion with no internal parallelism:
// download the document, attempt the primary multimodal provider, and on
// failure fall back to text extraction followed by the secondary text-only
// provider. The parsed result is persisted as a side effect; a persistence
// failure is logged and does not fail the request. Nothing is retried
// server-side; retry policy belongs to the client.
//
// Exam generation follows the same shape but has no fallback path: one
// multimodal call requesting exactly fifty structured questions.
//
// Every failure carries a Code from the fixed taxonomy so the HTTP layer
// can map it to a uniform error envelope.
package pipeline
