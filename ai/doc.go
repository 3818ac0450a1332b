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


// Package ai provides abstractions for the AI services used by StudyKit.
//
// This package defines interfaces for study-artifact generation so the
// pipeline depends on abstractions rather than concrete providers. Two
// interfaces matter:
//
//   - DocumentAnalyzer: multimodal generation from raw document bytes
//   - TextGenerator: text-only generation from extracted plain text
//
// # Implementation Packages
//
//   - ai/gemini: primary provider over Google's multimodal models, with an
//     ordered model-list fallback
//   - ai/openai: secondary text-only provider used on the extraction
//     fallback path
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors in the implementation packages return interface types
// to enforce abstraction; mock constructors return concrete types so tests
// can assert call counts and inject behavior.
//
// Model responses are parsed with the helpers in parse.go: code fences are
// stripped, the outermost JSON object span is located, and light repair is
// applied before unmarshaling.
package ai
