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


// Package extraction implements ai.TextExtractor over a third-party
// document-parsing service with an asynchronous job API: upload the
// document, poll the job status at a fixed interval up to a bounded number
// of attempts, then fetch the extracted plain text.
//
// The attempt cap and fixed delay give every extraction a deterministic
// worst-case wall clock of attempts x interval. A job that has not
// succeeded inside the budget is a failure; partial text is never used.
package extraction
