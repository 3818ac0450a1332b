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


// Package securestore provides a chunking key-value adapter for storage
// backends that reject entries above a fixed size limit.
//
// Values at or below the chunk size are stored directly under the caller's
// key. Larger values are split into numbered chunks under derived keys, with
// a chunk-count marker written last so an interrupted write never leaves a
// marker pointing at missing chunks. Reads reassemble chunks and refuse
// partial reconstruction: a missing chunk fails the whole read.
//
// The store is best-effort by design. Its public surface never returns
// backend errors; reads degrade to a miss and writes/removals log and move
// on. This is the right trade for its primary call site, session bootstrap,
// where a transient storage fault must not take down the caller. Internal
// methods keep the error distinction so tests and logging can tell a miss
// from a fault.
package securestore
