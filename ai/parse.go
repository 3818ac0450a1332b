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


package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawSampleLimit bounds how much of an unparsable response is echoed in
// error messages for diagnostics.
const rawSampleLimit = 200

// ParseJSONResponse extracts and unmarshals the JSON object from a raw
// model response into out. Markdown code fences are stripped, the outermost
// {...} span is located, and light repair is applied before unmarshaling.
// Errors carry a truncated sample of the raw response.
func ParseJSONResponse(raw string, out any) error {
	text := StripFences(raw)
	obj, ok := outermostObject(text)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoJSONObject, sample(raw))
	}
	if err := json.Unmarshal([]byte(obj), out); err != nil {
		repaired := repairJSON(obj)
		if err2 := json.Unmarshal([]byte(repaired), out); err2 != nil {
			return fmt.Errorf("parsing model response: %w: %s", err, sample(raw))
		}
	}
	return nil
}

// StripFences removes a wrapping markdown code fence, if present.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// outermostObject returns the span from the first '{' to its matching
// closing brace. Braces inside JSON strings are skipped.
func outermostObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	// Unbalanced: fall back to the last closing brace so a response with
	// trailing junk after a truncated string still gets one parse attempt.
	end := strings.LastIndexByte(s, '}')
	if end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// repairJSON fixes the common model mistake of a trailing comma before a
// closing bracket or brace.
func repairJSON(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			sb.WriteByte(ch)
			continue
		}
		if ch == '"' {
			inString = true
			sb.WriteByte(ch)
			continue
		}
		if ch == ',' {
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\n' || s[j] == '\t' || s[j] == '\r') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue // drop the trailing comma
			}
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

func sample(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) > rawSampleLimit {
		return raw[:rawSampleLimit] + "..."
	}
	return raw
}
