package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parsed struct {
	Summary string `json:"summary"`
	Count   int    `json:"count"`
}

func TestParseJSONResponse_Plain(t *testing.T) {
	var out parsed
	err := ParseJSONResponse(`{"summary": "hello", "count": 2}`, &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Summary)
	assert.Equal(t, 2, out.Count)
}

func TestParseJSONResponse_Fenced(t *testing.T) {
	raw := "```json\n{\"summary\": \"fenced\", \"count\": 1}\n```"
	var out parsed
	require.NoError(t, ParseJSONResponse(raw, &out))
	assert.Equal(t, "fenced", out.Summary)
}

func TestParseJSONResponse_SurroundingProse(t *testing.T) {
	raw := "Sure! Here is the JSON you asked for:\n{\"summary\": \"embedded\", \"count\": 3}\nHope this helps."
	var out parsed
	require.NoError(t, ParseJSONResponse(raw, &out))
	assert.Equal(t, "embedded", out.Summary)
}

func TestParseJSONResponse_NestedBraces(t *testing.T) {
	raw := `prefix {"summary": "a {nested} value", "count": 4} suffix`
	var out parsed
	require.NoError(t, ParseJSONResponse(raw, &out))
	assert.Equal(t, "a {nested} value", out.Summary)
}

func TestParseJSONResponse_TrailingComma(t *testing.T) {
	raw := `{"summary": "trailing", "count": 5,}`
	var out parsed
	require.NoError(t, ParseJSONResponse(raw, &out))
	assert.Equal(t, "trailing", out.Summary)
}

func TestParseJSONResponse_NoObject(t *testing.T) {
	var out parsed
	err := ParseJSONResponse("the model refused to answer", &out)
	assert.ErrorIs(t, err, ErrNoJSONObject)
}

func TestParseJSONResponse_Garbage(t *testing.T) {
	var out parsed
	err := ParseJSONResponse(`{"summary": `+strings.Repeat("x", 500), &out)
	require.Error(t, err)
	// Diagnostics carry a truncated sample, not the whole response.
	assert.Less(t, len(err.Error()), 400)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, StripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, StripFences(`{"a":1}`))
}

func TestOutermostObject_BracesInsideStrings(t *testing.T) {
	obj, ok := outermostObject(`{"a": "}}}"} trailing`)
	require.True(t, ok)
	assert.Equal(t, `{"a": "}}}"}`, obj)
}
