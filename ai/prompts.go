package ai

import "fmt"

const studyResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "summary": {"type": "string"},
    "keyConcepts": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "term": {"type": "string"},
          "definition": {"type": "string"}
        },
        "required": ["term", "definition"],
        "additionalProperties": false
      }
    },
    "flashcards": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "question": {"type": "string"},
          "answer": {"type": "string"}
        },
        "required": ["question", "answer"],
        "additionalProperties": false
      }
    },
    "quiz": {"type": "array", "items": {"$ref": "#/definitions/quizItem"}},
    "hardQuiz": {"type": "array", "items": {"$ref": "#/definitions/quizItem"}}
  },
  "required": ["summary", "keyConcepts", "flashcards", "quiz", "hardQuiz"],
  "additionalProperties": false,
  "definitions": {
    "quizItem": {
      "type": "object",
      "properties": {
        "question": {"type": "string"},
        "options": {"type": "array", "items": {"type": "string"}, "minItems": 4, "maxItems": 4},
        "correctIndex": {"type": "integer", "minimum": 0, "maximum": 3},
        "explanation": {"type": "string"}
      },
      "required": ["question", "options", "correctIndex", "explanation"],
      "additionalProperties": false
    }
  }
}`

const studyPromptTemplate = `You are a study assistant. Analyze the provided document and produce study material as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "summary" is a thorough plain-prose summary of the document, 150-300 words.
- "keyConcepts" lists the 10 most important terms with concise definitions drawn from the document.
- "flashcards" contains 15 question/answer pairs covering the document's core material.
- "quiz" contains 10 multiple-choice questions of moderate difficulty.
- "hardQuiz" contains 10 multiple-choice questions that require synthesis across sections.
- Every quiz item has exactly 4 options, a correctIndex from 0 to 3, and a short explanation.
- Base everything strictly on the document content. Do not hallucinate.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

const examPromptTemplate = `You are an exam author. Produce a practice exam for the provided document as JSON.

Output ONLY valid JSON of the form {"questions": [...]}. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }.

Rules:
- "questions" contains exactly %d multiple-choice questions covering the whole document.
- Every question has exactly 4 "options", a "correctIndex" from 0 to 3, and a short "explanation".
- Order questions roughly from easier to harder.
- Base every question strictly on the document content. Do not hallucinate.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

// StudyPrompt returns the fixed instruction prompt for study-set generation.
// The same prompt is used on the primary and fallback paths so both produce
// structurally identical output.
func StudyPrompt() string {
	return fmt.Sprintf(studyPromptTemplate, studyResponseSchema)
}

// ExamPrompt returns the fixed instruction prompt for practice-exam
// generation, parameterized on the required question count.
func ExamPrompt(questionCount int) string {
	return fmt.Sprintf(examPromptTemplate, questionCount)
}
