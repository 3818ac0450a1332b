package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// QuizOptionCount is the number of answer options every quiz item carries.
const QuizOptionCount = 4

// ExamQuestionCount is the number of questions a generated practice exam
// must contain.
const ExamQuestionCount = 50

// KeyConcept is a term/definition pair extracted from a document.
type KeyConcept struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Flashcard is a question/answer pair for spaced-repetition review.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizItem is a multiple-choice question with exactly four options.
// CorrectIndex points into Options.
type QuizItem struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// StudySet is the structured output of document analysis. It is produced by
// an AI provider, validated once, and never mutated afterwards.
type StudySet struct {
	Summary     string       `json:"summary"`
	KeyConcepts []KeyConcept `json:"keyConcepts"`
	Flashcards  []Flashcard  `json:"flashcards"`
	Quiz        []QuizItem   `json:"quiz"`
	HardQuiz    []QuizItem   `json:"hardQuiz"`
}

// StudyResult is a persisted study set together with the verified owner
// identity and the source-file metadata.
type StudyResult struct {
	Id          ID     `json:"id"`
	UserID      string `json:"userId"`
	FileName    string `json:"fileName"`
	StoragePath string `json:"storagePath"`
	StudySet
	CreatedAt time.Time `json:"createdAt"`
}

// Exam is a persisted practice exam of exactly ExamQuestionCount questions.
type Exam struct {
	Id          ID         `json:"id"`
	UserID      string     `json:"userId"`
	FileName    string     `json:"fileName"`
	StoragePath string     `json:"storagePath"`
	Questions   []QuizItem `json:"questions"`
	CreatedAt   time.Time  `json:"createdAt"`
}
