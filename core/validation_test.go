package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuizItem() QuizItem {
	return QuizItem{
		Question:     "What is the capital of France?",
		Options:      []string{"Paris", "Lyon", "Marseille", "Nice"},
		CorrectIndex: 0,
		Explanation:  "Paris has been the capital since 987.",
	}
}

func TestValidateQuizItem_Valid(t *testing.T) {
	item := validQuizItem()
	require.NoError(t, ValidateQuizItem(&item))
}

func TestValidateQuizItem_Nil(t *testing.T) {
	err := ValidateQuizItem(nil)
	assert.ErrorIs(t, err, ErrInvalidQuizItem)
}

func TestValidateQuizItem_EmptyQuestion(t *testing.T) {
	item := validQuizItem()
	item.Question = ""
	err := ValidateQuizItem(&item)
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestValidateQuizItem_WrongOptionCount(t *testing.T) {
	item := validQuizItem()
	item.Options = item.Options[:3]
	err := ValidateQuizItem(&item)
	assert.ErrorIs(t, err, ErrWrongOptionCount)
}

func TestValidateQuizItem_CorrectIndexOutOfRange(t *testing.T) {
	item := validQuizItem()
	item.CorrectIndex = 4
	err := ValidateQuizItem(&item)
	assert.ErrorIs(t, err, ErrCorrectIndexOutOfRange)

	item.CorrectIndex = -1
	err = ValidateQuizItem(&item)
	assert.ErrorIs(t, err, ErrCorrectIndexOutOfRange)
}

func TestValidateStudySet_Valid(t *testing.T) {
	set := StudySet{
		Summary:     "A short summary.",
		KeyConcepts: []KeyConcept{{Term: "capital", Definition: "seat of government"}},
		Flashcards:  []Flashcard{{Question: "Q", Answer: "A"}},
		Quiz:        []QuizItem{validQuizItem()},
		HardQuiz:    []QuizItem{validQuizItem()},
	}
	require.NoError(t, ValidateStudySet(&set))
}

func TestValidateStudySet_EmptySummary(t *testing.T) {
	set := StudySet{Quiz: []QuizItem{validQuizItem()}}
	err := ValidateStudySet(&set)
	assert.ErrorIs(t, err, ErrEmptySummary)
}

func TestValidateStudySet_BadQuizItem(t *testing.T) {
	bad := validQuizItem()
	bad.CorrectIndex = 9
	set := StudySet{
		Summary:  "summary",
		HardQuiz: []QuizItem{bad},
	}
	err := ValidateStudySet(&set)
	assert.ErrorIs(t, err, ErrInvalidStudySet)
	assert.ErrorIs(t, err, ErrCorrectIndexOutOfRange)
}

func TestValidateExam_QuestionCount(t *testing.T) {
	exam := &Exam{UserID: "u1"}
	for i := 0; i < ExamQuestionCount; i++ {
		exam.Questions = append(exam.Questions, validQuizItem())
	}
	require.NoError(t, ValidateExam(exam))

	exam.Questions = exam.Questions[:ExamQuestionCount-1]
	err := ValidateExam(exam)
	assert.ErrorIs(t, err, ErrWrongQuestionCount)
}
