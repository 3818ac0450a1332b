package mock

import (
	"encoding/json"
	"fmt"

	"github.com/poiesic/studykit/core"
)

// DefaultStudySetJSON is a valid study-set response with five entries in
// each artifact list.
var DefaultStudySetJSON = studySetJSON(5)

func studySetJSON(n int) string {
	set := core.StudySet{
		Summary: "A mock summary of the analyzed document.",
	}
	for i := 0; i < n; i++ {
		set.KeyConcepts = append(set.KeyConcepts, core.KeyConcept{
			Term:       fmt.Sprintf("term %d", i),
			Definition: fmt.Sprintf("definition %d", i),
		})
		set.Flashcards = append(set.Flashcards, core.Flashcard{
			Question: fmt.Sprintf("flashcard question %d", i),
			Answer:   fmt.Sprintf("flashcard answer %d", i),
		})
		set.Quiz = append(set.Quiz, quizItem(i))
		set.HardQuiz = append(set.HardQuiz, quizItem(i))
	}
	data, err := json.Marshal(set)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// ExamJSON returns a valid exam response with n questions.
func ExamJSON(n int) string {
	questions := make([]core.QuizItem, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, quizItem(i))
	}
	data, err := json.Marshal(map[string][]core.QuizItem{"questions": questions})
	if err != nil {
		panic(err)
	}
	return string(data)
}

func quizItem(i int) core.QuizItem {
	return core.QuizItem{
		Question:     fmt.Sprintf("question %d", i),
		Options:      []string{"option a", "option b", "option c", "option d"},
		CorrectIndex: i % core.QuizOptionCount,
		Explanation:  fmt.Sprintf("explanation %d", i),
	}
}
