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


package core

import "fmt"

// ValidateQuizItem validates a QuizItem according to domain rules.
//
// Validation rules:
//   - Question must not be empty
//   - Options must contain exactly QuizOptionCount entries
//   - CorrectIndex must point into Options
//
// NOT validated:
//   - Explanation (optional, some models omit it)
func ValidateQuizItem(item *QuizItem) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidQuizItem)
	}

	if item.Question == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuizItem, ErrEmptyQuestion)
	}

	if len(item.Options) != QuizOptionCount {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidQuizItem, ErrWrongOptionCount, len(item.Options))
	}

	if item.CorrectIndex < 0 || item.CorrectIndex >= len(item.Options) {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidQuizItem, ErrCorrectIndexOutOfRange, item.CorrectIndex)
	}

	return nil
}

// ValidateStudySet validates a StudySet according to domain rules.
//
// Validation rules:
//   - Summary must not be empty
//   - Every quiz and hard-quiz item must be a valid QuizItem
//
// NOT validated (counts vary with document length and model behavior):
//   - Number of key concepts, flashcards, or quiz items
func ValidateStudySet(set *StudySet) error {
	if set == nil {
		return fmt.Errorf("%w: set is nil", ErrInvalidStudySet)
	}

	if set.Summary == "" {
		return fmt.Errorf("%w: %w", ErrInvalidStudySet, ErrEmptySummary)
	}

	for i := range set.Quiz {
		if err := ValidateQuizItem(&set.Quiz[i]); err != nil {
			return fmt.Errorf("%w: quiz[%d]: %w", ErrInvalidStudySet, i, err)
		}
	}
	for i := range set.HardQuiz {
		if err := ValidateQuizItem(&set.HardQuiz[i]); err != nil {
			return fmt.Errorf("%w: hardQuiz[%d]: %w", ErrInvalidStudySet, i, err)
		}
	}

	return nil
}

// ValidateExam validates an Exam according to domain rules.
//
// Validation rules:
//   - Exactly ExamQuestionCount questions
//   - Every question must be a valid QuizItem
func ValidateExam(exam *Exam) error {
	if exam == nil {
		return fmt.Errorf("%w: exam is nil", ErrInvalidExam)
	}

	if len(exam.Questions) != ExamQuestionCount {
		return fmt.Errorf("%w: %w (got %d)", ErrInvalidExam, ErrWrongQuestionCount, len(exam.Questions))
	}

	for i := range exam.Questions {
		if err := ValidateQuizItem(&exam.Questions[i]); err != nil {
			return fmt.Errorf("%w: questions[%d]: %w", ErrInvalidExam, i, err)
		}
	}

	return nil
}
