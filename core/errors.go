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

import "errors"

// Domain validation errors
var (
	// ErrInvalidStudySet indicates a StudySet failed validation.
	ErrInvalidStudySet = errors.New("invalid study set")

	// ErrInvalidQuizItem indicates a QuizItem failed validation.
	ErrInvalidQuizItem = errors.New("invalid quiz item")

	// ErrInvalidExam indicates an Exam failed validation.
	ErrInvalidExam = errors.New("invalid exam")

	// ErrEmptySummary indicates the Summary field is empty.
	ErrEmptySummary = errors.New("summary cannot be empty")

	// ErrEmptyQuestion indicates a question field is empty.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrWrongOptionCount indicates a quiz item does not carry exactly four options.
	ErrWrongOptionCount = errors.New("quiz item must have exactly four options")

	// ErrCorrectIndexOutOfRange indicates CorrectIndex does not point into Options.
	ErrCorrectIndexOutOfRange = errors.New("correct index out of range")

	// ErrWrongQuestionCount indicates an exam does not carry exactly fifty questions.
	ErrWrongQuestionCount = errors.New("exam must have exactly fifty questions")
)
