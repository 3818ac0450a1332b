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


package storage

import (
	"encoding/json"
	"fmt"

	"github.com/poiesic/studykit/core"
)

// MarshalStudyResult serializes a StudyResult to bytes.
func MarshalStudyResult(result *core.StudyResult) ([]byte, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalStudyResult deserializes a StudyResult from bytes.
func UnmarshalStudyResult(data []byte) (*core.StudyResult, error) {
	var result core.StudyResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &result, nil
}

// MarshalExam serializes an Exam to bytes.
func MarshalExam(exam *core.Exam) ([]byte, error) {
	data, err := json.Marshal(exam)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalExam deserializes an Exam from bytes.
func UnmarshalExam(data []byte) (*core.Exam, error) {
	var exam core.Exam
	if err := json.Unmarshal(data, &exam); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &exam, nil
}
