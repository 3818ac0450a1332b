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


package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/studykit/core"
	"github.com/poiesic/studykit/storage"
)

// ResultRepository implements storage.ResultRepository for BadgerDB.
type ResultRepository struct {
	backend *Backend
}

var _ storage.ResultRepository = (*ResultRepository)(nil)

// NewResultRepository creates a new ResultRepository.
//
// Returns storage.ResultRepository interface to enforce abstraction.
func NewResultRepository(backend *Backend) (storage.ResultRepository, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	return &ResultRepository{backend: backend}, nil
}

// AddResult persists a study result. IDs are content-based: the same user,
// path, and creation time always map to the same key, making re-inserts
// idempotent.
func (r *ResultRepository) AddResult(ctx context.Context, result *core.StudyResult) (*core.StudyResult, error) {
	if err := core.ValidateStudySet(&result.StudySet); err != nil {
		return nil, err
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now().UTC()
	}
	if result.Id == 0 {
		result.Id = core.IDFromContent(result.UserID + "|" + result.StoragePath + "|" + result.CreatedAt.String())
	}

	value, err := storage.MarshalStudyResult(result)
	if err != nil {
		return nil, err
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeResultKey(result.UserID, result.CreatedAt, result.Id)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetResult retrieves a single study result owned by userID.
func (r *ResultRepository) GetResult(ctx context.Context, userID string, id core.ID) (*core.StudyResult, error) {
	var found *core.StudyResult
	err := r.iterate(userID, makePartialResultKey(userID), func(val []byte) (bool, error) {
		result, err := storage.UnmarshalStudyResult(val)
		if err != nil {
			return false, err
		}
		if result.Id == id {
			found = result
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, storage.ErrNotFound
	}
	return found, nil
}

// ListResults retrieves up to limit study results, most recent first.
func (r *ResultRepository) ListResults(ctx context.Context, userID string, limit int) ([]*core.StudyResult, error) {
	results := make([]*core.StudyResult, 0)
	err := r.iterate(userID, makePartialResultKey(userID), func(val []byte) (bool, error) {
		result, err := storage.UnmarshalStudyResult(val)
		if err != nil {
			return false, err
		}
		results = append(results, result)
		return limit <= 0 || len(results) < limit, nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// AddExam persists a practice exam after validating its question count.
func (r *ResultRepository) AddExam(ctx context.Context, exam *core.Exam) (*core.Exam, error) {
	if err := core.ValidateExam(exam); err != nil {
		return nil, err
	}
	if exam.CreatedAt.IsZero() {
		exam.CreatedAt = time.Now().UTC()
	}
	if exam.Id == 0 {
		exam.Id = core.IDFromContent(exam.UserID + "|" + exam.StoragePath + "|" + exam.CreatedAt.String())
	}

	value, err := storage.MarshalExam(exam)
	if err != nil {
		return nil, err
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeExamKey(exam.UserID, exam.CreatedAt, exam.Id)
		if err := tx.Set(key, value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return exam, nil
}

// ListExams retrieves up to limit exams, most recent first.
func (r *ResultRepository) ListExams(ctx context.Context, userID string, limit int) ([]*core.Exam, error) {
	exams := make([]*core.Exam, 0)
	err := r.iterate(userID, makePartialExamKey(userID), func(val []byte) (bool, error) {
		exam, err := storage.UnmarshalExam(val)
		if err != nil {
			return false, err
		}
		exams = append(exams, exam)
		return limit <= 0 || len(exams) < limit, nil
	})
	if err != nil {
		return nil, err
	}
	return exams, nil
}

// Close releases repository resources. The backend is owned by the caller.
func (r *ResultRepository) Close() error {
	return nil
}

// iterate walks the prefix in key order (newest first, by key design) and
// calls fn for each value. fn returns false to stop.
func (r *ResultRepository) iterate(userID string, prefix []byte, fn func(val []byte) (bool, error)) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = prefix
		it := tx.NewIterator(iterOpts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			var cont bool
			err := it.Item().Value(func(val []byte) error {
				var fnErr error
				cont, fnErr = fn(val)
				return fnErr
			})
			if err != nil {
				return err
			}
			if !cont {
				return nil
			}
		}
		return nil
	}, false)
}
