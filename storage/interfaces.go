package storage

import (
	"context"

	"github.com/poiesic/studykit/core"
)

// ResultRepository provides operations for persisted study results and
// practice exams. Implementations must be thread-safe and support
// concurrent access.
type ResultRepository interface {
	// AddResult persists a study result. For results with ID=0, derives a
	// content-based ID; sets CreatedAt if not already set. Returns the
	// result with ID and timestamp populated.
	AddResult(ctx context.Context, result *core.StudyResult) (*core.StudyResult, error)

	// GetResult retrieves a single study result owned by userID.
	// Returns ErrNotFound if no such result exists.
	GetResult(ctx context.Context, userID string, id core.ID) (*core.StudyResult, error)

	// ListResults retrieves up to limit study results owned by userID,
	// most recent first. A limit <= 0 means no limit.
	ListResults(ctx context.Context, userID string, limit int) ([]*core.StudyResult, error)

	// AddExam persists a practice exam, with the same ID and timestamp
	// behavior as AddResult.
	AddExam(ctx context.Context, exam *core.Exam) (*core.Exam, error)

	// ListExams retrieves up to limit exams owned by userID, most recent
	// first. A limit <= 0 means no limit.
	ListExams(ctx context.Context, userID string, limit int) ([]*core.Exam, error)

	// Close closes the repository and releases resources.
	Close() error
}
