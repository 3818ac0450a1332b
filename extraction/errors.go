package extraction

import "errors"

var (
	// ErrJobFailed indicates the parsing service reported the job failed.
	ErrJobFailed = errors.New("extraction job failed")

	// ErrPollBudgetExceeded indicates the job did not reach a terminal
	// status within the attempt budget.
	ErrPollBudgetExceeded = errors.New("extraction job did not complete in time")

	// ErrTextTooShort indicates the extracted text is below the minimum
	// usable length, typically a garbage or empty document.
	ErrTextTooShort = errors.New("extracted text too short")
)
