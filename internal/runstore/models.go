package runstore

import "time"

// Status describes the lifecycle state of a decode run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run records a single decode of an MCC file.
type Run struct {
	ID           string
	InputFile    string
	Status       Status
	Formats      string
	TrackCount   int
	EventCount   int
	WarningCount int
	ErrorMessage string
	OutputDir    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
