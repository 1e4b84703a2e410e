package background_tasks

import (
	"time"
)

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Execution records the execution details of a task run.
type Execution struct {
	StartedAt time.Time // Start time of the execution.
	EndedAt   time.Time // End time of the execution.
	Status    string    // Status of the execution (SUCCESS or FAILED).
	Error     string    // Error message if the execution failed.
}

// Task represents a repeating unit of work. A task never runs concurrently
// with itself: the next run is scheduled from the end of the previous one.
type Task struct {
	ID          int          // Unique identifier for the task.
	Name        string       // Name of the task.
	Description string       // Description of the task.
	Trigger     Trigger      // Decides when the next run starts.
	Function    func() error // Function to execute as the task.

	runs uint64    // Number of completed runs.
	last Execution // Most recent run.
}
