package resignation

import (
	"time"

	"github.com/MrJamesThe3rd/paidwork/internal/scope"
	"github.com/MrJamesThe3rd/paidwork/internal/task"
)

// Resignation records a contributor giving up a task they were assigned to.
// A contributor resigns from a task at most once.
type Resignation struct {
	Task        task.ID
	Contributor string
	Timestamp   time.Time
	Reason      string
}

// Resigned returns the contributor that resigned, on the task's provider.
func (r *Resignation) Resigned() scope.Contributor {
	return scope.Contributor{Username: r.Contributor, Provider: r.Task.Provider}
}
