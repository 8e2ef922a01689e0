// Package jobs wires the background worker that keeps partnership statuses
// current.
package jobs

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskRenewalSweep flags active partnerships past expiration as
	// for_renewal.
	TaskRenewalSweep = "partnerships:renewal_sweep"
)

// RenewalSweepPayload names the system account the sweep's audit entries are
// attributed to.
type RenewalSweepPayload struct {
	ActorID uuid.UUID `json:"actor_id"`
}

// NewRenewalSweepTask constructs the sweep task.
func NewRenewalSweepTask(payload RenewalSweepPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRenewalSweep, data), nil
}
