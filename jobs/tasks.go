package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskRevenueWarmup refreshes the cached revenue aggregation.
	TaskRevenueWarmup = "revenue:warmup"
)

// RevenueWarmupPayload parameterises a warmup run.
type RevenueWarmupPayload struct {
	Months int `json:"months"`
}

// NewRevenueWarmupTask constructs an Asynq task.
func NewRevenueWarmupTask(payload RevenueWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRevenueWarmup, data), nil
}
