package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/prima-crm/prima-crm/internal/revenue"
)

// RevenueWarmupJob pre-populates the revenue summary cache so the dashboard
// read path never pays for the aggregation scan.
type RevenueWarmupJob struct {
	Revenue *revenue.Service
	Logger  *slog.Logger
}

// NewRevenueWarmupJob wires dependencies for the warmup handler.
func NewRevenueWarmupJob(svc *revenue.Service, logger *slog.Logger) *RevenueWarmupJob {
	return &RevenueWarmupJob{Revenue: svc, Logger: logger}
}

// Handle processes revenue warmup tasks.
func (j *RevenueWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Revenue == nil {
		return errors.New("revenue warmup: handler not configured")
	}
	var payload RevenueWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	summary, err := j.Revenue.Refresh(ctx)
	if err != nil {
		j.Logger.Error("revenue warmup failed", slog.Any("error", err))
		return err
	}
	j.Logger.Info("revenue cache warmed", slog.Int("months", len(summary.Items)))
	return nil
}
