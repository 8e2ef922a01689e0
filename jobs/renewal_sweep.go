package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/osa-portal/osa-portal/internal/partnerships"
)

// RenewalSweeper processes TaskRenewalSweep tasks.
type RenewalSweeper struct {
	service *partnerships.Service
	logger  *slog.Logger
}

// NewRenewalSweeper builds the sweep handler.
func NewRenewalSweeper(service *partnerships.Service, logger *slog.Logger) *RenewalSweeper {
	return &RenewalSweeper{service: service, logger: logger}
}

// Handle flips expired active partnerships to for_renewal. A malformed
// payload is dropped rather than retried.
func (s *RenewalSweeper) Handle(ctx context.Context, t *asynq.Task) error {
	var payload RenewalSweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	flipped, err := s.service.SweepExpired(ctx, payload.ActorID)
	if err != nil {
		return err
	}
	s.logger.Info("renewal sweep finished", slog.Int("flipped", flipped))
	return nil
}
