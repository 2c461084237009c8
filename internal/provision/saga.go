// AngelaMos | 2026
// saga.go

package provision

import (
	"context"
	"log/slog"
)

// saga collects compensating actions for the steps already applied so a
// failed provisioning run can unwind partial state. Compensations run in
// reverse registration order.
type saga struct {
	logger *slog.Logger
	undo   []func(ctx context.Context) error
}

func newSaga(logger *slog.Logger) *saga {
	return &saga{logger: logger}
}

func (s *saga) register(compensate func(ctx context.Context) error) {
	s.undo = append(s.undo, compensate)
}

// compensate unwinds every registered step. A failing compensation is
// logged and does not stop the remaining ones from running.
func (s *saga) compensate(ctx context.Context) {
	for i := len(s.undo) - 1; i >= 0; i-- {
		if err := s.undo[i](ctx); err != nil {
			s.logger.ErrorContext(ctx, "saga compensation failed",
				slog.Int("step", i),
				slog.String("error", err.Error()),
			)
		}
	}
}
