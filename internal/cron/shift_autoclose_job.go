package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/rainadr/kasirkopi-backend/pkg/logger"
)

const defaultShiftMaxAge = 18 * time.Hour

type staleShiftCloser interface {
	AutoCloseStale(ctx context.Context, openedBefore time.Time) (int, error)
}

// ShiftAutoCloseJobParams configure the stale shift closer.
type ShiftAutoCloseJobParams struct {
	Logger *logger.Logger
	Shifts staleShiftCloser
	MaxAge time.Duration
}

// NewShiftAutoCloseJob builds the cron job that closes shifts left open
// overnight.
func NewShiftAutoCloseJob(params ShiftAutoCloseJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Shifts == nil {
		return nil, fmt.Errorf("shifts service required")
	}
	maxAge := params.MaxAge
	if maxAge <= 0 {
		maxAge = defaultShiftMaxAge
	}
	return &shiftAutoCloseJob{
		logg:   params.Logger,
		shifts: params.Shifts,
		maxAge: maxAge,
		now:    time.Now,
	}, nil
}

type shiftAutoCloseJob struct {
	logg   *logger.Logger
	shifts staleShiftCloser
	maxAge time.Duration
	now    func() time.Time
}

func (j *shiftAutoCloseJob) Name() string { return "shift-autoclose" }

func (j *shiftAutoCloseJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.maxAge)
	closed, err := j.shifts.AutoCloseStale(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("auto-close stale shifts: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": closed})
	j.logg.Info(logCtx, "shift auto-close loop complete")
	return nil
}
