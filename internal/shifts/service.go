package shifts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	dbpkg "github.com/rainadr/kasirkopi-backend/pkg/db"
	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// OpenShiftInput starts a register session.
type OpenShiftInput struct {
	EmployeeID   uuid.UUID
	OpeningFloat int64
}

// CloseShiftInput ends a register session with the counted drawer.
type CloseShiftInput struct {
	CountedCash int64
	Note        *string
}

// Service manages register shifts.
type Service interface {
	Open(ctx context.Context, input OpenShiftInput) (*models.Shift, error)
	Active(ctx context.Context) (*models.Shift, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Shift, error)
	List(ctx context.Context, limit int) ([]models.Shift, error)
	Close(ctx context.Context, id uuid.UUID, input CloseShiftInput) (*models.Shift, error)
	AutoCloseStale(ctx context.Context, openedBefore time.Time) (int, error)
}

type service struct {
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds the shifts service.
func NewService(repo Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shifts repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

// Open starts a shift. Only one shift may be open at a time; the partial
// unique index on the shifts table backs this up under concurrency.
func (s *service) Open(ctx context.Context, input OpenShiftInput) (*models.Shift, error) {
	if input.EmployeeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee id required")
	}
	if input.OpeningFloat < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "opening float must not be negative")
	}

	if _, err := s.repo.FindOpen(ctx); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "a shift is already open")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checking open shift")
	}

	shift := &models.Shift{
		EmployeeID:   input.EmployeeID,
		Status:       enums.ShiftStatusOpen,
		OpeningFloat: input.OpeningFloat,
		OpenedAt:     time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, shift)
	if err != nil {
		if dbpkg.IsUniqueViolation(err, "idx_shifts_single_open") {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "a shift is already open")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "opening shift")
	}
	return created, nil
}

func (s *service) Active(ctx context.Context) (*models.Shift, error) {
	shift, err := s.repo.FindOpen(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no open shift")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading open shift")
	}
	return shift, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	shift, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shift not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading shift")
	}
	return shift, nil
}

func (s *service) List(ctx context.Context, limit int) ([]models.Shift, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing shifts")
	}
	return rows, nil
}

// Close ends the shift and reconciles the drawer. Expected cash is the
// opening float plus cash sales settled during the shift.
func (s *service) Close(ctx context.Context, id uuid.UUID, input CloseShiftInput) (*models.Shift, error) {
	if input.CountedCash < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "counted cash must not be negative")
	}

	var closed *models.Shift
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		shift, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if shift.Status != enums.ShiftStatusOpen {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "shift already closed")
		}

		cashSales, err := repo.SumCashSales(ctx, shift.ID)
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		expected := shift.OpeningFloat + cashSales
		difference := input.CountedCash - expected

		updates := map[string]any{
			"status":        enums.ShiftStatusClosed,
			"closed_at":     now,
			"expected_cash": expected,
			"counted_cash":  input.CountedCash,
			"difference":    difference,
		}
		if input.Note != nil {
			updates["note"] = *input.Note
		}
		if err := repo.Update(ctx, shift.ID, updates); err != nil {
			return err
		}

		shift.Status = enums.ShiftStatusClosed
		shift.ClosedAt = &now
		shift.ExpectedCash = &expected
		shift.CountedCash = &input.CountedCash
		shift.Difference = &difference
		shift.Note = input.Note
		closed = shift
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shift not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "closing shift")
	}
	return closed, nil
}

// AutoCloseStale force-closes shifts left open past the cutoff. Counted
// cash is recorded as the expected amount so the difference is zero and
// the drawer gets reconciled by hand the next morning.
func (s *service) AutoCloseStale(ctx context.Context, openedBefore time.Time) (int, error) {
	stale, err := s.repo.ListOpenBefore(ctx, openedBefore)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing stale shifts")
	}

	closed := 0
	var errs []error
	for _, shift := range stale {
		note := "auto-closed after cutoff"
		if _, err := s.Close(ctx, shift.ID, CloseShiftInput{
			CountedCash: s.expectedFor(ctx, &shift),
			Note:        &note,
		}); err != nil {
			logCtx := s.logg.WithShiftID(ctx, shift.ID.String())
			s.logg.Error(logCtx, "auto-close failed", err)
			errs = append(errs, err)
			continue
		}
		closed++
	}
	return closed, multierr.Combine(errs...)
}

func (s *service) expectedFor(ctx context.Context, shift *models.Shift) int64 {
	cashSales, err := s.repo.SumCashSales(ctx, shift.ID)
	if err != nil {
		return shift.OpeningFloat
	}
	return shift.OpeningFloat + cashSales
}
