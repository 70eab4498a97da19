package shifts

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/logger"
)

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubRepo struct {
	shifts    map[uuid.UUID]*models.Shift
	cashSales int64
	updates   map[string]any
	createErr error
}

func newStubRepo(shifts ...*models.Shift) *stubRepo {
	byID := map[uuid.UUID]*models.Shift{}
	for _, sh := range shifts {
		byID[sh.ID] = sh
	}
	return &stubRepo{shifts: byID}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, shift *models.Shift) (*models.Shift, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	shift.ID = uuid.New()
	s.shifts[shift.ID] = shift
	return shift, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Shift, error) {
	sh, ok := s.shifts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *sh
	return &copied, nil
}

func (s *stubRepo) FindOpen(ctx context.Context) (*models.Shift, error) {
	for _, sh := range s.shifts {
		if sh.Status == enums.ShiftStatusOpen {
			copied := *sh
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) List(ctx context.Context, limit int) ([]models.Shift, error) {
	var out []models.Shift
	for _, sh := range s.shifts {
		out = append(out, *sh)
	}
	return out, nil
}

func (s *stubRepo) ListOpenBefore(ctx context.Context, cutoff time.Time) ([]models.Shift, error) {
	var out []models.Shift
	for _, sh := range s.shifts {
		if sh.Status == enums.ShiftStatusOpen && sh.OpenedAt.Before(cutoff) {
			out = append(out, *sh)
		}
	}
	return out, nil
}

func (s *stubRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	s.updates = updates
	if sh, ok := s.shifts[id]; ok {
		if status, ok := updates["status"].(enums.ShiftStatus); ok {
			sh.Status = status
		}
	}
	return nil
}

func (s *stubRepo) SumCashSales(ctx context.Context, shiftID uuid.UUID) (int64, error) {
	return s.cashSales, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{}, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestOpenShiftSuccess(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)

	shift, err := svc.Open(context.Background(), OpenShiftInput{
		EmployeeID:   uuid.New(),
		OpeningFloat: 200000,
	})
	if err != nil {
		t.Fatalf("open shift: %v", err)
	}
	if shift.Status != enums.ShiftStatusOpen {
		t.Fatalf("expected open status, got %s", shift.Status)
	}
	if shift.OpeningFloat != 200000 {
		t.Fatalf("expected opening float persisted, got %d", shift.OpeningFloat)
	}
}

func TestOpenShiftConflictsWhenOneIsOpen(t *testing.T) {
	existing := &models.Shift{ID: uuid.New(), Status: enums.ShiftStatusOpen, OpenedAt: time.Now()}
	svc := newTestService(t, newStubRepo(existing))

	_, gotErr := svc.Open(context.Background(), OpenShiftInput{EmployeeID: uuid.New()})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", gotErr)
	}
}

func TestOpenShiftRaceMapsUniqueViolation(t *testing.T) {
	// Two registers racing past the open-shift check; the partial unique
	// index rejects the loser and the driver error must map to a conflict.
	repo := newStubRepo()
	repo.createErr = errors.New(`ERROR: duplicate key value violates unique constraint "idx_shifts_single_open" (SQLSTATE 23505)`)
	svc := newTestService(t, repo)

	_, gotErr := svc.Open(context.Background(), OpenShiftInput{EmployeeID: uuid.New()})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", gotErr)
	}
}

func TestOpenShiftValidation(t *testing.T) {
	svc := newTestService(t, newStubRepo())

	_, gotErr := svc.Open(context.Background(), OpenShiftInput{
		EmployeeID:   uuid.New(),
		OpeningFloat: -1,
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestCloseShiftReconcilesDrawer(t *testing.T) {
	shift := &models.Shift{
		ID:           uuid.New(),
		Status:       enums.ShiftStatusOpen,
		OpeningFloat: 200000,
		OpenedAt:     time.Now().Add(-8 * time.Hour),
	}
	repo := newStubRepo(shift)
	repo.cashSales = 450000
	svc := newTestService(t, repo)

	closed, err := svc.Close(context.Background(), shift.ID, CloseShiftInput{CountedCash: 640000})
	if err != nil {
		t.Fatalf("close shift: %v", err)
	}
	if closed.Status != enums.ShiftStatusClosed {
		t.Fatalf("expected closed status, got %s", closed.Status)
	}
	if closed.ExpectedCash == nil || *closed.ExpectedCash != 650000 {
		t.Fatalf("expected expected cash 650000, got %v", closed.ExpectedCash)
	}
	if closed.Difference == nil || *closed.Difference != -10000 {
		t.Fatalf("expected difference -10000, got %v", closed.Difference)
	}
}

func TestCloseShiftAlreadyClosed(t *testing.T) {
	shift := &models.Shift{ID: uuid.New(), Status: enums.ShiftStatusClosed}
	svc := newTestService(t, newStubRepo(shift))

	_, gotErr := svc.Close(context.Background(), shift.ID, CloseShiftInput{CountedCash: 0})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", gotErr)
	}
}

func TestCloseShiftNotFound(t *testing.T) {
	svc := newTestService(t, newStubRepo())

	_, gotErr := svc.Close(context.Background(), uuid.New(), CloseShiftInput{CountedCash: 0})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", gotErr)
	}
}

func TestActiveShiftNotFound(t *testing.T) {
	svc := newTestService(t, newStubRepo())

	_, gotErr := svc.Active(context.Background())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", gotErr)
	}
}

func TestAutoCloseStale(t *testing.T) {
	stale := &models.Shift{
		ID:           uuid.New(),
		Status:       enums.ShiftStatusOpen,
		OpeningFloat: 100000,
		OpenedAt:     time.Now().Add(-24 * time.Hour),
	}
	fresh := &models.Shift{
		ID:       uuid.New(),
		Status:   enums.ShiftStatusOpen,
		OpenedAt: time.Now(),
	}
	repo := newStubRepo(stale, fresh)
	svc := newTestService(t, repo)

	closed, err := svc.AutoCloseStale(context.Background(), time.Now().Add(-18*time.Hour))
	if err != nil {
		t.Fatalf("auto close: %v", err)
	}
	if closed != 1 {
		t.Fatalf("expected 1 shift closed, got %d", closed)
	}
	if repo.shifts[stale.ID].Status != enums.ShiftStatusClosed {
		t.Fatal("expected stale shift closed")
	}
	if repo.shifts[fresh.ID].Status != enums.ShiftStatusOpen {
		t.Fatal("expected fresh shift untouched")
	}
}
