package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
)

const defaultTopProducts = 10

// CreateExpenseInput records an out-of-pocket cost.
type CreateExpenseInput struct {
	Description string
	Amount      int64
	SpentAt     *time.Time
	EmployeeID  uuid.UUID
}

// Service builds sales reports and manages expenses.
type Service interface {
	Daily(ctx context.Context, day time.Time) (*DailyReport, error)
	Range(ctx context.Context, from, to time.Time) (*DailyReport, error)
	CreateExpense(ctx context.Context, input CreateExpenseInput) (*models.Expense, error)
	ListExpenses(ctx context.Context, from, to time.Time) ([]models.Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo     Repository
	location *time.Location
}

// NewService builds the reports service. Day boundaries follow the
// outlet's local time.
func NewService(repo Repository, location *time.Location) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if location == nil {
		location = time.UTC
	}
	return &service{repo: repo, location: location}, nil
}

// Daily reports one local calendar day.
func (s *service) Daily(ctx context.Context, day time.Time) (*DailyReport, error) {
	local := day.In(s.location)
	from := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location)
	return s.Range(ctx, from, from.AddDate(0, 0, 1))
}

// Range reports the half-open interval [from, to).
func (s *service) Range(ctx context.Context, from, to time.Time) (*DailyReport, error) {
	if !to.After(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "report range must end after it starts")
	}

	summary, err := s.repo.SalesSummary(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summarizing sales")
	}
	byMethod, err := s.repo.SalesByMethod(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "grouping sales by method")
	}
	topProducts, err := s.repo.TopProducts(ctx, from, to, defaultTopProducts)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "ranking products")
	}
	expenses, err := s.repo.SumExpenses(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summing expenses")
	}

	return &DailyReport{
		From:          from,
		To:            to,
		Summary:       *summary,
		ByMethod:      byMethod,
		TopProducts:   topProducts,
		TotalExpenses: expenses,
		NetIncome:     summary.NetSales - expenses,
	}, nil
}

func (s *service) CreateExpense(ctx context.Context, input CreateExpenseInput) (*models.Expense, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense description required")
	}
	if input.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense amount must be positive")
	}
	if input.EmployeeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee id required")
	}

	spentAt := time.Now().UTC()
	if input.SpentAt != nil {
		spentAt = *input.SpentAt
	}
	expense := &models.Expense{
		Description: description,
		Amount:      input.Amount,
		SpentAt:     spentAt,
		EmployeeID:  input.EmployeeID,
	}
	created, err := s.repo.CreateExpense(ctx, expense)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "recording expense")
	}
	return created, nil
}

func (s *service) ListExpenses(ctx context.Context, from, to time.Time) ([]models.Expense, error) {
	if !to.After(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expense range must end after it starts")
	}
	rows, err := s.repo.ListExpenses(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing expenses")
	}
	return rows, nil
}

func (s *service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting expense")
	}
	return nil
}
