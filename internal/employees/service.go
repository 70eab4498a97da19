package employees

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/pkg/config"
	dbpkg "github.com/rainadr/kasirkopi-backend/pkg/db"
	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/security"
)

const tempPasswordLength = 12

// Service manages staff accounts. Role checks happen at the router;
// every operation here is owner-only.
type Service interface {
	Create(ctx context.Context, input CreateEmployeeInput) (*CreateEmployeeResult, error)
	Get(ctx context.Context, id uuid.UUID) (*EmployeeDTO, error)
	List(ctx context.Context) ([]EmployeeDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput) error
	ResetPassword(ctx context.Context, id uuid.UUID) (string, error)
}

type service struct {
	repo        Repository
	passwordCfg config.PasswordConfig
}

// NewService builds the employees service.
func NewService(repo Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("employees repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) Create(ctx context.Context, input CreateEmployeeInput) (*CreateEmployeeResult, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee name required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid email address")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", input.Role))
	}

	password := input.Password
	tempPassword := ""
	if password == "" {
		generated, err := security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating password")
		}
		password = generated
		tempPassword = generated
	}
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	employee := &models.Employee{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		IsActive:     true,
	}
	created, err := s.repo.Create(ctx, employee)
	if err != nil {
		if dbpkg.IsUniqueViolation(err, "employees_email_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating employee")
	}

	return &CreateEmployeeResult{
		Employee:     FromModel(created),
		TempPassword: tempPassword,
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*EmployeeDTO, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "employee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading employee")
	}
	dto := FromModel(employee)
	return &dto, nil
}

func (s *service) List(ctx context.Context) ([]EmployeeDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing employees")
	}
	out := make([]EmployeeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateEmployeeInput) error {
	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "employee name required")
		}
		updates["name"] = name
	}
	if input.Role != nil {
		if !input.Role.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", *input.Role))
		}
		updates["role"] = *input.Role
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no updates provided")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating employee")
	}
	return nil
}

// ResetPassword issues a fresh temporary password and returns it once.
func (s *service) ResetPassword(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return "", err
	}
	password, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating password")
	}
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}
	if err := s.repo.Update(ctx, id, map[string]any{"password_hash": hash}); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing password")
	}
	return password, nil
}
