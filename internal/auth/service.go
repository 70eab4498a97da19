package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/kasirkopi-backend/internal/employees"
	pkgauth "github.com/rainadr/kasirkopi-backend/pkg/auth"
	"github.com/rainadr/kasirkopi-backend/pkg/config"
	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error)
	Logout(ctx context.Context, employeeID uuid.UUID) error
}

type employeeRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
}

type sessionStore interface {
	StoreRefreshToken(ctx context.Context, employeeID, token string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, employeeID string) (string, error)
	RevokeRefreshToken(ctx context.Context, employeeID string) error
}

type service struct {
	employees employeeRepository
	sessions  sessionStore
	jwtCfg    config.JWTConfig
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	EmployeeRepo employeeRepository
	SessionStore sessionStore
	JWTConfig    config.JWTConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.EmployeeRepo == nil {
		return nil, fmt.Errorf("employee repository is required")
	}
	if params.SessionStore == nil {
		return nil, fmt.Errorf("session store is required")
	}
	return &service{
		employees: params.EmployeeRepo,
		sessions:  params.SessionStore,
		jwtCfg:    params.JWTConfig,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	employee, err := s.authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := s.issueTokens(ctx, employee)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Employee:     employees.FromModel(employee),
	}, nil
}

// Refresh rotates the token pair. The access token may be expired; only
// its signature and the stored refresh token are checked.
func (s *service) Refresh(ctx context.Context, req RefreshRequest) (*RefreshResponse, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, req.AccessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	stored, err := s.sessions.GetRefreshToken(ctx, claims.EmployeeID.String())
	if err != nil || stored == "" || stored != req.RefreshToken {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	employee := &models.Employee{
		ID:   claims.EmployeeID,
		Name: claims.Name,
		Role: claims.Role,
	}
	accessToken, refreshToken, err := s.issueTokens(ctx, employee)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *service) Logout(ctx context.Context, employeeID uuid.UUID) error {
	if err := s.sessions.RevokeRefreshToken(ctx, employeeID.String()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	return nil
}

func (s *service) authenticate(ctx context.Context, email, password string) (*models.Employee, error) {
	input := strings.TrimSpace(email)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	employee, err := s.employees.FindByEmail(ctx, strings.ToLower(input))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup employee")
	}

	valid, err := security.VerifyPassword(password, employee.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !employee.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return employee, nil
}

func (s *service) issueTokens(ctx context.Context, employee *models.Employee) (string, string, error) {
	payload := pkgauth.AccessTokenPayload{
		EmployeeID: employee.ID,
		Name:       employee.Name,
		Role:       employee.Role,
	}
	accessToken, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), payload)
	if err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}

	refreshToken := uuid.NewString()
	ttl := s.jwtCfg.RefreshTokenTTL()
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	if err := s.sessions.StoreRefreshToken(ctx, employee.ID.String(), refreshToken, ttl); err != nil {
		return "", "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}
	return accessToken, refreshToken, nil
}
