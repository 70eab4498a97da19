package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgauth "github.com/rainadr/kasirkopi-backend/pkg/auth"
	"github.com/rainadr/kasirkopi-backend/pkg/config"
	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
	pkgerrors "github.com/rainadr/kasirkopi-backend/pkg/errors"
	"github.com/rainadr/kasirkopi-backend/pkg/security"
)

type stubEmployeeRepo struct {
	employee *models.Employee
	err      error
}

func (s stubEmployeeRepo) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.employee == nil || s.employee.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.employee, nil
}

type stubSessions struct {
	tokens map[string]string
}

func newStubSessions() *stubSessions {
	return &stubSessions{tokens: map[string]string{}}
}

func (s *stubSessions) StoreRefreshToken(ctx context.Context, employeeID, token string, ttl time.Duration) error {
	s.tokens[employeeID] = token
	return nil
}

func (s *stubSessions) GetRefreshToken(ctx context.Context, employeeID string) (string, error) {
	return s.tokens[employeeID], nil
}

func (s *stubSessions) RevokeRefreshToken(ctx context.Context, employeeID string) error {
	delete(s.tokens, employeeID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "kasirkopi-test",
		ExpirationMinutes:      30,
		RefreshTokenTTLMinutes: 60,
	}
}

func fastPasswordCfg() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func testEmployee(t *testing.T, password string) *models.Employee {
	t.Helper()
	hash, err := security.HashPassword(password, fastPasswordCfg())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.Employee{
		ID:           uuid.New(),
		Name:         "Dewi Lestari",
		Email:        "dewi@kopikita.id",
		PasswordHash: hash,
		Role:         enums.EmployeeRoleCashier,
		IsActive:     true,
	}
}

func newTestService(t *testing.T, repo employeeRepository, sessions sessionStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		EmployeeRepo: repo,
		SessionStore: sessions,
		JWTConfig:    testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestLoginSuccess(t *testing.T) {
	employee := testEmployee(t, "kata-sandi")
	sessions := newStubSessions()
	svc := newTestService(t, stubEmployeeRepo{employee: employee}, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "Dewi@kopikita.id",
		Password: "kata-sandi",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if resp.Employee.ID != employee.ID {
		t.Fatal("expected employee dto")
	}

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.EmployeeID != employee.ID || claims.Role != enums.EmployeeRoleCashier {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if sessions.tokens[employee.ID.String()] != resp.RefreshToken {
		t.Fatal("expected refresh token stored")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	employee := testEmployee(t, "kata-sandi")
	svc := newTestService(t, stubEmployeeRepo{employee: employee}, newStubSessions())

	_, gotErr := svc.Login(context.Background(), LoginRequest{
		Email:    "dewi@kopikita.id",
		Password: "salah",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", gotErr)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService(t, stubEmployeeRepo{}, newStubSessions())

	_, gotErr := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@kopikita.id",
		Password: "apapun",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", gotErr)
	}
}

func TestLoginInactiveEmployee(t *testing.T) {
	employee := testEmployee(t, "kata-sandi")
	employee.IsActive = false
	svc := newTestService(t, stubEmployeeRepo{employee: employee}, newStubSessions())

	_, gotErr := svc.Login(context.Background(), LoginRequest{
		Email:    "dewi@kopikita.id",
		Password: "kata-sandi",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", gotErr)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	employee := testEmployee(t, "kata-sandi")
	sessions := newStubSessions()
	svc := newTestService(t, stubEmployeeRepo{employee: employee}, sessions)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "dewi@kopikita.id",
		Password: "kata-sandi",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Fatal("expected rotated refresh token")
	}
	if sessions.tokens[employee.ID.String()] != refreshed.RefreshToken {
		t.Fatal("expected new refresh token stored")
	}

	// The old refresh token no longer matches the stored one.
	_, gotErr := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized on replay, got %v", gotErr)
	}
}

func TestRefreshRejectsUnknownRefreshToken(t *testing.T) {
	employee := testEmployee(t, "kata-sandi")
	sessions := newStubSessions()
	svc := newTestService(t, stubEmployeeRepo{employee: employee}, sessions)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "dewi@kopikita.id",
		Password: "kata-sandi",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	_, gotErr := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: "forged",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", gotErr)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	employee := testEmployee(t, "kata-sandi")
	sessions := newStubSessions()
	svc := newTestService(t, stubEmployeeRepo{employee: employee}, sessions)

	login, err := svc.Login(context.Background(), LoginRequest{
		Email:    "dewi@kopikita.id",
		Password: "kata-sandi",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := svc.Logout(context.Background(), employee.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}

	_, gotErr := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized after logout, got %v", gotErr)
	}
}
