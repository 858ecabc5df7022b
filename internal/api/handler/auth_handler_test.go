package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskloop/taskloop-api/internal/core/domain"
)

type stubAuthService struct {
	user  *domain.User
	token string
	err   error

	loginCalls  int
	logoutToken string
}

func (s *stubAuthService) Register(_ context.Context, _, _, _ string) (*domain.User, error) {
	return s.user, s.err
}

func (s *stubAuthService) Login(_ context.Context, _, _ string) (string, *domain.User, error) {
	s.loginCalls++
	return s.token, s.user, s.err
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.logoutToken = token
	return s.err
}

func TestAuthHandler_Register_ValidationFailures(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	cases := map[string]string{
		"missing email":  `{"password":"s3cretpass"}`,
		"bad email":      `{"email":"not-an-email","password":"s3cretpass"}`,
		"short password": `{"email":"dev@example.com","password":"short"}`,
	}
	for name, body := range cases {
		c, _ := newTestContext(http.MethodPost, "/auth/register", body)

		err := h.Register(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: expected 422, got %v", name, err)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{token: "signed-token", user: &domain.User{ID: "user_001", Email: "dev@example.com"}}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/auth/login", `{"email":"dev@example.com","password":"s3cretpass"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.loginCalls != 1 {
		t.Errorf("expected one login call, got %d", svc.loginCalls)
	}
}

func TestAuthHandler_Login_ValidationFailures(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	cases := map[string]string{
		"missing email":    `{"password":"s3cretpass"}`,
		"bad email":        `{"email":"not-an-email","password":"s3cretpass"}`,
		"missing password": `{"email":"dev@example.com"}`,
	}
	for name, body := range cases {
		c, _ := newTestContext(http.MethodPost, "/auth/login", body)

		err := h.Login(c)
		httpErr, ok := err.(*echo.HTTPError)
		if !ok || httpErr.Code != http.StatusUnprocessableEntity {
			t.Errorf("%s: expected 422, got %v", name, err)
		}
	}
	if svc.loginCalls != 0 {
		t.Errorf("invalid payloads must never reach the service, got %d calls", svc.loginCalls)
	}
}

func TestAuthHandler_Logout_ForwardsBearerToken(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/auth/logout", "")
	c.Request().Header.Set("Authorization", "Bearer the-token")

	if err := h.Logout(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.logoutToken != "the-token" {
		t.Errorf("expected the raw bearer token, got %q", svc.logoutToken)
	}
}

func TestAuthHandler_Logout_MalformedHeader(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(http.MethodPost, "/auth/logout", "")

	err := h.Logout(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
