package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const testSecret = "test-secret"

type stubRevocationChecker struct {
	revoked map[string]bool
	err     error
}

func (s *stubRevocationChecker) IsRevoked(_ context.Context, jti string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[jti], nil
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func invoke(authHeader string, revoked RevocationChecker) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/todos", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Auth(testSecret, revoked, zerolog.Nop())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestAuth_ValidTokenSetsCallerIdentity(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user_001",
		"email": "dev@example.com",
		"jti":   "tok1",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	c, err := invoke("Bearer "+token, &stubRevocationChecker{revoked: map[string]bool{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Get("user_id"); got != "user_001" {
		t.Errorf("expected user_id user_001, got %v", got)
	}
	if got := c.Get("email"); got != "dev@example.com" {
		t.Errorf("expected email claim, got %v", got)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, err := invoke("", nil)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Basic dXNlcjpwYXNz", "just-a-token"} {
		_, err := invoke(header, nil)
		assertHTTPStatus(t, err, http.StatusUnauthorized)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user_001",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err := invoke("Bearer "+token, nil)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user_001",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	_, err := invoke("Bearer "+token, nil)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_RevokedToken(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user_001",
		"jti": "revoked-jti",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	checker := &stubRevocationChecker{revoked: map[string]bool{"revoked-jti": true}}
	_, err := invoke("Bearer "+token, checker)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_DenylistUnavailableFailsClosed(t *testing.T) {
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user_001",
		"jti": "tok1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	checker := &stubRevocationChecker{err: errors.New("connection refused")}
	c, err := invoke("Bearer "+token, checker)
	assertHTTPStatus(t, err, http.StatusServiceUnavailable)
	if c.Get("user_id") != nil {
		t.Error("no caller identity may be set when revocation cannot be checked")
	}
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != want {
		t.Errorf("expected status %d, got %d", want, httpErr.Code)
	}
}
