package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskloop/taskloop-api/internal/core/domain"
)

type stubAuthRepo struct {
	users  map[string]*domain.User // keyed by email
	nextID int
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.Email]; ok {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user_%03d", r.nextID)
	r.users[user.Email] = &clone
	return &clone, nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type stubDenylist struct {
	revoked map[string]time.Duration
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Duration)}
}

func (d *stubDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.revoked[jti] = ttl
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := d.revoked[jti]
	return ok, nil
}

const testSecret = "test-secret"

func newAuthFixture() (*AuthService, *stubAuthRepo, *stubDenylist) {
	repo := newStubAuthRepo()
	denylist := newStubDenylist()
	return NewAuthService(repo, denylist, testSecret, time.Hour), repo, denylist
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	svc, repo, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), "dev@example.com", "s3cretpass", "Dev")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" {
		t.Error("expected an assigned id")
	}

	stored := repo.users["dev@example.com"]
	if stored.PasswordHash == "s3cretpass" {
		t.Fatal("password must not be stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cretpass")) != nil {
		t.Error("stored hash does not verify against the original password")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), "dev@example.com", "s3cretpass", "Dev"); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(context.Background(), "dev@example.com", "otherpass1", "Dev Again")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_ReturnsSignedToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), "dev@example.com", "s3cretpass", "Dev")
	if err != nil {
		t.Fatal(err)
	}

	token, got, err := svc.Login(context.Background(), "dev@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, got.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["sub"] != user.ID {
		t.Errorf("expected sub %s, got %v", user.ID, claims["sub"])
	}
	if jti, _ := claims["jti"].(string); jti == "" {
		t.Error("token must carry a jti claim")
	}
	if exp, err := claims.GetExpirationTime(); err != nil || exp == nil || !exp.After(time.Now()) {
		t.Errorf("token must carry a future expiry, got %v", exp)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), "dev@example.com", "s3cretpass", "Dev"); err != nil {
		t.Fatal(err)
	}
	_, _, err := svc.Login(context.Background(), "dev@example.com", "wrongpass1")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever1")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Logout_RevokesTokenID(t *testing.T) {
	svc, _, denylist := newAuthFixture()

	if _, err := svc.Register(context.Background(), "dev@example.com", "s3cretpass", "Dev"); err != nil {
		t.Fatal(err)
	}
	token, _, err := svc.Login(context.Background(), "dev@example.com", "s3cretpass")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatal(err)
	}
	jti, _ := claims["jti"].(string)

	revoked, err := denylist.IsRevoked(context.Background(), jti)
	if err != nil {
		t.Fatal(err)
	}
	if !revoked {
		t.Error("jti must be revoked after logout")
	}
	if ttl := denylist.revoked[jti]; ttl <= 0 || ttl > time.Hour {
		t.Errorf("revocation ttl must track the remaining token lifetime, got %v", ttl)
	}
}

func TestAuthService_Logout_RejectsGarbageToken(t *testing.T) {
	svc, _, denylist := newAuthFixture()

	err := svc.Logout(context.Background(), "not-a-token")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(denylist.revoked) != 0 {
		t.Error("nothing may be revoked for an unverifiable token")
	}
}
