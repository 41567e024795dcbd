package service

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

func setupAS(t *testing.T) *AuthService {
	t.Helper()
	users := repository.NewMemoryUsers(repository.NewMemoryStore())
	return NewAuthService(users, "test-secret")
}

func TestAuth_RegisterLogin(t *testing.T) {
	ctx := context.Background()
	as := setupAS(t)

	u, token, err := as.Register(ctx, "John", "john@example.com", "password123")
	if err != nil {
		t.Fatalf("register err: %v", err)
	}
	if u.Role != domain.RoleUser {
		t.Fatalf("new accounts must get the user role, got %s", u.Role)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}

	claims, err := as.ParseToken(token)
	if err != nil || claims.UserID != u.ID || claims.Role != domain.RoleUser {
		t.Fatalf("token claims wrong: %+v %v", claims, err)
	}

	got, _, err := as.Login(ctx, "john@example.com", "password123")
	if err != nil || got.ID != u.ID {
		t.Fatalf("login failed: %v", err)
	}
}

func TestAuth_Login_Indistinct(t *testing.T) {
	ctx := context.Background()
	as := setupAS(t)
	if _, _, err := as.Register(ctx, "John", "john@example.com", "password123"); err != nil {
		t.Fatal(err)
	}

	// wrong password and unknown email yield the same error
	if _, _, err := as.Login(ctx, "john@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, _, err := as.Login(ctx, "nobody@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v", err)
	}
}

func TestAuth_Register_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	as := setupAS(t)
	if _, _, err := as.Register(ctx, "John", "john@example.com", "password123"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := as.Register(ctx, "Jane", "john@example.com", "other-pass"); !errors.Is(err, repository.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuth_ParseToken_Garbage(t *testing.T) {
	as := setupAS(t)
	if _, err := as.ParseToken("not-a-token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// token signed with a different secret must be rejected
	other := setupAS(t)
	other.secret = []byte("other-secret")
	_, token, err := other.Register(context.Background(), "Eve", "eve@example.com", "password123")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := as.ParseToken(token); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("foreign token accepted: %v", err)
	}
}

func TestAuth_ForgotPassword(t *testing.T) {
	ctx := context.Background()
	as := setupAS(t)
	if _, _, err := as.Register(ctx, "John", "john@example.com", "password123"); err != nil {
		t.Fatal(err)
	}

	if err := as.ForgotPassword(ctx, "john@example.com"); err != nil {
		t.Fatalf("existing account: %v", err)
	}
	if err := as.ForgotPassword(ctx, "nobody@example.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
