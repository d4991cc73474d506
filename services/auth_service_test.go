package services

import (
	"errors"
	"testing"

	"github.com/vulnlab/socialsite/config"
	"github.com/vulnlab/socialsite/models"
	"github.com/vulnlab/socialsite/utils"
)

const testAdminSecret = "test-admin-secret"

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(db, config.AppConfig{AdminSecretKey: testAdminSecret})
}

func TestSignupThenLogin(t *testing.T) {
	svc := newAuthService(t)

	p, err := svc.Signup("alice", "pw123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if p.Username != "alice" || p.IsAdmin {
		t.Fatalf("unexpected principal after signup: %+v", p)
	}

	q, err := svc.Login("alice", "pw123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if q.UserID != p.UserID || q.Username != "alice" || q.IsAdmin {
		t.Fatalf("unexpected principal after login: %+v", q)
	}
}

func TestSignupRejectsEmptyFields(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Signup("", "pw"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty username: got %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Signup("bob", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty password: got %v, want ErrInvalidInput", err)
	}
}

func TestSignupDuplicateKeepsStoredHash(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Signup("alice", "original"); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	var before models.User
	if err := svc.db.Where("username = ?", "alice").First(&before).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}

	if _, err := svc.Signup("alice", "other"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("duplicate signup: got %v, want ErrDuplicateUsername", err)
	}

	var after models.User
	if err := svc.db.Where("username = ?", "alice").First(&after).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if after.PasswordHash != before.PasswordHash {
		t.Fatal("stored hash changed after duplicate signup")
	}
	if _, err := svc.Login("alice", "original"); err != nil {
		t.Fatalf("original password no longer valid: %v", err)
	}
}

func TestLoginErrorsAreDistinct(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.Signup("alice", "pw123"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := svc.Login("alice", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("wrong password: got %v, want ErrInvalidPassword", err)
	}
	if _, err := svc.Login("nobody", "pw123"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown user: got %v, want ErrUserNotFound", err)
	}
}

func TestElevateToAdmin(t *testing.T) {
	svc := newAuthService(t)

	hash, err := utils.HashPassword("adminpw")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := svc.db.Create(&models.User{Username: "root", PasswordHash: hash, IsAdmin: true}).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if _, err := svc.Signup("bob", "pw"); err != nil {
		t.Fatalf("signup bob: %v", err)
	}

	p, err := svc.ElevateToAdmin("root", testAdminSecret)
	if err != nil {
		t.Fatalf("elevate admin: %v", err)
	}
	if !p.IsAdmin || p.Username != "root" {
		t.Fatalf("unexpected principal: %+v", p)
	}

	if _, err := svc.ElevateToAdmin("root", "wrong"); !errors.Is(err, ErrInvalidSecret) {
		t.Fatalf("wrong secret: got %v, want ErrInvalidSecret", err)
	}
	if _, err := svc.ElevateToAdmin("bob", testAdminSecret); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("non-admin target: got %v, want ErrNotAdmin", err)
	}
	if _, err := svc.ElevateToAdmin("ghost", testAdminSecret); !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("unknown target: got %v, want ErrNotAdmin", err)
	}
}
