package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/vulnlab/socialsite/config"
	"github.com/vulnlab/socialsite/models"
	"github.com/vulnlab/socialsite/session"
	"github.com/vulnlab/socialsite/utils"
)

// AuthService verifies credentials, creates accounts and re-authenticates
// admins under the process-wide shared secret. Every call hits the database
// directly; there is no user cache.
type AuthService struct {
	db          *gorm.DB
	adminSecret string
}

// NewAuthService creates an AuthService bound to the configured admin secret.
func NewAuthService(db *gorm.DB, cfg config.AppConfig) *AuthService {
	return &AuthService{db: db, adminSecret: cfg.AdminSecretKey}
}

// Signup creates a non-admin account and returns its principal. The caller is
// expected to establish the session immediately (auto-login after signup).
func (s *AuthService) Signup(username, password string) (session.Principal, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return session.Principal{}, ErrInvalidInput
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return session.Principal{}, fmt.Errorf("%w: hashing password: %v", ErrStorage, err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return session.Principal{}, ErrDuplicateUsername
		}
		return session.Principal{}, fmt.Errorf("%w: creating user: %v", ErrStorage, err)
	}

	utils.Sugar.Infof("user %q registered (id=%d)", user.Username, user.ID)
	return principalOf(user), nil
}

// Login verifies the username/password pair. A missing user and a failed hash
// comparison are reported as distinct errors.
func (s *AuthService) Login(username, password string) (session.Principal, error) {
	user, err := s.findByUsername(username)
	if err != nil {
		return session.Principal{}, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return session.Principal{}, ErrInvalidPassword
	}
	return principalOf(user), nil
}

// ElevateToAdmin re-authenticates an existing admin under the shared secret.
// It never grants adminship: the secret must match and the target account must
// already carry the admin flag.
func (s *AuthService) ElevateToAdmin(username, suppliedSecret string) (session.Principal, error) {
	if subtle.ConstantTimeCompare([]byte(suppliedSecret), []byte(s.adminSecret)) != 1 {
		return session.Principal{}, ErrInvalidSecret
	}

	user, err := s.findAdminByUsername(username)
	if err != nil {
		return session.Principal{}, err
	}

	utils.Sugar.Infof("admin %q re-authenticated via secret key", user.Username)
	return principalOf(user), nil
}

func (s *AuthService) findByUsername(username string) (models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("%w: looking up user: %v", ErrStorage, err)
	}
	return user, nil
}

func (s *AuthService) findAdminByUsername(username string) (models.User, error) {
	var user models.User
	if err := s.db.Where("username = ? AND is_admin = ?", username, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotAdmin
		}
		return models.User{}, fmt.Errorf("%w: looking up admin: %v", ErrStorage, err)
	}
	return user, nil
}

func principalOf(u models.User) session.Principal {
	return session.Principal{
		UserID:   u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}
