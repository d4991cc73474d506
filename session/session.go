package session

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const principalKey = "PRINCIPAL"

// Principal is the authenticated identity attached to a session after a
// successful signup, login or admin re-authentication. It is derived from the
// User record and lives only as long as the session.
type Principal struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

func init() {
	gob.Register(Principal{})
}

// SetPrincipal stores the principal in the request's session.
func SetPrincipal(c *gin.Context, p Principal) error {
	s := sessions.Default(c)
	s.Set(principalKey, p)
	return s.Save()
}

// GetPrincipal returns the principal for the request, or nil when anonymous.
func GetPrincipal(c *gin.Context) *Principal {
	s := sessions.Default(c)
	if obj := s.Get(principalKey); obj != nil {
		if p, ok := obj.(Principal); ok {
			return &p
		}
	}
	return nil
}

// IsLoggedIn reports whether the request carries an authenticated principal.
func IsLoggedIn(c *gin.Context) bool {
	return GetPrincipal(c) != nil
}

// Clear drops the session and expires its cookie. Safe to call on an
// anonymous session.
func Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
