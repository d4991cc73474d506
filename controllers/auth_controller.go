package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vulnlab/socialsite/middleware"
	"github.com/vulnlab/socialsite/services"
	"github.com/vulnlab/socialsite/session"
	"github.com/vulnlab/socialsite/utils"
)

// AuthController exposes signup, login, logout and admin re-authentication
// over the auth service. Successful auth establishes a session principal.
type AuthController struct {
	auth *services.AuthService
}

// NewAuthController creates an AuthController.
func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type credentialsForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Signup creates an account and logs the new user in.
func (a *AuthController) Signup(ctx *gin.Context) {
	var form credentialsForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	principal, err := a.auth.Signup(form.Username, form.Password)
	if err != nil {
		writeAuthError(ctx, err)
		return
	}

	if err := session.SetPrincipal(ctx, principal); err != nil {
		utils.Sugar.Errorf("failed to save session: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to establish session")
		return
	}
	utils.Success(ctx, gin.H{"user": principal})
}

// Login verifies credentials and establishes a session.
func (a *AuthController) Login(ctx *gin.Context) {
	var form credentialsForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	principal, err := a.auth.Login(form.Username, form.Password)
	if err != nil {
		writeAuthError(ctx, err)
		return
	}

	if err := session.SetPrincipal(ctx, principal); err != nil {
		utils.Sugar.Errorf("failed to save session: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to establish session")
		return
	}
	utils.Success(ctx, gin.H{"user": principal})
}

// Logout drops the session. Idempotent: logging out an anonymous session succeeds.
func (a *AuthController) Logout(ctx *gin.Context) {
	if p := session.GetPrincipal(ctx); p != nil {
		utils.Sugar.Infof("user %q logged out", p.Username)
	}
	if err := session.Clear(ctx); err != nil {
		utils.Sugar.Errorf("failed to clear session: %v", err)
	}
	utils.Success(ctx, nil)
}

type elevateForm struct {
	Username string `json:"username" form:"username"`
	Secret   string `json:"secret" form:"secret"`
}

// Elevate re-authenticates an existing admin account under the shared secret
// and replaces the session principal. It cannot grant adminship.
func (a *AuthController) Elevate(ctx *gin.Context) {
	var form elevateForm
	if err := ctx.ShouldBind(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	principal, err := a.auth.ElevateToAdmin(form.Username, form.Secret)
	if err != nil {
		writeAuthError(ctx, err)
		return
	}

	if err := session.SetPrincipal(ctx, principal); err != nil {
		utils.Sugar.Errorf("failed to save session: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to establish session")
		return
	}
	utils.Success(ctx, gin.H{"user": principal})
}

// Me returns the current session principal.
func (a *AuthController) Me(ctx *gin.Context) {
	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40101, "you must be logged in")
		return
	}
	utils.Success(ctx, gin.H{"user": principal})
}

// writeAuthError maps core auth errors onto the HTTP surface. NotFound and
// InvalidPassword stay distinguishable on purpose; see the error definitions.
func writeAuthError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.Error(ctx, http.StatusBadRequest, 40001, err.Error())
	case errors.Is(err, services.ErrDuplicateUsername):
		utils.Error(ctx, http.StatusConflict, 40901, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		utils.Error(ctx, http.StatusUnauthorized, 40401, err.Error())
	case errors.Is(err, services.ErrInvalidPassword):
		utils.Error(ctx, http.StatusUnauthorized, 40106, err.Error())
	case errors.Is(err, services.ErrInvalidSecret):
		utils.Error(ctx, http.StatusUnauthorized, 40108, err.Error())
	case errors.Is(err, services.ErrNotAdmin):
		utils.Error(ctx, http.StatusForbidden, 40301, err.Error())
	default:
		utils.Sugar.Errorf("auth storage error: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50002, "server error")
	}
}
