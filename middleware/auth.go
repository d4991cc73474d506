package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vulnlab/socialsite/session"
	"github.com/vulnlab/socialsite/utils"
)

// ContextPrincipalKey is the key used to store the session principal in Gin context.
const ContextPrincipalKey = "principal"

// AuthRequired ensures the request carries an authenticated session principal.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		p := session.GetPrincipal(ctx)
		if p == nil {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "you must be logged in")
			ctx.Abort()
			return
		}
		ctx.Set(ContextPrincipalKey, *p)
		ctx.Next()
	}
}

// AdminRequired ensures the session principal exists and carries the admin flag.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		p := session.GetPrincipal(ctx)
		if p == nil {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "you must be logged in")
			ctx.Abort()
			return
		}
		if !p.IsAdmin {
			utils.Error(ctx, http.StatusForbidden, 40302, "access denied")
			ctx.Abort()
			return
		}
		ctx.Set(ContextPrincipalKey, *p)
		ctx.Next()
	}
}

// PrincipalFrom returns the principal placed in the context by the guards.
func PrincipalFrom(ctx *gin.Context) (session.Principal, bool) {
	v, ok := ctx.Get(ContextPrincipalKey)
	if !ok {
		return session.Principal{}, false
	}
	p, ok := v.(session.Principal)
	return p, ok
}
