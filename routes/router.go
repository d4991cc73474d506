package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vulnlab/socialsite/config"
	"github.com/vulnlab/socialsite/controllers"
	"github.com/vulnlab/socialsite/middleware"
	"github.com/vulnlab/socialsite/services"
	"github.com/vulnlab/socialsite/utils"
)

const sessionCookieName = "socialsite_session"

// SetupRouter wires routes, middlewares, services and controllers.
func SetupRouter(db *gorm.DB, cfg config.AppConfig) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAgeSec,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: sameSiteFrom(cfg.CookieSameSite),
	})
	r.Use(sessions.Sessions(sessionCookieName, store))

	sanitizer := utils.NewSanitizer(cfg.Insecure)
	authService := services.NewAuthService(db, cfg)
	postService := services.NewPostService(db, sanitizer)

	authController := controllers.NewAuthController(authService)
	postController := controllers.NewPostController(postService)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok", "insecure": cfg.Insecure})
	})

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
	authGroup.POST("/signup", authController.Signup)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", authController.Logout)
	authGroup.POST("/admin", authController.Elevate)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	api.GET("/posts", postController.List)
	api.GET("/posts/search", postController.Search)
	api.POST("/posts", middleware.AuthRequired(), postController.Create)

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AdminRequired())
	adminGroup.GET("/posts", postController.AdminList)

	// Unauthenticated data dump, kept on purpose as part of the demo's
	// attack surface.
	r.GET("/debug/posts", postController.Debug)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}

func sameSiteFrom(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
