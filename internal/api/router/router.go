package router

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/handlers"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/social-feed/config"
	"github.com/d60-Lab/social-feed/docs"
	"github.com/d60-Lab/social-feed/internal/api/handler"
	"github.com/d60-Lab/social-feed/internal/api/middleware"
)

// Setup 注册中间件与路由
func Setup(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()

	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	if sentry.CurrentHub().Client() != nil {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))

	r.GET("/healthz", h.Health)
	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.Auth(cfg.JWT)
	v1 := r.Group("/api/v1")
	{
		a := v1.Group("/auth")
		a.POST("/register", h.Register)
		a.POST("/login", h.Login)

		posts := v1.Group("/posts")
		posts.GET("", h.ListPosts)
		posts.GET("/feed", h.ListTopPosts)
		posts.GET("/:id", h.GetPost)
		posts.POST("", h.CreatePost)
		posts.PUT("", auth, h.UpsertPost)
		posts.DELETE("/:id", auth, h.DeletePost)
		posts.PUT("/:id/like/:userId", auth, h.LikePost)
		posts.PUT("/:id/unlike/:userId", auth, h.UnlikePost)
		posts.PUT("/:id/text", auth, h.EditPostText)
		posts.PUT("/:id/image", auth, h.EditPostImage)
		posts.POST("/:id/comments", auth, h.CreateComment)
		posts.DELETE("/:id/comments/:commentId", auth, h.DeleteComment)

		users := v1.Group("/users")
		users.GET("", h.ListUsers)
		users.GET("/by-username/:username", h.GetUserByUsername)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id/password", auth, h.EditPassword)
		users.PUT("/:id/email", auth, h.EditEmail)
		users.PUT("/:id/username", auth, h.EditUsername)
		users.PUT("/:id/image", auth, h.EditImage)
		users.PUT("/:id/follow", auth, h.Follow)
		users.PUT("/:id/unfollow", auth, h.Unfollow)
		users.GET("/:id/following", h.ListFollowing)
		users.GET("/:id/followers", h.ListFollowers)
		users.GET("/:id/feed", h.GetFeed)
		users.GET("/:id/posts", h.GetUserPosts)
	}
	return r
}

// WithCORS 在 gin 之外包一层 CORS，跨域策略完全由配置决定
func WithCORS(cfg config.CORSConfig, next http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins(cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID}),
		handlers.ExposedHeaders([]string{middleware.HeaderRequestID}),
		handlers.AllowCredentials(),
		handlers.MaxAge(300),
	)(next)
}
