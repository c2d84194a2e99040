package router

import (
	"github.com/gin-gonic/gin"

	"github.com/serenitybot/serenity/internal/config"
	"github.com/serenitybot/serenity/internal/handler"
	"github.com/serenitybot/serenity/internal/middleware"
	"github.com/serenitybot/serenity/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.BodyLimitMiddleware(cfg.Server.MaxBodyBytes))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// 认证
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/profile", middleware.RequireAuth(svc.Auth), h.Auth.Profile)
		authGroup.POST("/logout", middleware.RequireAuth(svc.Auth), h.Auth.Logout)
	}

	// 聊天
	chatGroup := api.Group("/chat", middleware.RequireAuth(svc.Auth))
	{
		chatGroup.POST("/message", h.Chat.SendMessage)
		chatGroup.GET("", h.Chat.ListChats)
		chatGroup.GET("/:id", h.Chat.GetChat)
		chatGroup.DELETE("/:id", h.Chat.DeleteChat)

		chatGroup.POST("/analyze-mood", h.Chat.AnalyzeMood)
		chatGroup.POST("/analyze-voice", h.Chat.AnalyzeVoice)
		chatGroup.POST("/analyze-face", h.Chat.AnalyzeFace)
		chatGroup.POST("/analyze-emotion", h.Chat.AnalyzeEmotion)

		chatGroup.POST("/analyze-thought", h.Chat.AnalyzeThought)
		chatGroup.POST("/reframe-thought", h.Chat.ReframeThought)
	}

	// 社区
	communityGroup := api.Group("/community", middleware.RequireAuth(svc.Auth))
	{
		communityGroup.POST("/posts", h.Community.CreatePost)
		communityGroup.GET("/posts", h.Community.ListPosts)
		communityGroup.GET("/posts/:id", h.Community.GetPost)
		communityGroup.POST("/posts/:id/comments", h.Community.AddComment)
		communityGroup.PUT("/posts/:id/like", h.Community.LikePost)
	}

	return r
}
