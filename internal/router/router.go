package router

import (
	"time"

	"github.com/petits-moulins/api/internal/config"
	adminhandlers "github.com/petits-moulins/api/internal/http/handlers/admin"
	publichandlers "github.com/petits-moulins/api/internal/http/handlers/public"
	"github.com/petits-moulins/api/internal/logger"
	"github.com/petits-moulins/api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	sendVerificationRule := RateLimitRule{
		Prefix:        "rate:send_verification",
		WindowSeconds: cfg.Security.VerifyRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.VerifyRateLimit.MaxRequests,
		Message:       "Trop de tentatives. Réessayez dans 15 minutes.",
	}
	limiter := NewMemoryRateLimiter()

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{
			"message": "API Garderie Les Petits Moulins",
			"status":  "OK",
		})
	})
	r.GET("/api/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := r.Group("/api")
	{
		// 认证接口
		auth := api.Group("/auth")
		{
			auth.POST("/send-verification",
				RateLimitMiddleware(limiter, sendVerificationRule, KeyByIP),
				publicHandler.SendVerification)
			auth.POST("/verify-code", publicHandler.VerifyCode)
		}

		// 家长接口（需会话）
		parent := api.Group("/parent")
		parent.Use(ParentJWTAuthMiddleware(cfg.JWT.SecretKey))
		{
			parent.GET("/profile", publicHandler.GetProfile)
			parent.GET("/my-forms", publicHandler.GetMyForms)
		}

		// 公开接口
		api.GET("/groups", publicHandler.GetGroups)
		api.GET("/educators", publicHandler.GetEducators)
		api.GET("/captcha/image", publicHandler.GetCaptchaChallenge)

		// 同意书接口（需会话，提交人取自会话身份）
		forms := api.Group("/forms")
		forms.Use(ParentJWTAuthMiddleware(cfg.JWT.SecretKey))
		{
			forms.POST("/submit", publicHandler.SubmitForm)
			forms.GET("/:id", publicHandler.GetForm)
		}

		// 管理接口（需会话）
		admin := api.Group("/admin")
		admin.Use(ParentJWTAuthMiddleware(cfg.JWT.SecretKey))
		{
			admin.GET("/parents", adminHandler.GetParents)
			admin.GET("/parents/:id", adminHandler.GetParent)
			admin.POST("/parents", adminHandler.CreateParent)
			admin.PUT("/parents/:id", adminHandler.UpdateParent)
			admin.DELETE("/parents/:id", adminHandler.DeleteParent)

			admin.GET("/educators", adminHandler.GetEducators)
			admin.GET("/educators/:id", adminHandler.GetEducator)
			admin.POST("/educators", adminHandler.CreateEducator)
			admin.PUT("/educators/:id", adminHandler.UpdateEducator)
			admin.DELETE("/educators/:id", adminHandler.DeleteEducator)

			admin.GET("/groups", adminHandler.GetGroups)
			admin.GET("/groups/:id", adminHandler.GetGroup)
			admin.POST("/groups", adminHandler.CreateGroup)
			admin.PUT("/groups/:id", adminHandler.UpdateGroup)
			admin.DELETE("/groups/:id", adminHandler.DeleteGroup)

			admin.GET("/forms", adminHandler.GetForms)
			admin.GET("/forms/:id", adminHandler.GetFormDetail)
			admin.PUT("/forms/:id/status", adminHandler.UpdateFormStatus)
		}
	}

	return r
}
