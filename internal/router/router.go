package router

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/blues/crowdhub/internal/auth"
	"github.com/blues/crowdhub/internal/config"
	"github.com/blues/crowdhub/internal/database"
	"github.com/blues/crowdhub/internal/handler"
	"github.com/blues/crowdhub/internal/logger"
	"github.com/blues/crowdhub/internal/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	handler.RegisterValidators()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(requestId())
	r.Use(accessLog())
	r.Use(corsMiddleware(cfg.Server.AllowedOrigins))
	r.Use(auth.Session(tokens))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			logger.Error("Health check failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"service": "crowdhub",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "crowdhub",
		})
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/campaigns")
	})

	authHandler := handler.NewAuthHandler(db, tokens)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)

	// 页面路由
	campaignHandler := handler.NewCampaignHandler(db)
	campaigns := r.Group("/campaigns")
	{
		campaigns.GET("", campaignHandler.Index)
		campaigns.POST("", campaignHandler.Store)
		campaigns.GET("/create", campaignHandler.Create)
		campaigns.GET("/:id", campaignHandler.Show)
		campaigns.POST("/:id", campaignHandler.Update)
		campaigns.PUT("/:id", campaignHandler.Update)
		campaigns.GET("/:id/edit", campaignHandler.Edit)
	}

	// API版本组
	v1 := r.Group("/api/v1")
	{
		campaignAPIHandler := handler.NewCampaignAPIHandler(db)
		apiCampaigns := v1.Group("/campaigns")
		{
			apiCampaigns.GET("", campaignAPIHandler.GetCampaigns)
			apiCampaigns.POST("", campaignAPIHandler.CreateCampaign)
			apiCampaigns.GET("/:id", campaignAPIHandler.GetCampaign)
			apiCampaigns.PUT("/:id", campaignAPIHandler.UpdateCampaign)
		}

		categoryHandler := handler.NewCategoryHandler(db)
		v1.GET("/categories", categoryHandler.GetCategories)

		v1.POST("/auth/login", authHandler.APILogin)
	}

	return r, nil
}

// Addr 监听地址
func Addr(cfg *config.Config) string {
	return fmt.Sprintf(":%s", cfg.Server.Port)
}

// CORS中间件
func corsMiddleware(origins []string) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", requestIdHeader},
		ExposeHeaders:    []string{requestIdHeader, "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = origins
	}
	return cors.New(corsCfg)
}
