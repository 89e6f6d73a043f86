package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"gamecrowd/backend/internal/handler"
	"gamecrowd/backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOptions 汇总构建路由所需的全部 handler。
type RouterOptions struct {
	CategoryHandler     *handler.CategoryHandler
	PublisherHandler    *handler.PublisherHandler
	GameHandler         *handler.GameHandler
	StretchGoalHandler  *handler.StretchGoalHandler
	SubscriptionHandler *handler.SubscriptionHandler
}

// NewRouter 构建应用的 Gin Engine，汇总所有 REST 接口与公共中间件配置。
func NewRouter(opts RouterOptions) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// gin 中间件配置
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestMetrics())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  false,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
		AllowOriginFunc: func(origin string) bool {
			if origin == "" {
				return false
			}
			if strings.HasPrefix(origin, "http://localhost:") {
				return true
			}
			if strings.HasPrefix(origin, "http://127.0.0.1:") {
				return true
			}
			return false
		},
	}))
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: gin.LogFormatter(func(params gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s\" %d %s\n",
				params.ClientIP,
				params.TimeStamp.Format(time.RFC3339),
				params.Method,
				params.Path,
				params.StatusCode,
				params.Latency,
			)
		}),
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		if opts.CategoryHandler != nil {
			categories := api.Group("/categories")
			categories.GET("", opts.CategoryHandler.List)
			categories.GET("/:id", opts.CategoryHandler.Get)
		}

		if opts.PublisherHandler != nil {
			publishers := api.Group("/publishers")
			publishers.GET("", opts.PublisherHandler.List)
			publishers.GET("/:id", opts.PublisherHandler.Get)
		}

		games := api.Group("/games")
		if opts.GameHandler != nil {
			games.GET("", opts.GameHandler.List)
			games.POST("", opts.GameHandler.Create)
			games.GET("/:id", opts.GameHandler.Get)
			games.PUT("/:id", opts.GameHandler.Update)
			games.DELETE("/:id", opts.GameHandler.Delete)
		}

		// 解锁目标与订阅的创建/列表都挂在父级游戏路径下，
		// 单资源操作用独立的顶层路径。
		if opts.StretchGoalHandler != nil {
			games.GET("/:id/stretch-goals", opts.StretchGoalHandler.ListForGame)
			games.POST("/:id/stretch-goals", opts.StretchGoalHandler.Create)

			goals := api.Group("/stretch-goals")
			goals.GET("/:id", opts.StretchGoalHandler.Get)
			goals.PUT("/:id", opts.StretchGoalHandler.Update)
			goals.DELETE("/:id", opts.StretchGoalHandler.Delete)
		}

		if opts.SubscriptionHandler != nil {
			games.GET("/:id/subscriptions", opts.SubscriptionHandler.ListForGame)
			games.POST("/:id/subscriptions", opts.SubscriptionHandler.Create)

			subs := api.Group("/subscriptions")
			subs.GET("/:id", opts.SubscriptionHandler.Get)
			subs.PATCH("/:id", opts.SubscriptionHandler.Update)
			subs.DELETE("/:id", opts.SubscriptionHandler.Delete)
		}
	}

	return r
}
