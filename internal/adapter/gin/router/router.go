package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"user-contact-service/api/swagger"
	"user-contact-service/internal/adapter/gin/handler"
	"user-contact-service/internal/adapter/gin/middleware"
	"user-contact-service/internal/adapter/ratelimit"
)

// Options configures SetupRouter.
type Options struct {
	ServiceName string
	RateLimiter ratelimit.Limiter // nil disables rate limiting
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(userHandler *handler.UserHandler, opts Options, log *zap.Logger) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		})
	})

	swaggerUI := httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))
	router.GET("/swagger/*any", func(c *gin.Context) {
		if c.Param("any") == "/doc.json" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", swagger.Doc)
			return
		}
		swaggerUI(c.Writer, c.Request)
	})

	users := router.Group("/users", middleware.RateLimiter(opts.RateLimiter, log))
	{
		users.GET("", userHandler.GetUser)
		users.GET("/find", userHandler.FindUsers)
		users.GET("/list", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.PUT("", userHandler.UpdateUser)
		users.DELETE("", userHandler.DeleteUser)
	}

	router.NoRoute(func(c *gin.Context) {
		handler.WriteProblem(c, http.StatusNotFound, "")
	})

	return router
}
