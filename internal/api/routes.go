package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(handler *Handler, logger logrus.FieldLogger) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware())

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/categories", handler.ListCategories)
		v1.GET("/categories/:code/products", handler.GetProducts)
	}

	return router
}
