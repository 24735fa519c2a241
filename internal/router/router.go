package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/tomato/backend/config"
	"github.com/pageza/tomato/backend/internal/api"
	"github.com/pageza/tomato/backend/internal/metrics"
	"github.com/pageza/tomato/backend/internal/middleware"
	"github.com/pageza/tomato/backend/internal/service"
)

// Dependencies are the wired components the routes are served from.
// Metrics, DB, Redis and Orders are optional.
type Dependencies struct {
	Config  *config.Config
	Log     *logrus.Logger
	Metrics *metrics.Metrics
	DB      *gorm.DB
	Redis   redis.UniversalClient

	Recipes service.IRecipeService
	Reviews service.IReviewService
	Menu    service.IMenuService
	Orders  service.IOrderService
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(middleware.NotFound)
	router.NoMethod(middleware.MethodNotAllowed)

	router.Use(middleware.Recovery(deps.Log))
	router.Use(middleware.RequestLogger(deps.Log))
	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}
	router.Use(middleware.CORS(deps.Config.CORSOrigins))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Tomato API is running")
	})
	router.GET("/health", api.HealthCheck)
	router.GET("/api/health", api.NewHealthHandler(deps.DB, deps.Redis).Status)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	if deps.Config.ImageStorage == config.StorageLocal {
		router.Static(deps.Config.UploadsPrefix, deps.Config.UploadDir)
	}

	v1 := router.Group("/api")
	api.NewRecipeHandler(deps.Recipes, deps.Log).RegisterRoutes(v1)
	api.NewReviewHandler(deps.Reviews, deps.Log).RegisterRoutes(v1)
	api.NewOrderHandler(deps.Menu, deps.Orders, deps.Log).RegisterRoutes(v1)

	return router
}
