package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/devoapp/backend/config"
	"github.com/devoapp/backend/internal/devosync"
	"github.com/devoapp/backend/internal/devotional"
	"github.com/devoapp/backend/internal/lifecycle"
	"github.com/devoapp/backend/internal/middleware"
	"github.com/devoapp/backend/internal/store"
	"github.com/devoapp/backend/internal/team"
	"github.com/devoapp/backend/internal/user"
)

// SetupRoutes builds the engine and wires every endpoint group behind JWT auth.
func SetupRoutes(cfg *config.Config, st store.Store) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if cfg.App.FrontendURL != "" {
		corsCfg.AllowOrigins = []string{cfg.App.FrontendURL}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "devoapp-backend", "status": "ok"})
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	teams := team.NewRegistry(st)
	memberships := user.NewMembershipStore(st)
	devotionals := devotional.NewRegistry(st)
	messages := devotional.NewMessageEngine(st)
	orchestrator := lifecycle.NewOrchestrator(teams, memberships, devotionals)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWT.Secret))

	team.RegisterTeamRoutes(api, team.NewTeamController(teams, orchestrator))
	user.RegisterUserRoutes(api, user.NewUserController(memberships))
	devotional.RegisterDevotionalRoutes(api, devotional.NewDevotionalController(devotionals, messages))
	devosync.RegisterSyncRoutes(api, devosync.NewSyncController(st, memberships))

	return r
}
