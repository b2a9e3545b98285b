package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ministerio-jovem/app-frequencia/internal/config"
	"github.com/ministerio-jovem/app-frequencia/internal/handlers"
	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/middleware"
	"github.com/ministerio-jovem/app-frequencia/internal/redisclient"
	"github.com/ministerio-jovem/app-frequencia/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// application holds the wired services and handlers
type application struct {
	tokens    *services.TokenService
	auth      *handlers.AuthHandlers
	membros   *handlers.MembroHandlers
	presencas *handlers.PresencaHandlers
	health    *handlers.HealthHandlers
	limiter   *services.LoginLimiter
}

// newApplication wires stores, services and handlers. redis may be nil.
func newApplication(cfg *config.Config, db *mongo.Database, redis *redisclient.Client, logger *logging.SafeLogger) *application {
	membroService := services.NewMembroService(logger.Named("membros"),
		services.NewMongoMembroStore(db.Collection(cfg.MembroCollection)))

	presencaService := services.NewPresencaService(logger.Named("presencas"),
		services.NewMongoPresencaStore(db.Collection(cfg.PresencaCollection)),
		membroService, cfg.Location, cfg.ReconcileMaxRetries)

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	limiter := services.NewLoginLimiter(redis, cfg.LoginMaxAttempts, cfg.LoginAttemptWindow, logger.Named("login_limiter"))
	usuarioService := services.NewUsuarioService(logger.Named("usuarios"),
		services.NewMongoUsuarioStore(db.Collection(cfg.UsuarioCollection)), tokens, limiter)

	checks := map[string]handlers.HealthCheckFunc{
		"mongodb": func(ctx context.Context) error {
			return db.Client().Ping(ctx, readpref.Primary())
		},
	}
	if redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redis.Ping(ctx).Err()
		}
	}

	return &application{
		tokens:    tokens,
		auth:      handlers.NewAuthHandlers(logger, usuarioService),
		membros:   handlers.NewMembroHandlers(logger, membroService),
		presencas: handlers.NewPresencaHandlers(logger, presencaService),
		health:    handlers.NewHealthHandlers(logger, checks),
		limiter:   limiter,
	}
}

// corsConfig allows the configured origins; "*" allows any origin
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// setupRouter builds the gin engine with middleware and routes
func setupRouter(cfg *config.Config, app *application) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.New(corsConfig(cfg.CORSAllowedOrigins)),
	)
	if cfg.AuditLogsEnabled {
		router.Use(middleware.AuditMiddleware())
	}

	router.GET("/health", app.health.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requireAuth := middleware.AuthMiddleware(app.tokens)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/login", app.auth.Login)
		auth.POST("/registrar", middleware.OptionalAuth(app.tokens), app.auth.Registrar)
		auth.PUT("/atualizar-usuario/:id", requireAuth, app.auth.AtualizarUsuario)
		auth.DELETE("/deletar-usuario/:id", requireAuth, middleware.RequireAdmin(), app.auth.DeletarUsuario)

		membros := api.Group("/membros")
		membros.GET("", app.membros.ListarMembros)
		membros.GET("/:id", app.membros.BuscarMembro)
		membros.POST("", requireAuth, app.membros.CriarMembro)
		membros.PUT("/:id", requireAuth, app.membros.AtualizarMembro)
		membros.DELETE("/:id", requireAuth, app.membros.ExcluirMembro)
		membros.PUT("/:id/presenca", requireAuth, app.presencas.MarcarPresenca)

		presencas := api.Group("/presencas")
		presencas.GET("", app.presencas.ListarPresencas)
		presencas.GET("/hoje", app.presencas.ListarPresencasHoje)
		presencas.PUT("", app.presencas.SalvarPresencas)
	}

	return router
}
