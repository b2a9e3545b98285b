package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ministerio-jovem/app-frequencia/internal/config"
	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"github.com/ministerio-jovem/app-frequencia/internal/observability"
	"github.com/ministerio-jovem/app-frequencia/internal/utils"
	"go.uber.org/zap"

	_ "github.com/ministerio-jovem/app-frequencia/docs"
)

// @title           Frequência API
// @version         1.0
// @description     API de cadastro de membros e controle de presença do ministério jovem. Registra a presença diária de cada membro, com no máximo uma marcação por dia, e protege as operações de escrita com autenticação JWT.

// @contact.name   Suporte
// @contact.email  suporte@ministeriojovem.org

// @host      localhost:5000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name auth
// @tag.description Autenticação e contas de operadores

// @tag.name membros
// @tag.description Cadastro de membros

// @tag.name presencas
// @tag.description Registro de presenças

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer logging.Logger.Sync()

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.AppConfig
	models.DefaultLocation = cfg.Location

	// Initialize observability
	if err := observability.InitTracer(context.Background()); err != nil {
		logging.Logger.Error("failed to initialize tracer, continuing without tracing", zap.Error(err))
	}
	defer observability.ShutdownTracer(context.Background())

	// Initialize database connections
	if err := config.InitMongoDB(context.Background()); err != nil {
		logging.Logger.Fatal("failed to initialize MongoDB", zap.Error(err))
	}
	config.InitRedis()

	// Audit logs are written in the background
	auditWorker := utils.InitAuditWorker(
		utils.MongoAuditWriter(config.MongoDB.Collection(cfg.AuditLogCollection)),
		cfg.AuditWorkerCount,
		cfg.AuditBufferSize,
	)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	app := newApplication(cfg, config.MongoDB, config.Redis, logging.Logger)
	router := setupRouter(cfg, app)

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("timezone", cfg.Timezone),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
	}

	auditWorker.Stop()
	app.limiter.Stop()
	if config.Redis != nil {
		_ = config.Redis.Close()
	}
	if err := config.DisconnectMongoDB(ctx); err != nil {
		logging.Logger.Error("failed to disconnect MongoDB", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
