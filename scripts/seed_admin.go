package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ministerio-jovem/app-frequencia/internal/config"
	"github.com/ministerio-jovem/app-frequencia/internal/logging"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"github.com/ministerio-jovem/app-frequencia/internal/services"
)

// Creates an admin account from SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD.
// Safe to rerun: an existing account with that email is left untouched.
func main() {
	fmt.Println("🌱 Seeding admin account...")

	email := os.Getenv("SEED_ADMIN_EMAIL")
	senha := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || senha == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Initialize MongoDB
	if err := config.InitMongoDB(ctx); err != nil {
		log.Fatalf("Failed to initialize MongoDB: %v", err)
	}
	defer config.DisconnectMongoDB(context.Background())

	cfg := config.AppConfig
	usuarios := services.NewUsuarioService(logging.Logger,
		services.NewMongoUsuarioStore(config.MongoDB.Collection(cfg.UsuarioCollection)),
		services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL),
		nil)

	seeder := &models.Claims{Role: models.RoleAdmin}
	_, usuario, err := usuarios.Registrar(ctx, models.RegistroRequest{
		Email: email,
		Senha: senha,
		Role:  models.RoleAdmin,
	}, seeder)

	var verrs models.ValidationErrors
	switch {
	case errors.Is(err, models.ErrEmailInUse):
		fmt.Printf("⚠️  Account %s already exists, nothing to do\n", email)
		return
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			fmt.Printf("  ✗ %s: %s\n", fe.Field, fe.Message)
		}
		log.Fatal("Invalid admin account data")
	case err != nil:
		log.Fatalf("Failed to create admin account: %v", err)
	}

	fmt.Printf("✅ Admin account %s created (id %s)\n", usuario.Email, usuario.ID.Hex())
}
