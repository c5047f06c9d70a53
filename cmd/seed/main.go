// Command seed aplica las migraciones y crea el usuario propietario inicial.
//
// Variables: SEED_OWNER_USERNAME, SEED_OWNER_PASSWORD, SEED_OWNER_NAME (opcional)
// además de la configuración de base de datos habitual.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/jhoicas/Manufactura-api/internal/application/activity"
	"github.com/jhoicas/Manufactura-api/internal/application/auth"
	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Manufactura-api/pkg/config"
	"github.com/jhoicas/Manufactura-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	username := os.Getenv("SEED_OWNER_USERNAME")
	password := os.Getenv("SEED_OWNER_PASSWORD")
	if username == "" || password == "" {
		log.Fatal().Msg("SEED_OWNER_USERNAME y SEED_OWNER_PASSWORD son obligatorios")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	uc := auth.NewAuthUseCase(
		postgres.NewUserRepository(pool),
		postgres.NewActivityLogRepository(pool),
		activity.NewLogger(log),
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
	)
	user, err := uc.RegisterUser(ctx, "", dto.RegisterUserRequest{
		Username: username,
		Password: password,
		Name:     os.Getenv("SEED_OWNER_NAME"),
		Role:     entity.RoleOwner,
	})
	switch {
	case errors.Is(err, domain.ErrUsernameAlreadyExists):
		log.Info().Str("username", username).Msg("el propietario ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear propietario")
	default:
		log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("propietario creado")
	}
}
