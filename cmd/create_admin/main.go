// create_admin da de alta el super administrador inicial.
//
// Uso: ADMIN_EMAIL=... ADMIN_PASSWORD=... go run ./cmd/create_admin
// Si el email ya existe no hace nada.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/jhoicas/sucursales-api/internal/application/auth"
	"github.com/jhoicas/sucursales-api/internal/application/dto"
	"github.com/jhoicas/sucursales-api/internal/domain"
	"github.com/jhoicas/sucursales-api/internal/domain/entity"
	"github.com/jhoicas/sucursales-api/internal/infrastructure/postgres"
	"github.com/jhoicas/sucursales-api/pkg/config"
	"github.com/jhoicas/sucursales-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Error().Msg("ADMIN_EMAIL y ADMIN_PASSWORD son obligatorios")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.ApplySchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("aplicar esquema")
		}
	}

	authUC := auth.NewAuthUseCase(
		postgres.NewUserRepository(pool),
		postgres.NewBranchRepository(pool),
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
	)
	// Actor de arranque: todavía no existe ningún usuario que firme el alta.
	bootstrap := entity.Actor{Role: entity.RoleSuperAdmin}
	user, err := authUC.RegisterUser(ctx, bootstrap, dto.RegisterRequest{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
		Role:     entity.RoleSuperAdmin,
	})
	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		log.Info().Str("email", cfg.Admin.Email).Msg("el administrador ya existe")
	case err != nil:
		log.Fatal().Err(err).Msg("crear administrador")
	default:
		log.Info().Str("id", user.ID).Str("email", user.Email).Msg("administrador creado")
	}
}
