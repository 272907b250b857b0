package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"vidshelf/internal/config"
	"vidshelf/internal/db"
	"vidshelf/internal/model"
	"vidshelf/internal/repository"
)

const bcryptCost = 10

// Creates the initial superadmin account. Registration is gated behind an
// admin role, so a fresh database needs one account seeded out of band.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	username := os.Getenv("SEED_USERNAME")
	password := os.Getenv("SEED_PASSWORD")
	if username == "" || password == "" {
		log.Fatal().Msg("SEED_USERNAME and SEED_PASSWORD are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	gormDB, err := db.NewMySQL(cfg.DB.DSN, cfg.DB.MaxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate failed")
	}

	users := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	existing, err := users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("failed to check existing user")
	}
	if existing != nil {
		log.Info().Str("username", username).Msg("superadmin already exists, nothing to do")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hashed),
		Role:         model.RoleSuperadmin,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("failed to create superadmin")
	}

	log.Info().Uint("id", user.ID).Str("username", username).Msg("superadmin created")
}
