package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/wanjala/cdf-tracker/internal/auth"
	"github.com/wanjala/cdf-tracker/internal/config"
	"github.com/wanjala/cdf-tracker/internal/db"
	"github.com/wanjala/cdf-tracker/internal/logger"
	"github.com/wanjala/cdf-tracker/internal/model"
	"github.com/wanjala/cdf-tracker/internal/repository"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "usage: create-admin -username admin -password <password>")
		os.Exit(2)
	}
	if len(*password) < 6 {
		fmt.Fprintln(os.Stderr, "password must be at least 6 characters")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	users := repository.NewUserRepository(database)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	existing, err := users.GetByUsername(ctx, *username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatal().Err(err).Msg("lookup failed")
	}
	if existing != nil && err == nil {
		log.Info().Str("username", *username).Msg("admin already exists, nothing to do")
		return
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash password")
	}

	user, err := users.Create(ctx, model.User{
		Username:     *username,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Status:       model.UserActive,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create admin")
	}

	log.Info().Int64("id", user.ID).Str("username", user.Username).Msg("admin user created")
}
