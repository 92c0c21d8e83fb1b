// Command useradd provisions a staff account for the shipping service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RaikyD/wb-shipping-service/internal/auth"
	"github.com/RaikyD/wb-shipping-service/internal/config"
	"github.com/RaikyD/wb-shipping-service/internal/logger"
	"github.com/RaikyD/wb-shipping-service/internal/migrate"
	"github.com/RaikyD/wb-shipping-service/internal/repository"
)

func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: useradd -email <email> -password <password>")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger.Init(cfg.PRODUCTION)
	defer logger.Sync()

	if err := migrate.Up(cfg.DB_STRING); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DB_STRING)
	if err != nil {
		logger.Error("pgxpool new failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	svc := auth.NewService(repository.NewUserRepository(pool), cfg.SESSION_TTL)
	u, err := svc.Register(ctx, *email, *password)
	if errors.Is(err, repository.ErrUserExists) {
		fmt.Fprintf(os.Stderr, "user %s already exists\n", *email)
		os.Exit(1)
	}
	if err != nil {
		logger.Error("create user failed", "err", err)
		os.Exit(1)
	}
	fmt.Printf("created user %s (%s)\n", u.Email, u.ID)
}
