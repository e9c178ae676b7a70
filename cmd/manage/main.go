// Package main is the TravelXplore administration CLI.
//
// Usage:
//
//	manage migrate up|down|status
//	manage createsuperuser -username NAME -email EMAIL -password PASS
//	manage clearsessions
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/travelxplore/site/internal/config"
	"github.com/travelxplore/site/internal/media"
	"github.com/travelxplore/site/internal/repo"
	"github.com/travelxplore/site/internal/service"
	"github.com/travelxplore/site/internal/telemetry"
	"github.com/travelxplore/site/migrations"
)

var errUsage = errors.New("usage: manage migrate up|down|status | createsuperuser -username NAME -email EMAIL -password PASS | clearsessions")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger, err := telemetry.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	switch args[0] {
	case "migrate":
		sqlDB := stdlib.OpenDBFromPool(pool)
		defer sqlDB.Close()
		return migrate(ctx, sqlDB, args[1:], out)

	case "createsuperuser":
		fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
		fs.SetOutput(out)
		username := fs.String("username", "", "login name")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *username == "" || *email == "" || *password == "" {
			fs.Usage()
			return errUsage
		}

		accounts := service.NewAccountService(
			repo.NewUserRepo(pool), repo.NewProfileRepo(pool), repo.NewTransactor(pool),
			media.NewStore(cfg.Media.Root, cfg.Media.URL),
		)
		u, err := accounts.CreateSuperuser(ctx, *username, *email, *password)
		if err != nil {
			return err
		}
		logger.Info("superuser created", zap.Int64("user_id", u.ID), zap.String("username", u.Username))
		fmt.Fprintf(out, "Superuser %q created.\n", u.Username)
		return nil

	case "clearsessions":
		n, err := repo.NewSessionStore(pool).DeleteExpired(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Removed %d expired sessions.\n", n)
		return nil
	}
	return errUsage
}

func migrate(ctx context.Context, db *sql.DB, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errUsage
	}
	p, err := migrations.NewProvider(db)
	if err != nil {
		return err
	}

	switch args[0] {
	case "up":
		results, err := p.Up(ctx)
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		for _, r := range results {
			fmt.Fprintf(out, "applied %s (%s)\n", r.Source.Path, r.Duration)
		}
		if len(results) == 0 {
			fmt.Fprintln(out, "no pending migrations")
		}
		return nil

	case "down":
		r, err := p.Down(ctx)
		if err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		fmt.Fprintf(out, "rolled back %s\n", r.Source.Path)
		return nil

	case "status":
		statuses, err := p.Status(ctx)
		if err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}
		for _, s := range statuses {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(out, "%-40s %s\n", s.Source.Path, applied)
		}
		return nil
	}
	return errUsage
}
