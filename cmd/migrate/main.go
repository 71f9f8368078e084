package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/term"

	"github.com/freightdesk/freightdesk/internal/app"
	"github.com/freightdesk/freightdesk/internal/platform/db"
	"github.com/freightdesk/freightdesk/internal/rbac"
	"github.com/freightdesk/freightdesk/internal/users"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	dir := flag.String("path", cfg.MigrationsPath, "directory holding the migration files")
	steps := flag.Int("steps", 1, "migrations to roll back with down")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	if flag.Arg(0) == "admin" {
		if err := createAdmin(cfg, flag.Args()[1:]); err != nil {
			logger.Error("create admin", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	m, err := db.NewMigrator(cfg.PGDSN, *dir)
	if err != nil {
		logger.Error("open migrations", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := m.Close(); err != nil {
			logger.Warn("close migrator", slog.Any("error", err))
		}
	}()

	if err := run(m, flag.Args(), *steps); err != nil {
		logger.Error("migrate", slog.String("command", flag.Arg(0)), slog.Any("error", err))
		os.Exit(1)
	}
}

func run(m *db.Migrator, args []string, steps int) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil {
			return err
		}
		fmt.Println("migrated up")
	case "down":
		if err := m.Down(steps); err != nil {
			return err
		}
		fmt.Printf("rolled back %d migration(s)\n", steps)
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Printf("version %d dirty=%t\n", v, dirty)
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("force needs a version")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := m.Force(v); err != nil {
			return err
		}
		fmt.Printf("forced version %d\n", v)
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
	return nil
}

// createAdmin bootstraps the first administrator on an empty database.
func createAdmin(cfg *app.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("admin needs an email and a name")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool, err := db.New(ctx, cfg.PGDSN, db.Options{MaxConns: 1, ApplicationName: "freightdesk-migrate"})
	if err != nil {
		return err
	}
	defer pool.Close()

	u, err := users.NewService(users.NewRepository(pool)).Create(ctx, users.User{
		Email:    args[0],
		Name:     args[1],
		Role:     rbac.RoleAdmin,
		Status:   users.StatusActive,
		Password: string(password),
	})
	if err != nil {
		return err
	}
	fmt.Printf("created admin %s (id %d)\n", u.Email, u.ID)
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate [flags] up|down|version|force <version>|admin <email> <name>")
	flag.PrintDefaults()
}
