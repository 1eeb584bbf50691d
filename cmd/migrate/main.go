package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/yourusername/quizpang-api/internal/config"
	"github.com/yourusername/quizpang-api/pkg/logger"
)

// Ручное управление схемой: up, down N, force V, version
func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config/config.yaml"), "path to config file")
	source := flag.String("source", "", "migrations source url (default: database.migrations_path)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: migrate [flags] up | down N | force V | version\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *source == "" {
		*source = cfg.Database.MigrationsPath
	}

	appLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		appLogger.Fatal("Database is not reachable", zap.Error(err))
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		appLogger.Fatal("Failed to create migrate driver", zap.Error(err))
	}

	m, err := migrate.NewWithDatabaseInstance(*source, "postgres", driver)
	if err != nil {
		appLogger.Fatal("Failed to create migrator", zap.Error(err), zap.String("source", *source))
	}

	if err := run(m, flag.Args()); err != nil {
		appLogger.Fatal("Migration command failed", zap.Error(err), zap.Strings("args", flag.Args()))
	}
	appLogger.Info("Migration command finished", zap.Strings("args", flag.Args()))
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		return ignoreNoChange(m.Up())
	case "down":
		steps, err := intArg(args, 1)
		if err != nil {
			return err
		}
		return ignoreNoChange(m.Steps(-steps))
	case "force":
		// Снимает флаг dirty после упавшей миграции
		version, err := intArg(args, 0)
		if err != nil {
			return err
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("failed to force version: %w", err)
		}
		fmt.Printf("Version forced to %d\n", version)
		return nil
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("No migrations applied")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("Version %d (dirty=%t)\n", version, dirty)
		return nil
	}
	return fmt.Errorf("unknown command %q", args[0])
}

// intArg читает числовой аргумент команды. def=0 означает, что аргумент обязателен.
func intArg(args []string, def int) (int, error) {
	if len(args) < 2 {
		if def == 0 {
			return 0, fmt.Errorf("%s requires a numeric argument", args[0])
		}
		return def, nil
	}
	var n int
	if _, err := fmt.Sscanf(args[1], "%d", &n); err != nil || n < 0 {
		return 0, fmt.Errorf("invalid argument %q for %s", args[1], args[0])
	}
	return n, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("No change")
		return nil
	}
	return err
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
