// Command folio runs the literary-portfolio site and its maintenance tasks.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/eringen/folio"
	"github.com/eringen/folio/auth"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/store"
	"github.com/eringen/folio/views"
)

// version is set at build time via ldflags.
var version = "dev"

const shutdownTimeout = 10 * time.Second

// CLI is the command-line definition.
type CLI struct {
	LogLevel string `name:"log-level" env:"LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogJSON  bool   `name:"log-json" env:"LOG_JSON" help:"Log as JSON instead of console output"`

	Serve        ServeCmd        `cmd:"" default:"1" help:"Serve the site (default)"`
	Migrate      MigrateCmd      `cmd:"" help:"Apply database migrations and exit"`
	HashPassword HashPasswordCmd `cmd:"" name:"hash-password" help:"Print an argon2id hash for ADMIN_PASSWORD_HASH"`
	Slug         SlugCmd         `cmd:"" help:"Print the slug derived from a title"`
	Version      VersionCmd      `cmd:"" help:"Print the folio version"`
}

// AfterApply configures the global logger once flags are parsed.
func (c *CLI) AfterApply() error {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	if !c.LogJSON {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return nil
}

// ServeCmd runs the HTTP server until SIGINT or SIGTERM.
type ServeCmd struct{}

func (s *ServeCmd) Run() error {
	var cfg folio.SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := folio.New(cfg, views.Default())
	if err := app.Init(ctx); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		_ = app.Close()
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// MigrateCmd applies pending migrations.
type MigrateCmd struct {
	Database string `name:"db" env:"DATABASE_PATH" default:"data/folio.db" help:"SQLite database path"`
}

func (m *MigrateCmd) Run() error {
	ctx := context.Background()
	st, err := store.Open(ctx, m.Database)
	if err != nil {
		return err
	}
	defer st.Close()
	v, err := st.Version(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("db", m.Database).Int64("version", v).Msg("database up to date")
	return nil
}

// HashPasswordCmd hashes a password with the admin login parameters.
type HashPasswordCmd struct {
	Password string `arg:"" help:"Password to hash"`
}

func (h *HashPasswordCmd) Run() error {
	if h.Password == "" {
		return errors.New("password must not be empty")
	}
	hash, err := auth.Hash(h.Password)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

// SlugCmd prints content.Slugify(title).
type SlugCmd struct {
	Title []string `arg:"" help:"Title words"`
}

func (s *SlugCmd) Run() error {
	fmt.Println(content.Slugify(strings.Join(s.Title, " ")))
	return nil
}

// VersionCmd prints the build version.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Printf("folio %s\n", version)
	return nil
}

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("folio"),
		kong.Description("A literary portfolio with an admin CMS."),
		kong.UsageOnError(),
	)
	if err := ctx.Run(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
