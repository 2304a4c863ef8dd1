package folio

import (
	"errors"
	"time"
)

// SiteConfig holds all configuration for a folio site. Fields carry env
// tags so cmd/folio can fill it with caarlos0/env; library callers can set
// it directly.
type SiteConfig struct {
	Name        string `env:"SITE_NAME"`        // Site name (default "Folio")
	URL         string `env:"SITE_URL"`         // Canonical URL (default "http://localhost:3000")
	Description string `env:"SITE_DESCRIPTION"` // Fallback description for RSS and meta tags
	Author      string `env:"SITE_AUTHOR"`      // Author name for JSON-LD

	Addr         string `env:"ADDR"`          // Listen address (default ":3000")
	DatabasePath string `env:"DATABASE_PATH"` // SQLite path (default "data/folio.db")

	// Exactly one of AdminPassword and AdminPasswordHash must be set.
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"` // argon2id, see `folio hash-password`
	AdminID           string `env:"ADMIN_ID"`            // Author id stamped on content (default "admin")

	SessionSecret string `env:"SESSION_SECRET"` // Required, at least 32 bytes
	CookieSecure  bool   `env:"COOKIE_SECURE"`  // Set true for HTTPS

	CacheTTL time.Duration `env:"CACHE_TTL"` // Published content cache TTL (default 5m)

	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS"` // Failed logins allowed per window (default 5)
	LoginWindow      time.Duration `env:"LOGIN_WINDOW"`       // default 1m

	ContactPerHour int `env:"CONTACT_PER_HOUR"` // Contact submissions per IP per hour (default 5)
}

const minSessionSecret = 32

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Folio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.AdminID == "" {
		c.AdminID = "admin"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.LoginMaxAttempts == 0 {
		c.LoginMaxAttempts = 5
	}
	if c.LoginWindow == 0 {
		c.LoginWindow = time.Minute
	}
	if c.ContactPerHour == 0 {
		c.ContactPerHour = 5
	}
}

func (c *SiteConfig) validate() error {
	switch {
	case c.AdminPassword == "" && c.AdminPasswordHash == "":
		return errors.New("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	case c.AdminPassword != "" && c.AdminPasswordHash != "":
		return errors.New("set only one of ADMIN_PASSWORD and ADMIN_PASSWORD_HASH")
	case c.SessionSecret == "":
		return errors.New("SESSION_SECRET is required")
	case len(c.SessionSecret) < minSessionSecret:
		return errors.New("SESSION_SECRET must be at least 32 bytes")
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory served under /public (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithViews replaces the page components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
