package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"movie-ticket-cart/internal/catalog"
	"movie-ticket-cart/internal/database"
	"movie-ticket-cart/internal/models"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// DefaultSessionSecret is only accepted in development
const DefaultSessionSecret = "your-secret-key-change-in-production"

// Catalog sources
const (
	CatalogAuto     = "auto"
	CatalogTMDB     = "tmdb"
	CatalogDatabase = "database"
	CatalogSample   = "sample"
)

type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	Database DatabaseConfig
	TMDB     TMDBConfig
	Pricing  PricingConfig
	Catalog  CatalogConfig
	Limits   LimitsConfig
}

type ServerConfig struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	Host            string        `env:"HOST" envDefault:"localhost"`
	Env             string        `env:"ENV" envDefault:"development"`
	Locale          string        `env:"LOCALE" envDefault:"en-US"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// TrustProxy honours X-Forwarded-For and X-Real-IP; enable only behind a proxy that sets them
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`
}

type SessionConfig struct {
	Secret string `env:"SESSION_SECRET" envDefault:"your-secret-key-change-in-production"`
	Dir    string `env:"SESSION_DIR"`
	MaxAge int    `env:"SESSION_MAX_AGE" envDefault:"86400"`
}

type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER" envDefault:"postgres"`
	URL      string `env:"DATABASE_URL"` // Full database URL or DSN
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	DBName   string `env:"DB_NAME" envDefault:"movie_tickets"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type TMDBConfig struct {
	Token        string        `env:"TMDB_TOKEN"`
	BaseURL      string        `env:"TMDB_BASE_URL" envDefault:"https://api.themoviedb.org/3"`
	ImageBaseURL string        `env:"TMDB_IMAGE_BASE_URL" envDefault:"https://image.tmdb.org/t/p/w500"`
	Language     string        `env:"TMDB_LANGUAGE" envDefault:"en-US"`
	Page         int           `env:"TMDB_PAGE" envDefault:"1"`
	Timeout      time.Duration `env:"TMDB_TIMEOUT" envDefault:"10s"`
}

// PricingConfig holds ticket prices in dollars
type PricingConfig struct {
	Child float64 `env:"TICKET_PRICE_CHILD" envDefault:"8"`
	Adult float64 `env:"TICKET_PRICE_ADULT" envDefault:"12"`
}

type CatalogConfig struct {
	Source   string `env:"CATALOG_SOURCE" envDefault:"auto"`
	PageSize int    `env:"CATALOG_PAGE_SIZE" envDefault:"3"`
}

// LimitsConfig throttles cart mutations per client
type LimitsConfig struct {
	Requests int           `env:"CART_RATE_LIMIT" envDefault:"120"`
	Window   time.Duration `env:"CART_RATE_WINDOW" envDefault:"1m"`
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	return Parse()
}

// Parse reads the configuration from the process environment only
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.Database.URL != "" && cfg.Database.Driver == "postgres" {
		cfg.Database = parseDatabaseURL(cfg.Database)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that env parsing cannot
func (c *Config) Validate() error {
	if _, err := c.PricingTable(); err != nil {
		return fmt.Errorf("invalid ticket prices: %w", err)
	}
	switch c.Catalog.Source {
	case CatalogAuto, CatalogTMDB, CatalogDatabase, CatalogSample:
	default:
		return fmt.Errorf("unknown catalog source %q", c.Catalog.Source)
	}
	if c.Catalog.Source == CatalogTMDB && c.TMDB.Token == "" {
		return fmt.Errorf("catalog source %q requires TMDB_TOKEN", CatalogTMDB)
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("catalog page size must be positive, got %d", c.Catalog.PageSize)
	}
	if !c.IsDevelopment() && (c.Session.Secret == "" || c.Session.Secret == DefaultSessionSecret) {
		return fmt.Errorf("SESSION_SECRET must be set outside development")
	}
	if c.Limits.Requests <= 0 || c.Limits.Window <= 0 {
		return fmt.Errorf("cart rate limit must be positive")
	}
	switch c.Database.Driver {
	case database.DriverPostgres, database.DriverSQLite, database.DriverMySQL:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if _, err := language.Parse(c.Server.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Server.Locale, err)
	}
	return nil
}

// PricingTable converts the configured dollar prices into a pricing table
func (c *Config) PricingTable() (models.PricingTable, error) {
	return models.NewPricingTable(c.Pricing.Child, c.Pricing.Adult)
}

// Language returns the configured display locale
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Server.Locale)
	if err != nil {
		return language.AmericanEnglish
	}
	return tag
}

// CatalogSource resolves "auto" to a concrete source: TMDB when a token is
// configured, the database when a URL is configured, sample data otherwise.
func (c *Config) CatalogSource() string {
	if c.Catalog.Source != CatalogAuto {
		return c.Catalog.Source
	}
	switch {
	case c.TMDB.Token != "":
		return CatalogTMDB
	case c.Database.URL != "":
		return CatalogDatabase
	default:
		return CatalogSample
	}
}

// DBConnection returns the settings database.NewConnection takes
func (c *Config) DBConnection() database.Config {
	return database.Config{
		Driver:   c.Database.Driver,
		URL:      c.Database.URL,
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		User:     c.Database.User,
		Password: c.Database.Password,
		DBName:   c.Database.DBName,
		SSLMode:  c.Database.SSLMode,
	}
}

// TMDBClient returns the settings catalog.NewTMDBClient takes
func (c *Config) TMDBClient() catalog.TMDBConfig {
	return catalog.TMDBConfig{
		Token:    c.TMDB.Token,
		BaseURL:  c.TMDB.BaseURL,
		Language: c.TMDB.Language,
		Page:     c.TMDB.Page,
		Timeout:  c.TMDB.Timeout,
	}
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func parseDatabaseURL(config DatabaseConfig) DatabaseConfig {
	// Parse the URL
	u, err := url.Parse(config.URL)
	if err != nil {
		// If parsing fails, return the URL as-is
		return config
	}

	// Extract components
	config.Host = u.Hostname()
	if u.Port() != "" {
		config.Port, _ = strconv.Atoi(u.Port())
	} else {
		config.Port = 5432 // Default PostgreSQL port
	}

	if u.User != nil {
		config.User = u.User.Username()
		config.Password, _ = u.User.Password()
	}

	// Remove leading slash from path to get database name
	config.DBName = strings.TrimPrefix(u.Path, "/")

	// Parse query parameters for SSL mode
	config.SSLMode = u.Query().Get("sslmode")
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config
}
