package database

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
)

type DB struct {
	*sql.DB
	Driver string
}

type Config struct {
	Driver   string
	URL      string // Full database URL or driver DSN
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewConnection(config Config) (*DB, error) {
	if config.Driver == "" {
		config.Driver = DriverPostgres
	}

	dsn, err := dataSourceName(config)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(config.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	if config.Driver == DriverSQLite {
		// Every sqlite connection to ":memory:" is its own database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, Driver: config.Driver}, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// Rebind rewrites '?' placeholders into the driver's bind syntax
func (db *DB) Rebind(query string) string {
	return Rebind(db.Driver, query)
}

// RunMigrations runs all pending database migrations
func (db *DB) RunMigrations() ([]Migration, error) {
	migrator := NewMigrator(db)
	return migrator.RunMigrations()
}

// GetMigrationStatus shows the current migration status
func (db *DB) GetMigrationStatus() ([]MigrationStatus, error) {
	migrator := NewMigrator(db)
	return migrator.GetMigrationStatus()
}

// Rebind rewrites '?' placeholders into $1, $2... for postgres.
// sqlite and mysql accept '?' as is.
func Rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func dataSourceName(config Config) (string, error) {
	switch config.Driver {
	case DriverPostgres:
		// Use full URL if available, otherwise construct from components
		if config.URL != "" {
			return config.URL, nil
		}
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode), nil

	case DriverSQLite:
		if config.URL == "" {
			return "file:movies.db", nil
		}
		return config.URL, nil

	case DriverMySQL:
		if config.URL != "" {
			cfg, err := mysql.ParseDSN(config.URL)
			if err != nil {
				return "", fmt.Errorf("invalid mysql DSN: %w", err)
			}
			return cfg.FormatDSN(), nil
		}
		cfg := mysql.NewConfig()
		cfg.User = config.User
		cfg.Passwd = config.Password
		cfg.Net = "tcp"
		cfg.Addr = fmt.Sprintf("%s:%d", config.Host, config.Port)
		cfg.DBName = config.DBName
		return cfg.FormatDSN(), nil
	}
	return "", fmt.Errorf("unsupported database driver %q", config.Driver)
}
