package database

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the Statcast pitch store. The service never writes to it.
type DB struct {
	*gorm.DB
}

type ConnectionConfig struct {
	DatabaseURL      string
	IsDevelopment    bool
	ReadOnly         bool
	StatementTimeout time.Duration
	MaxIdleConns     int
	MaxOpenConns     int
	ConnMaxLifetime  time.Duration
	ServiceName      string
}

// DefaultConnectionConfig returns pool settings for matchup lookups against the pitch store.
func DefaultConnectionConfig(databaseURL string, isDevelopment bool) ConnectionConfig {
	return ConnectionConfig{
		DatabaseURL:      databaseURL,
		IsDevelopment:    isDevelopment,
		ReadOnly:         true,
		StatementTimeout: 5 * time.Second,
		MaxIdleConns:     5,
		MaxOpenConns:     25,
		ConnMaxLifetime:  time.Hour,
		ServiceName:      "dugout",
	}
}

// NewConnection opens the Statcast store in a read-only session.
func NewConnection(databaseURL string, isDevelopment bool) (*DB, error) {
	return NewConnectionWithConfig(DefaultConnectionConfig(databaseURL, isDevelopment))
}

func NewConnectionWithConfig(config ConnectionConfig) (*DB, error) {
	logLevel := logger.Error
	if config.IsDevelopment {
		logLevel = logger.Info
	}

	dsn, err := SessionDSN(config)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt: true,
		// Queries only; there is nothing for gorm to wrap.
		SkipDefaultTransaction: config.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"service":           config.ServiceName,
		"read_only":         config.ReadOnly,
		"statement_timeout": config.StatementTimeout,
		"max_open_conns":    config.MaxOpenConns,
	}).Info("Statcast store connected")

	return &DB{db}, nil
}

// SessionDSN adds the session runtime parameters to the connection string.
// Parameters already present in the URL are left alone.
func SessionDSN(config ConnectionConfig) (string, error) {
	params := map[string]string{}
	if config.ReadOnly {
		params["default_transaction_read_only"] = "on"
	}
	if config.StatementTimeout > 0 {
		params["statement_timeout"] = fmt.Sprintf("%d", config.StatementTimeout.Milliseconds())
	}
	if len(params) == 0 {
		return config.DatabaseURL, nil
	}

	if strings.HasPrefix(config.DatabaseURL, "postgres://") || strings.HasPrefix(config.DatabaseURL, "postgresql://") {
		u, err := url.Parse(config.DatabaseURL)
		if err != nil {
			return "", fmt.Errorf("invalid database url: %w", err)
		}
		q := u.Query()
		for k, v := range params {
			if q.Get(k) == "" {
				q.Set(k, v)
			}
		}
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	// key=value form
	dsn := strings.TrimSpace(config.DatabaseURL)
	for _, k := range []string{"default_transaction_read_only", "statement_timeout"} {
		v, ok := params[k]
		if !ok || strings.Contains(dsn, k+"=") {
			continue
		}
		if dsn != "" {
			dsn += " "
		}
		dsn += k + "=" + v
	}
	return dsn, nil
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}
