package database

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConnectionConfig(t *testing.T) {
	config := DefaultConnectionConfig("postgres://localhost/statcast", false)

	assert.True(t, config.ReadOnly)
	assert.Equal(t, 5*time.Second, config.StatementTimeout)
	assert.Equal(t, 25, config.MaxOpenConns)
	assert.Equal(t, "dugout", config.ServiceName)
}

func TestSessionDSN_URL(t *testing.T) {
	config := DefaultConnectionConfig("postgres://user:pw@localhost:5432/statcast?sslmode=disable", false)

	dsn, err := SessionDSN(config)
	require.NoError(t, err)

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "on", u.Query().Get("default_transaction_read_only"))
	assert.Equal(t, "5000", u.Query().Get("statement_timeout"))
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "/statcast", u.Path)
}

func TestSessionDSN_KeepsExplicitParameters(t *testing.T) {
	config := DefaultConnectionConfig("postgresql://localhost/statcast?statement_timeout=250", false)

	dsn, err := SessionDSN(config)
	require.NoError(t, err)

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "250", u.Query().Get("statement_timeout"))
	assert.Equal(t, "on", u.Query().Get("default_transaction_read_only"))
}

func TestSessionDSN_KeyValue(t *testing.T) {
	config := DefaultConnectionConfig("host=localhost dbname=statcast", false)

	dsn, err := SessionDSN(config)
	require.NoError(t, err)

	assert.Equal(t, "host=localhost dbname=statcast default_transaction_read_only=on statement_timeout=5000", dsn)
}

func TestSessionDSN_WritableWithoutTimeout(t *testing.T) {
	config := ConnectionConfig{DatabaseURL: "postgres://localhost/statcast"}

	dsn, err := SessionDSN(config)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/statcast", dsn)
}
