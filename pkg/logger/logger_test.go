package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	Logger = nil

	tests := []struct {
		name          string
		logLevel      string
		isDevelopment bool
		logFormat     string
		expectedLevel logrus.Level
		expectJSON    bool
	}{
		{
			name:          "production defaults to info and json",
			expectedLevel: logrus.InfoLevel,
			expectJSON:    true,
		},
		{
			name:          "development defaults to debug and text",
			isDevelopment: true,
			expectedLevel: logrus.DebugLevel,
			expectJSON:    false,
		},
		{
			name:          "development with json format",
			logLevel:      "warn",
			isDevelopment: true,
			logFormat:     "json",
			expectedLevel: logrus.WarnLevel,
			expectJSON:    true,
		},
		{
			name:          "invalid level defaults to info",
			logLevel:      "invalid",
			expectedLevel: logrus.InfoLevel,
			expectJSON:    true,
		},
		{
			name:          "case insensitive level",
			logLevel:      "ERROR",
			expectedLevel: logrus.ErrorLevel,
			expectJSON:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("LOG_LEVEL")
			if tt.logFormat != "" {
				os.Setenv("LOG_FORMAT", tt.logFormat)
			} else {
				os.Unsetenv("LOG_FORMAT")
			}
			defer os.Unsetenv("LOG_FORMAT")

			Logger = nil
			logger := InitLogger(tt.logLevel, tt.isDevelopment)

			assert.Equal(t, tt.expectedLevel, logger.GetLevel(), "log level mismatch")

			if tt.expectJSON {
				_, ok := logger.Formatter.(*logrus.JSONFormatter)
				assert.True(t, ok, "expected JSON formatter")
			} else {
				_, ok := logger.Formatter.(*logrus.TextFormatter)
				assert.True(t, ok, "expected text formatter")
			}
		})
	}
}

func TestWithService(t *testing.T) {
	Logger = nil
	logger := InitLogger("info", false)

	var buf bytes.Buffer
	logger.SetOutput(&buf)

	WithService("dugout").Info("starting")

	var logEntry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry), "output should be valid JSON")
	assert.Equal(t, "dugout", logEntry["service"])
	assert.Equal(t, "starting", logEntry["msg"])
}

func TestGetLogger(t *testing.T) {
	Logger = nil

	logger1 := GetLogger()
	assert.NotNil(t, logger1)

	logger2 := GetLogger()
	assert.Same(t, logger1, logger2)
}
