package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestReadConfigurationDefaults(t *testing.T) {
	configuration, err := ReadConfiguration()
	assert.Nil(t, err)

	assert.Equal(t, uint16(8080), configuration.APIPort)
	assert.Equal(t, "http://localhost:8000", configuration.LogStoreURL)
	assert.Equal(t, zerolog.InfoLevel, configuration.LogLevel)
	assert.Equal(t, "logdash", configuration.ApplicationName)
	assert.Equal(t, uint(0), configuration.LogStoreTimeoutSeconds)
	assert.Equal(t, 500, configuration.ConsoleLogSize)
	assert.False(t, configuration.Development)
}

func TestReadConfigurationFromEnvironment(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("LOG_STORE_URL", "http://logstore:8000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DEVELOPMENT", "true")
	t.Setenv("CONSOLE_LOG_SIZE", "10")

	configuration, err := ReadConfiguration()
	assert.Nil(t, err)

	assert.Equal(t, uint16(9090), configuration.APIPort)
	assert.Equal(t, "http://logstore:8000", configuration.LogStoreURL)
	assert.Equal(t, zerolog.DebugLevel, configuration.LogLevel)
	assert.True(t, configuration.Development)
	assert.Equal(t, 10, configuration.ConsoleLogSize)
}

func TestReadConfigurationRejectsInvalidValues(t *testing.T) {
	t.Setenv("API_PORT", "not-a-port")

	_, err := ReadConfiguration()
	assert.NotNil(t, err)
}

func TestReadConfigurationRejectsEmptyConsoleLog(t *testing.T) {
	t.Setenv("CONSOLE_LOG_SIZE", "0")

	_, err := ReadConfiguration()
	assert.ErrorIs(t, err, ErrFailedToReadConfiguration)
}
