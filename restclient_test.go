package logdash

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blutspende/logdash/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestyClientTimeouts(t *testing.T) {
	configuration := config.Configuration{
		ApplicationName:         "logdash",
		LogLevel:                zerolog.InfoLevel,
		LogStoreTimeoutSeconds:  1,
		WatchPollTimeoutSeconds: 45,
	}

	assert.Equal(t, time.Second, NewRestyClient(&configuration, false).GetClient().Timeout)
	assert.Equal(t, time.Duration(0), NewWatchRestyClient(&configuration).GetClient().Timeout)
}

func TestWatchClientOutlivesLogStoreTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(1500 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	configuration := config.Configuration{
		ApplicationName:        "logdash",
		LogLevel:               zerolog.InfoLevel,
		LogStoreTimeoutSeconds: 1,
	}

	_, err := NewRestyClient(&configuration, false).R().Get(server.URL)
	assert.Error(t, err)

	resp, err := NewWatchRestyClient(&configuration).R().Get(server.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}
