package server

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sseClientListenerMock struct {
	newClients    chan *SSEClient
	closedClients chan *SSEClient
	results       chan SSEResult
}

func newSSEClientListenerMock() *sseClientListenerMock {
	return &sseClientListenerMock{
		newClients:    make(chan *SSEClient, 10),
		closedClients: make(chan *SSEClient, 10),
		results:       make(chan SSEResult, 10),
	}
}

func (m *sseClientListenerMock) OnSSENewClient(client *SSEClient) {
	m.newClients <- client
}

func (m *sseClientListenerMock) OnSSEClientClosed(client *SSEClient) {
	m.closedClients <- client
}

func (m *sseClientListenerMock) OnSSESendingCompleted(result SSEResult) {
	m.results <- result
}

func startSSEServer(t *testing.T, ctx context.Context, listener DashboardSSEClientListener) (*DashboardSSEServer, *httptest.Server) {
	gin.SetMode(gin.TestMode)
	sseServer := NewDashboardSSEServer(ctx, listener)
	engine := gin.New()
	engine.GET("/v1/events", sseServer.ServeHTTP())
	httpServer := httptest.NewServer(engine)
	t.Cleanup(httpServer.Close)
	return sseServer, httpServer
}

func readEvent(t *testing.T, reader *bufio.Reader) (string, string) {
	var name, data string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			if name != "" || data != "" {
				return name, data
			}
			continue
		}
		if strings.HasPrefix(line, "event:") {
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		}
		if strings.HasPrefix(line, "data:") {
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
}

func TestDashboardSSEServerBroadcastsToClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := newSSEClientListenerMock()
	sseServer, httpServer := startSSEServer(t, ctx, listener)

	resp, err := http.Get(httpServer.URL + "/v1/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	select {
	case <-listener.newClients:
	case <-time.After(time.Second):
		t.Fatal("client was not registered")
	}

	sseServer.Send("COUNT_UPDATED", map[string]int{"totalCount": 47})

	name, data := readEvent(t, bufio.NewReader(resp.Body))
	assert.Equal(t, "COUNT_UPDATED", name)
	assert.JSONEq(t, `{"totalCount":47}`, data)

	select {
	case result := <-listener.results:
		assert.Equal(t, SSEDelivered, result.Result)
	case <-time.After(time.Second):
		t.Fatal("delivery was not reported")
	}
}

func TestDashboardSSEServerRemovesDisconnectedClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := newSSEClientListenerMock()
	_, httpServer := startSSEServer(t, ctx, listener)

	requestCtx, cancelRequest := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, httpServer.URL+"/v1/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var registered *SSEClient
	select {
	case registered = <-listener.newClients:
	case <-time.After(time.Second):
		t.Fatal("client was not registered")
	}

	cancelRequest()

	select {
	case closed := <-listener.closedClients:
		assert.Equal(t, registered, closed)
	case <-time.After(2 * time.Second):
		t.Fatal("client was not removed")
	}
}

func TestDashboardSSEServerClosesStreamsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	listener := newSSEClientListenerMock()
	_, httpServer := startSSEServer(t, ctx, listener)

	resp, err := http.Get(httpServer.URL + "/v1/events")
	require.NoError(t, err)
	defer resp.Body.Close()

	select {
	case <-listener.newClients:
	case <-time.After(time.Second):
		t.Fatal("client was not registered")
	}

	cancel()

	done := make(chan struct{})
	go func() {
		_, _ = bufio.NewReader(resp.Body).ReadString(0)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream was not closed")
	}
}
