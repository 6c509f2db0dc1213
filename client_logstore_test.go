package logdash

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blutspende/logdash/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestLogStoreClient(t *testing.T, register func(engine *gin.Engine)) (LogStore, *httptest.Server) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	register(engine)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)

	configuration := &config.Configuration{ApplicationName: "logdash-test"}
	logStore, err := NewLogStoreClient(server.URL, NewRestyClient(configuration, false))
	assert.Nil(t, err)
	return logStore, server
}

func TestNewLogStoreClientRequiresURL(t *testing.T) {
	_, err := NewLogStoreClient("", nil)
	assert.ErrorIs(t, err, ErrLogStoreURLMissing)
}

func TestCountLogs(t *testing.T) {
	logStore, _ := newTestLogStoreClient(t, func(engine *gin.Engine) {
		engine.GET("/logs-count", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"count": 47})
		})
	})

	count, err := logStore.CountLogs(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 47, count)
}

func TestCountLogsDecodeErrors(t *testing.T) {
	for name, body := range map[string]string{
		"malformed":  `{"count":`,
		"missing":    `{"total": 3}`,
		"negative":   `{"count": -1}`,
		"wrong type": `{"count": "many"}`,
	} {
		body := body
		logStore, _ := newTestLogStoreClient(t, func(engine *gin.Engine) {
			engine.GET("/logs-count", func(c *gin.Context) {
				c.Data(http.StatusOK, "application/json", []byte(body))
			})
		})

		_, err := logStore.CountLogs(context.Background())

		var decodeErr *DecodeError
		assert.True(t, errors.As(err, &decodeErr), name)
		assert.Equal(t, KindDecode, KindOf(err), name)
	}
}

func TestCountLogsErrorStatus(t *testing.T) {
	logStore, _ := newTestLogStoreClient(t, func(engine *gin.Engine) {
		engine.GET("/logs-count", func(c *gin.Context) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		})
	})

	_, err := logStore.CountLogs(context.Background())

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
	assert.Equal(t, OperationCount, transportErr.Operation)
}

func TestCountLogsUnreachable(t *testing.T) {
	logStore, server := newTestLogStoreClient(t, func(engine *gin.Engine) {})
	server.Close()

	_, err := logStore.CountLogs(context.Background())

	var transportErr *TransportError
	assert.True(t, errors.As(err, &transportErr))
	assert.Equal(t, 0, transportErr.StatusCode)
}

func TestFetchLogsSendsQueryAndDecodesHits(t *testing.T) {
	var receivedQuery map[string][]string
	logStore, _ := newTestLogStoreClient(t, func(engine *gin.Engine) {
		engine.GET("/all-logs", func(c *gin.Context) {
			receivedQuery = c.Request.URL.Query()
			c.Data(http.StatusOK, "application/json", []byte(`{"logs": [
				{"_index": "ingestor", "_source": {"level": "error", "message": "Failed to connect to DB", "resourceId": "server-1234",
				 "timestamp": "2023-09-15T08:00:00Z", "traceId": "abc-xyz-123", "spanId": "span-456", "commit": "5e5342f",
				 "metadata": {"parentResourceId": "server-0987"}, "topic": "database"}},
				{"_source": {"level": "info", "message": "User logged in", "topic": "auth"}}
			]}`))
		})
	})

	query := LogQuery{Page: 2, Size: 20, LogLevel: "error", Topic: "database"}
	logs, err := logStore.FetchLogs(context.Background(), query)
	assert.Nil(t, err)

	assert.Equal(t, []string{"2"}, receivedQuery["page"])
	assert.Equal(t, []string{"20"}, receivedQuery["size"])
	assert.Equal(t, []string{"error"}, receivedQuery["logLevel"])
	assert.Equal(t, []string{"database"}, receivedQuery["topic"])
	_, hasStartDate := receivedQuery["startDate"]
	assert.False(t, hasStartDate)

	assert.Equal(t, 2, len(logs))
	assert.Equal(t, "Failed to connect to DB", logs[0].Message)
	assert.Equal(t, "server-1234", logs[0].ResourceID)
	assert.Equal(t, "abc-xyz-123", logs[0].TraceID)
	assert.Equal(t, "span-456", logs[0].SpanID)
	assert.Equal(t, "5e5342f", logs[0].Commit)
	assert.Equal(t, "2023-09-15T08:00:00Z", logs[0].Timestamp)
	assert.Equal(t, "server-0987", logs[0].Metadata["parentResourceId"])
	assert.Equal(t, "auth", logs[1].Topic)
}

func TestFetchLogsEmptyPage(t *testing.T) {
	logStore, _ := newTestLogStoreClient(t, func(engine *gin.Engine) {
		engine.GET("/all-logs", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"logs": []interface{}{}})
		})
	})

	logs, err := logStore.FetchLogs(context.Background(), LogQuery{Page: 1, Size: 20})
	assert.Nil(t, err)
	assert.NotNil(t, logs)
	assert.Equal(t, 0, len(logs))
}

func TestFetchLogsDecodeErrors(t *testing.T) {
	for name, body := range map[string]string{
		"malformed":      `{"logs": [`,
		"missing logs":   `{"hits": []}`,
		"missing source": `{"logs": [{"_id": "1"}]}`,
	} {
		body := body
		logStore, _ := newTestLogStoreClient(t, func(engine *gin.Engine) {
			engine.GET("/all-logs", func(c *gin.Context) {
				c.Data(http.StatusOK, "application/json", []byte(body))
			})
		})

		_, err := logStore.FetchLogs(context.Background(), LogQuery{Page: 1, Size: 20})
		assert.Equal(t, KindDecode, KindOf(err), name)
	}
}

func TestAddLogPostsRecord(t *testing.T) {
	var receivedBody string
	logStore, _ := newTestLogStoreClient(t, func(engine *gin.Engine) {
		engine.POST("/add-log", func(c *gin.Context) {
			body, _ := io.ReadAll(c.Request.Body)
			receivedBody = string(body)
			c.JSON(http.StatusAccepted, gin.H{"status": "success"})
		})
	})

	record := LogRecord{
		Level:     "Info",
		Message:   "hello",
		Topic:     "email",
		Metadata:  []byte(`{"a":1}`),
		Timestamp: "2024-09-24T08:15:00.000Z",
	}
	err := logStore.AddLog(context.Background(), record)
	assert.Nil(t, err)

	assert.JSONEq(t, `{"level":"Info","message":"hello","topic":"email","resourceId":"","traceId":"","spanId":"","commit":"",
		"metadata":{"a":1},"timestamp":"2024-09-24T08:15:00.000Z"}`, receivedBody)
}

func TestAddLogRejected(t *testing.T) {
	logStore, _ := newTestLogStoreClient(t, func(engine *gin.Engine) {
		engine.POST("/add-log", func(c *gin.Context) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request"})
		})
	})

	err := logStore.AddLog(context.Background(), LogRecord{Metadata: []byte(`{}`)})
	assert.Equal(t, KindTransport, KindOf(err))
}
