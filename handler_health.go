package logdash

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// BuildVersion - will be filled at build process in pipeline
var BuildVersion string

const (
	healthRunning  = "running"
	healthDegraded = "degraded"

	logStoreUnknown     = "unknown"
	logStoreReachable   = "reachable"
	logStoreUnreachable = "unreachable"
)

type healthCheck struct {
	Service      string          `json:"service"`
	Status       string          `json:"status"`
	ApiVersion   []string        `json:"apiVersion"`
	BuildVersion string          `json:"buildVersion"`
	LogStore     logStoreHealth  `json:"logStore"`
	Dashboard    dashboardHealth `json:"dashboard"`
}

type logStoreHealth struct {
	URL         string     `json:"url"`
	Status      string     `json:"status"`
	LastCountAt *time.Time `json:"lastCountAt,omitempty"`
	LastFailure *Failure   `json:"lastFailure,omitempty"`
}

type dashboardHealth struct {
	Generation         uint64 `json:"generation"`
	TotalCount         int    `json:"totalCount"`
	DraftOpen          bool   `json:"draftOpen"`
	Submitting         bool   `json:"submitting"`
	NumberOfGoRoutines int    `json:"numberOfGoRoutines"`
}

func (api *api) GetHealth(c *gin.Context) {
	snapshot := api.dashboard.Snapshot()

	health := healthCheck{
		Service:      api.config.ApplicationName,
		Status:       healthRunning,
		ApiVersion:   []string{"v1"},
		BuildVersion: BuildVersion,
		LogStore: logStoreHealth{
			URL:         api.config.LogStoreURL,
			Status:      logStoreStatus(snapshot),
			LastCountAt: snapshot.LastCountAt,
			LastFailure: snapshot.LastFailure,
		},
		Dashboard: dashboardHealth{
			Generation:         snapshot.Generation,
			TotalCount:         snapshot.TotalCount,
			DraftOpen:          snapshot.DraftOpen,
			Submitting:         snapshot.Submitting,
			NumberOfGoRoutines: runtime.NumGoroutine(),
		},
	}
	if health.LogStore.Status == logStoreUnreachable {
		health.Status = healthDegraded
	}

	c.JSON(http.StatusOK, health)
}

// logStoreStatus is unreachable when a transport failure is newer than the last committed count.
func logStoreStatus(snapshot Snapshot) string {
	failure := snapshot.LastFailure
	if failure != nil && failure.Kind == KindTransport {
		if snapshot.LastCountAt == nil || failure.OccurredAt.After(*snapshot.LastCountAt) {
			return logStoreUnreachable
		}
	}
	if snapshot.LastCountAt != nil {
		return logStoreReachable
	}
	return logStoreUnknown
}
