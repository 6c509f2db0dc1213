package logdash

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/blutspende/logdash/config"
	"github.com/blutspende/logdash/consolelog/service"
	"github.com/blutspende/logdash/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	timeout "github.com/vearne/gin-timeout"
)

const shutdownTimeout = 5 * time.Second

type GinApi interface {
	// Run serves until ctx is done, then shuts the server down gracefully
	Run(ctx context.Context) error
}

type api struct {
	config            *config.Configuration
	engine            *gin.Engine
	dashboard         Dashboard
	consoleLogService service.ConsoleLogService
	eventStream       *EventStream
}

func (api *api) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", api.config.APIPort),
		Handler: api.engine,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", httpServer.Addr).Msg("Starting dashboard API")
		serverErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down dashboard API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-serverErr; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func NewAPI(config *config.Configuration, dashboard Dashboard, consoleLogService service.ConsoleLogService, eventStream *EventStream) GinApi {
	return newAPI(gin.New(), config, dashboard, consoleLogService, eventStream)
}

func newAPI(engine *gin.Engine, config *config.Configuration, dashboard Dashboard,
	consoleLogService service.ConsoleLogService, eventStream *EventStream) *api {

	if config.LogLevel <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine.Use(gin.Recovery())

	api := &api{
		config:            config,
		engine:            engine,
		dashboard:         dashboard,
		consoleLogService: consoleLogService,
		eventStream:       eventStream,
	}

	corsMiddleWare := middleware.CreateCorsMiddleware(config)
	engine.Use(corsMiddleWare)

	root := engine.Group("")
	root.GET("/health", api.GetHealth)

	v1Group := root.Group("v1")

	// the timeout middleware buffers responses, so streaming routes stay outside of it
	requestGroup := v1Group.Group("")
	if config.RequestTimeoutSeconds > 0 {
		requestGroup.Use(timeout.Timeout(
			timeout.WithTimeout(time.Duration(config.RequestTimeoutSeconds)*time.Second),
			timeout.WithErrorHttpCode(http.StatusRequestTimeout),
		))
	}

	dashboardGroup := requestGroup.Group("/dashboard")
	{
		dashboardGroup.GET("", api.GetDashboard)
		dashboardGroup.GET("/options", api.GetDashboardOptions)
		dashboardGroup.PUT("/filter/:dimension", api.SetFilter)
		dashboardGroup.PUT("/page", api.SetPage)
		dashboardGroup.POST("/navigate/:direction", api.Navigate)
		dashboardGroup.POST("/refresh", api.RefreshDashboard)
	}

	draftGroup := requestGroup.Group("/draft")
	{
		draftGroup.GET("", api.GetDraft)
		draftGroup.POST("", api.OpenDraft)
		draftGroup.PUT("", api.UpdateDraft)
		draftGroup.DELETE("", api.CancelDraft)
		draftGroup.POST("/submit", api.SubmitDraft)
	}

	requestGroup.GET("/console-logs", api.GetConsoleLogs)

	if eventStream != nil {
		eventsGroup := v1Group.Group("/events")
		{
			eventsGroup.GET("", eventStream.sseServer.ServeHTTP())
			eventsGroup.GET("/poll", gin.WrapF(eventStream.longpollManager.SubscriptionHandler))
		}
	}

	// Development-option enables debugger, this can have side-effects
	if api.config.Development {
		debug := root.Group("/debug/pprof")
		{
			debug.GET("/", gin.WrapF(pprof.Index))
			debug.GET("/cmdline", gin.WrapF(pprof.Cmdline))
			debug.GET("/profile", gin.WrapF(pprof.Profile))
			debug.GET("/symbol", gin.WrapF(pprof.Symbol))
			debug.GET("/trace", gin.WrapF(pprof.Trace))
			debug.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
			debug.GET("/block", gin.WrapH(pprof.Handler("block")))
			debug.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
			debug.GET("/heap", gin.WrapH(pprof.Handler("heap")))
			debug.GET("/mutex", gin.WrapH(pprof.Handler("mutex")))
			debug.GET("/threadcreate", gin.WrapH(pprof.Handler("threadcreate")))
			debug.POST("/symbol", gin.WrapF(pprof.Symbol))
		}
	}

	return api
}
