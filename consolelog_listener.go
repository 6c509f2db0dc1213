package logdash

import (
	"fmt"

	"github.com/blutspende/logdash/consolelog/service"
)

// consoleLogListener records failures and added logs in the console log.
type consoleLogListener struct {
	consoleLogService service.ConsoleLogService
}

func NewConsoleLogListener(consoleLogService service.ConsoleLogService) EventListener {
	return &consoleLogListener{
		consoleLogService: consoleLogService,
	}
}

func (l *consoleLogListener) OnDashboardEvent(event Event) {
	switch event.Type {
	case EventOperationFailed:
		l.consoleLogService.Error(string(event.Operation), string(event.Kind), event.Error)
	case EventLogAdded:
		l.consoleLogService.Info(string(event.Operation), "Log added")
	case EventQueryDiscarded:
		l.consoleLogService.Debug(string(event.Operation), fmt.Sprintf("Discarded superseded result of query %d", event.Generation))
	}
}
