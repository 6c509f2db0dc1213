package repository

import (
	"sync"

	"github.com/blutspende/logdash/consolelog/model"

	"github.com/rs/zerolog/log"
)

type ConsoleLogRepository interface {
	CreateConsoleLog(entity model.ConsoleLogEntity)
	// LoadConsoleLogs returns the stored entries newest first; an empty operation matches all
	LoadConsoleLogs(operation string) []model.ConsoleLogEntity
}

type ConsoleLogStorage struct {
	mutex       *sync.Mutex
	consoleLogs []*model.ConsoleLogEntity
	size        int
}

func NewConsoleLogRepository(size int) ConsoleLogRepository {
	log.Trace().Msg("Creating new console log repository")
	return &ConsoleLogStorage{
		mutex:       &sync.Mutex{},
		consoleLogs: make([]*model.ConsoleLogEntity, 0, size),
		size:        size,
	}
}

func (s *ConsoleLogStorage) CreateConsoleLog(entity model.ConsoleLogEntity) {
	log.Trace().Interface("object", entity).Msg("Saving console log")
	s.store(&entity)
}

func (s *ConsoleLogStorage) LoadConsoleLogs(operation string) []model.ConsoleLogEntity {
	log.Trace().Msg("Loading console logs")
	s.mutex.Lock()
	defer s.mutex.Unlock()

	consoleLogEntities := make([]model.ConsoleLogEntity, 0, len(s.consoleLogs))
	for _, consoleLog := range s.consoleLogs {
		if consoleLog == nil {
			continue
		}
		if operation == "" || consoleLog.Operation == operation {
			consoleLogEntities = append(consoleLogEntities, *consoleLog)
		}
	}
	return consoleLogEntities
}

// store puts entity in front and drops the oldest entry once size is reached.
func (s *ConsoleLogStorage) store(entity *model.ConsoleLogEntity) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.size < 1 {
		return
	}
	if len(s.consoleLogs) < s.size {
		s.consoleLogs = append(s.consoleLogs, nil)
	}
	copy(s.consoleLogs[1:], s.consoleLogs)
	s.consoleLogs[0] = entity
}
