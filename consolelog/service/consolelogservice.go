package service

import (
	"time"

	"github.com/blutspende/logdash/consolelog/model"
	"github.com/blutspende/logdash/consolelog/repository"
	"github.com/google/uuid"

	"github.com/rs/zerolog/log"
)

type ConsoleLogService interface {
	Debug(operation string, message string)
	Info(operation string, message string)
	Error(operation string, kind string, message string)
	// GetConsoleLogs returns entries newest first; an empty operation returns all of them
	GetConsoleLogs(operation string) []model.ConsoleLogDTO
}

type consoleLogService struct {
	repository repository.ConsoleLogRepository
}

func NewConsoleLogService(repository repository.ConsoleLogRepository) ConsoleLogService {
	log.Trace().Msg("Creating new console log service")
	return &consoleLogService{
		repository: repository,
	}
}

func (s *consoleLogService) createConsoleLog(level model.LogLevel, operation, kind, message string) {
	log.Trace().Interface("level", level).Interface("message", message).Msg("Creating console log")

	newConsoleLogEntity := model.ConsoleLogEntity{
		ID:        uuid.New(),
		Operation: operation,
		Kind:      kind,
		Level:     level,
		CreatedAt: time.Now().UTC(),
		Message:   message,
	}

	s.repository.CreateConsoleLog(newConsoleLogEntity)
}

func (s *consoleLogService) Debug(operation string, message string) {
	s.createConsoleLog(model.Debug, operation, "", message)
}

func (s *consoleLogService) Info(operation string, message string) {
	s.createConsoleLog(model.Info, operation, "", message)
}

func (s *consoleLogService) Error(operation string, kind string, message string) {
	s.createConsoleLog(model.Error, operation, kind, message)
}

func (s *consoleLogService) GetConsoleLogs(operation string) []model.ConsoleLogDTO {
	log.Trace().Msg("Getting console logs")

	loadedConsoleLogEntities := s.repository.LoadConsoleLogs(operation)

	entityCount := len(loadedConsoleLogEntities)
	consoleLogDTOs := make([]model.ConsoleLogDTO, entityCount)
	for i := 0; i < entityCount; i++ {
		consoleLogEntity := loadedConsoleLogEntities[i]
		consoleLogDTOs[i] = model.ConsoleLogDTO{
			ID:        consoleLogEntity.ID,
			Operation: consoleLogEntity.Operation,
			Kind:      consoleLogEntity.Kind,
			Level:     consoleLogEntity.Level,
			CreatedAt: consoleLogEntity.CreatedAt,
			Message:   consoleLogEntity.Message,
		}
	}

	return consoleLogDTOs
}
