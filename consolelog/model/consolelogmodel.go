package model

import (
	"time"

	"github.com/google/uuid"
)

type LogLevel string // @Name LogLevel

const (
	Debug LogLevel = "DEBUG"
	Info  LogLevel = "INFO"
	Error LogLevel = "ERROR"
)

type ConsoleLogEntity struct {
	ID        uuid.UUID
	Operation string
	Kind      string
	CreatedAt time.Time
	Level     LogLevel
	Message   string
}

type ConsoleLogDTO struct {
	ID        uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`             // The entry ID
	Operation string    `json:"operation"`                                         // The dashboard operation that produced the entry
	Kind      string    `json:"kind,omitempty"`                                    // The error kind, empty for non-errors
	CreatedAt time.Time `json:"createdAt" swaggertype:"string" format:"date-time"` // The log timestamp
	Level     LogLevel  `json:"level"`                                             // The log level
	Message   string    `json:"message"`                                           // The log message
} // @Name ConsoleLogDTO
