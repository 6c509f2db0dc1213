package logdash

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/blutspende/logdash/utils"

	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// ISO8601Layout matches the millisecond UTC format the log store indexes timestamps in.
const ISO8601Layout = "2006-01-02T15:04:05.000Z"

type Level string // @Name Level

const (
	LevelAll   Level = "all"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var Levels = []Level{LevelAll, LevelInfo, LevelWarn, LevelError}

// DraftLevels are the levels offered when adding a log. The store matches level case-insensitively.
var DraftLevels = []string{"Info", "Warn", "Error"}

func ParseLevel(value string) (Level, error) {
	level := Level(strings.ToLower(strings.TrimSpace(value)))
	if utils.SliceContains(level, Levels) {
		return level, nil
	}
	return LevelAll, errors.Wrapf(ErrUnknownLevel, "%q, expected one of %s", value, utils.JoinEnumsAsString(Levels, ", "))
}

type Topic string // @Name Topic

const (
	TopicAll      Topic = "all"
	TopicAuth     Topic = "auth"
	TopicDatabase Topic = "database"
	TopicEmail    Topic = "email"
	TopicPayment  Topic = "payment"
	TopicServer   Topic = "server"
	TopicServices Topic = "services"
)

var Topics = []Topic{TopicAll, TopicAuth, TopicDatabase, TopicEmail, TopicPayment, TopicServer, TopicServices}

func ParseTopic(value string) (Topic, error) {
	topic := Topic(strings.ToLower(strings.TrimSpace(value)))
	if utils.SliceContains(topic, Topics) {
		return topic, nil
	}
	return TopicAll, errors.Wrapf(ErrUnknownTopic, "%q, expected one of %s", value, utils.JoinEnumsAsString(Topics, ", "))
}

type Operation string // @Name Operation

const (
	OperationQuery  Operation = "query"
	OperationCount  Operation = "count"
	OperationSubmit Operation = "submit"
)

type LogEntry struct {
	Topic      string                 `json:"topic"`
	ResourceID string                 `json:"resourceId"`
	TraceID    string                 `json:"traceId"`
	SpanID     string                 `json:"spanId"`
	Commit     string                 `json:"commit"`
	Timestamp  string                 `json:"timestamp"`
	Message    string                 `json:"message"`
	Level      string                 `json:"level"`
	Metadata   map[string]interface{} `json:"metadata"`
} // @Name LogEntry

// LogDraft backs the add-log form. Metadata stays raw text until submission.
type LogDraft struct {
	Level      string     `json:"level"`
	Message    string     `json:"message"`
	Topic      string     `json:"topic"`
	ResourceID string     `json:"resourceId"`
	TraceID    string     `json:"traceId"`
	SpanID     string     `json:"spanId"`
	Commit     string     `json:"commit"`
	Metadata   string     `json:"metadata"`
	Timestamp  *time.Time `json:"timestamp"`
} // @Name LogDraft

// Equal reports whether both drafts hold the same field values.
func (d LogDraft) Equal(other LogDraft) bool {
	timestamp, otherTimestamp := d.Timestamp, other.Timestamp
	d.Timestamp, other.Timestamp = nil, nil
	return d == other && timesEqual(timestamp, otherTimestamp)
}

// LogRecord is the body posted to /add-log.
type LogRecord struct {
	Level      string          `json:"level"`
	Message    string          `json:"message"`
	Topic      string          `json:"topic"`
	ResourceID string          `json:"resourceId"`
	TraceID    string          `json:"traceId"`
	SpanID     string          `json:"spanId"`
	Commit     string          `json:"commit"`
	Metadata   json.RawMessage `json:"metadata"`
	Timestamp  string          `json:"timestamp,omitempty"`
}

// Record validates the draft and converts it into its wire form. A blank metadata text is an
// empty object; anything else has to parse as a JSON object.
func (d LogDraft) Record() (LogRecord, error) {
	metadata, err := parseMetadata(d.Metadata)
	if err != nil {
		return LogRecord{}, err
	}

	record := LogRecord{
		Level:      d.Level,
		Message:    d.Message,
		Topic:      d.Topic,
		ResourceID: d.ResourceID,
		TraceID:    d.TraceID,
		SpanID:     d.SpanID,
		Commit:     d.Commit,
		Metadata:   metadata,
	}
	if d.Timestamp != nil {
		record.Timestamp = formatInstant(*d.Timestamp)
	}
	return record, nil
}

func parseMetadata(text string) (json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return json.RawMessage("{}"), nil
	}

	var parser fastjson.Parser
	value, err := parser.Parse(text)
	if err != nil {
		return nil, &ValidationError{Field: "metadata", Err: errors.Wrap(ErrInvalidMetadata, err.Error())}
	}
	if value.Type() != fastjson.TypeObject {
		return nil, &ValidationError{Field: "metadata", Err: errors.Wrapf(ErrInvalidMetadata, "got %s", value.Type())}
	}
	return value.MarshalTo(nil), nil
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(ISO8601Layout)
}
