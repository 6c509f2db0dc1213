package logdash

import (
	"context"
	"encoding/json"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// LogStore is the remote log backend. Implementations must be safe for concurrent use.
type LogStore interface {
	// CountLogs returns the number of stored logs, ignoring any filter
	CountLogs(ctx context.Context) (int, error)
	// FetchLogs returns one page of logs matching query
	FetchLogs(ctx context.Context, query LogQuery) ([]LogEntry, error)
	// AddLog appends a record
	AddLog(ctx context.Context, record LogRecord) error
}

type logStore struct {
	client      *resty.Client
	logStoreUrl string
}

type countResponseTO struct {
	Count *int `json:"count"`
}

type logHitTO struct {
	Source *LogEntry `json:"_source"`
}

type logsResponseTO struct {
	Logs *[]logHitTO `json:"logs"`
}

func NewLogStoreClient(logStoreUrl string, restyClient *resty.Client) (LogStore, error) {
	if logStoreUrl == "" {
		return nil, ErrLogStoreURLMissing
	}

	return &logStore{
		client:      restyClient,
		logStoreUrl: logStoreUrl,
	}, nil
}

func (s *logStore) CountLogs(ctx context.Context) (int, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(s.logStoreUrl + "/logs-count")
	if err := checkResponse(OperationCount, resp, err); err != nil {
		return 0, err
	}

	var response countResponseTO
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return 0, &DecodeError{Operation: OperationCount, Err: errors.Wrap(err, MsgUnmarshalResponse)}
	}
	if response.Count == nil {
		return 0, &DecodeError{Operation: OperationCount, Err: errors.New(MsgMissingCountField)}
	}
	if *response.Count < 0 {
		return 0, &DecodeError{Operation: OperationCount, Err: errors.Errorf("%s: %d", MsgNegativeCount, *response.Count)}
	}

	return *response.Count, nil
}

func (s *logStore) FetchLogs(ctx context.Context, query LogQuery) ([]LogEntry, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(query.Params()).
		Get(s.logStoreUrl + "/all-logs")
	if err := checkResponse(OperationQuery, resp, err); err != nil {
		return nil, err
	}

	var response logsResponseTO
	if err := json.Unmarshal(resp.Body(), &response); err != nil {
		return nil, &DecodeError{Operation: OperationQuery, Err: errors.Wrap(err, MsgUnmarshalResponse)}
	}
	if response.Logs == nil {
		return nil, &DecodeError{Operation: OperationQuery, Err: errors.New(MsgMissingLogsField)}
	}

	hits := *response.Logs
	logs := make([]LogEntry, 0, len(hits))
	for i, hit := range hits {
		if hit.Source == nil {
			return nil, &DecodeError{Operation: OperationQuery, Err: errors.Errorf("%s (hit %d)", MsgMissingSourceField, i)}
		}
		logs = append(logs, *hit.Source)
	}

	return logs, nil
}

func (s *logStore) AddLog(ctx context.Context, record LogRecord) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		Post(s.logStoreUrl + "/add-log")

	return checkResponse(OperationSubmit, resp, err)
}

func checkResponse(operation Operation, resp *resty.Response, err error) error {
	if err != nil {
		log.Error().Err(err).Str("operation", string(operation)).Msg("Failed to call log store")
		return &TransportError{Operation: operation, Err: err}
	}
	if !resp.IsSuccess() {
		return &TransportError{
			Operation:  operation,
			StatusCode: resp.StatusCode(),
			Err:        errors.New(string(resp.Body())),
		}
	}
	return nil
}
