package logdash

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDraftRecordWithEmptyMetadata(t *testing.T) {
	for _, metadata := range []string{"", "   "} {
		record, err := LogDraft{Message: "hello", Metadata: metadata}.Record()
		assert.Nil(t, err)
		assert.JSONEq(t, `{}`, string(record.Metadata))
		assert.Equal(t, "", record.Timestamp)
	}
}

func TestDraftRecordConvertsFields(t *testing.T) {
	timestamp := time.Date(2024, 9, 24, 10, 15, 0, 0, time.FixedZone("CEST", 2*60*60))
	draft := LogDraft{
		Level:      "Error",
		Message:    "payment declined",
		Topic:      "payment",
		ResourceID: "server-1234",
		TraceID:    "abc-xyz-123",
		SpanID:     "span-456",
		Commit:     "5e5342f",
		Metadata:   `{"parentResourceId": "server-0987", "retries": 3}`,
		Timestamp:  &timestamp,
	}

	record, err := draft.Record()
	assert.Nil(t, err)

	assert.Equal(t, "Error", record.Level)
	assert.Equal(t, "payment declined", record.Message)
	assert.Equal(t, "payment", record.Topic)
	assert.Equal(t, "server-1234", record.ResourceID)
	assert.Equal(t, "abc-xyz-123", record.TraceID)
	assert.Equal(t, "span-456", record.SpanID)
	assert.Equal(t, "5e5342f", record.Commit)
	assert.Equal(t, "2024-09-24T08:15:00.000Z", record.Timestamp)
	assert.JSONEq(t, `{"parentResourceId": "server-0987", "retries": 3}`, string(record.Metadata))
}

func TestDraftRecordRejectsInvalidMetadata(t *testing.T) {
	for _, metadata := range []string{"{not valid json", `["a", "b"]`, `42`, `"text"`} {
		_, err := LogDraft{Metadata: metadata}.Record()

		var validationErr *ValidationError
		assert.True(t, errors.As(err, &validationErr), metadata)
		assert.Equal(t, "metadata", validationErr.Field)
		assert.ErrorIs(t, err, ErrInvalidMetadata)
		assert.Equal(t, KindValidation, KindOf(err))
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindTransport, KindOf(&TransportError{Operation: OperationQuery, Err: errors.New("refused")}))
	assert.Equal(t, KindDecode, KindOf(&DecodeError{Operation: OperationCount, Err: errors.New("bad json")}))
	assert.Equal(t, KindUnknown, KindOf(errors.New("other")))
}
