package server

import (
	"context"

	"github.com/gin-contrib/sse"
)

type SSEResultStatus int

const (
	SSEDelivered SSEResultStatus = iota
	SSEDropped
	SSEUndelivered
)

type SSEClient struct {
	Context   context.Context
	EventChan chan sse.Event
}

type SSEResult struct {
	Result SSEResultStatus
	Event  sse.Event
}
