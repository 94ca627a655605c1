package websocket

import (
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Server to client lifecycle events. Domain events keep their bus names.
const (
	EventConnected       = "connected"
	EventPrimaryFamily   = "primary-family"
	EventJoinedFamily    = "joined-family"
	EventPong            = "pong"
	EventError           = "error"
	EventConnectionStats = "connection-stats"
)

// Client to server events.
const (
	EventJoinFamily = "join-family"
	EventPing       = "ping"
)

const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnknownEvent = "UNKNOWN_EVENT"
	CodeInternal     = "INTERNAL_ERROR"
)

// CloseUnauthorized is sent when the handshake token is missing or invalid.
const CloseUnauthorized = 4401

// Envelope is the frame written to clients.
type Envelope struct {
	Event     string    `json:"event"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Inbound is the frame read from clients.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Stats struct {
	Users   int `json:"users"`
	Sockets int `json:"sockets"`
	Rooms   int `json:"rooms"`
}

func encode(event string, data any) ([]byte, error) {
	return json.Marshal(Envelope{Event: event, Data: data, Timestamp: time.Now().UTC()})
}

func FamilyRoom(familyID uint) string {
	return "family:" + strconv.FormatUint(uint64(familyID), 10)
}
