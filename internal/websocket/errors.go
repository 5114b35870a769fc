package websocket

import "errors"

var (
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrInvalidMessage  = errors.New("invalid message format")
	ErrNotParticipant  = errors.New("not a participant of this thread")
	ErrNotJoined       = errors.New("join the room before sending")
)
