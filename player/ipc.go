package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"github.com/touchctl/touchctl/property"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id,omitempty"`
}

// ipcMessage is any line mpv writes: a command reply or an event.
type ipcMessage struct {
	Data      any    `json:"data"`
	Error     string `json:"error"`
	RequestID int64  `json:"request_id"`
	Event     string `json:"event"`
	ID        int    `json:"id"`
	Name      string `json:"name"`
}

// Error is a failure reported by mpv itself rather than by the transport.
type Error struct {
	Command []any
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("mpv: %v: %s", e.Command, e.Message)
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	dialTimeout  = 1 * time.Second
	readDeadline = 1 * time.Second
)

var requestID atomic.Int64

// sendCommand sends a JSON-IPC command to mpv. Transport failures are retried;
// errors reported by mpv are returned at once.
func (m *MPV) sendCommand(command []any) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(m.socketPath, command)
		if err == nil {
			return result, nil
		}

		var mpvErr *Error
		if errors.As(err, &mpvErr) || errors.Is(err, property.ErrUnavailable) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", maxRetries, lastErr)
}

// doSendCommand performs a single IPC command attempt on a fresh connection.
func doSendCommand(socketPath string, command []any) (any, error) {
	conn, err := net.DialTimeout("unix", socketPath, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	id := requestID.Add(1)
	if err := writeCommand(conn, ipcCommand{Command: command, RequestID: id}); err != nil {
		return nil, err
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	// every client receives events too, so skip lines until our reply
	dec := json.NewDecoder(conn)
	for {
		var msg ipcMessage
		if err := dec.Decode(&msg); err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		if msg.Event != "" || msg.RequestID != id {
			continue
		}
		return msg.Data, replyError(command, msg.Error)
	}
}

func writeCommand(conn net.Conn, cmd ipcCommand) error {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	// mpv requires newline-delimited JSON
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func replyError(command []any, status string) error {
	switch status {
	case "", "success":
		return nil
	case "property unavailable":
		return fmt.Errorf("%v: %w", command, property.ErrUnavailable)
	default:
		return &Error{Command: command, Message: status}
	}
}
