package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/touchctl/touchctl/log"
)

// EventCallback is the function signature for mpv event notifications.
// Property changes pass the property name and its new value; other events
// pass the event name and nil.
type EventCallback func(name string, data any)

// EventListener holds the persistent connection observed properties are reported on.
// mpv scopes observe_property to the connection that sent it, so the
// registrations and the read loop share one socket.
type EventListener struct {
	socketPath string
	conn       net.Conn
	callback   EventCallback
	mu         sync.Mutex
	listening  bool

	ids    map[string]int
	nextID int
}

// NewEventListener creates a listener for the given socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
		ids:        make(map[string]int),
	}
}

// Start connects and registers every property observed so far.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.DialTimeout("unix", el.socketPath, dialTimeout)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}
	el.conn = conn

	for name, id := range el.ids {
		if err := el.observe(id, name); err != nil {
			conn.Close()
			return err
		}
	}

	el.listening = true
	go el.readLoop(conn)

	log.Infof("mpv event listener started on %s", el.socketPath)
	return nil
}

// Observe asks mpv to report changes of name. Before Start the request is
// queued and sent once the connection is open.
func (el *EventListener) Observe(name string) error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if _, ok := el.ids[name]; ok {
		return nil
	}
	el.nextID++
	el.ids[name] = el.nextID

	if !el.listening {
		return nil
	}
	return el.observe(el.nextID, name)
}

// observe must be called with mu held.
func (el *EventListener) observe(id int, name string) error {
	if err := writeCommand(el.conn, ipcCommand{Command: []any{"observe_property", id, name}}); err != nil {
		return fmt.Errorf("observe %s: %w", name, err)
	}
	return nil
}

// Stop closes the connection, which ends the read loop.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}

	el.listening = false
	_ = el.conn.Close()
}

// readLoop reads newline-delimited JSON messages until the connection closes.
func (el *EventListener) readLoop(conn net.Conn) {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		el.processEvent(scanner.Bytes())
	}

	if err := scanner.Err(); err != nil {
		log.Warnf("event listener read error: %v", err)
	}
}

// processEvent parses and dispatches a single mpv message.
func (el *EventListener) processEvent(line []byte) {
	var msg ipcMessage
	if err := json.Unmarshal(line, &msg); err != nil {
		return
	}

	switch msg.Event {
	case "":
		// reply to observe_property
		if replyError(nil, msg.Error) != nil {
			log.WithFields(logrus.Fields{"error": msg.Error}).Warn("mpv rejected an observe request")
		}
	case "property-change":
		if msg.Name != "" && el.callback != nil {
			el.callback(msg.Name, msg.Data)
		}
	default:
		if el.callback != nil {
			el.callback(msg.Event, nil)
		}
	}
}
