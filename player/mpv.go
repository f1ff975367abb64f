package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/touchctl/touchctl/constant"
	"github.com/touchctl/touchctl/filesystem"
	"github.com/touchctl/touchctl/log"
	"github.com/touchctl/touchctl/property"
	"github.com/touchctl/touchctl/where"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV drives an mpv process over its JSON-IPC socket.
type MPV struct {
	opts       Options
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	mu         sync.Mutex    // serializes commands
	events     *EventListener

	changeMu sync.RWMutex
	onChange func(name string, value any)
}

// NewMPV creates a player instance. Nothing is started until Play.
func NewMPV(opts Options) *MPV {
	return &MPV{
		opts:   opts,
		exited: make(chan struct{}),
	}
}

// Connect attaches to an mpv that is already listening on socketPath.
func Connect(socketPath string) (*MPV, error) {
	m := NewMPV(Options{})
	m.socketPath = socketPath
	m.events = NewEventListener(socketPath, m.dispatch)

	if err := m.events.Start(); err != nil {
		return nil, err
	}
	return m, nil
}

// Play launches mpv on target and waits for its socket.
func (m *MPV) Play(target string) error {
	safeTarget, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if m.socketPath == "" {
		path, err := newSocketPath()
		if err != nil {
			return err
		}
		m.socketPath = path
	}

	binary := lo.Ternary(m.opts.Binary == "", "mpv", m.opts.Binary)
	m.cmd = exec.Command(binary, m.args(safeTarget)...)

	// Detach from parent process group so terminal signals stay with touchctl.
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// reap the process to prevent zombies
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	if m.events == nil {
		m.events = NewEventListener(m.socketPath, m.dispatch)
	}
	if err := m.events.Start(); err != nil {
		return err
	}

	log.Infof("mpv started on %s", m.socketPath)
	return nil
}

// args builds the mpv command line. The user's mpv.conf is respected:
// only IPC, window and volume limits are set.
func (m *MPV) args(target string) []string {
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
	}

	if m.opts.VolumeMax > 0 {
		args = append(args, fmt.Sprintf("--volume-max=%d", m.opts.VolumeMax))
	}

	if title := sanitizeTitle(m.opts.Title); title != "" {
		args = append(args, fmt.Sprintf("--force-media-title=%s", title), fmt.Sprintf("--title=%s", title))
	}

	args = append(args, m.opts.Args...)
	return append(args, "--", target)
}

func newSocketPath() (string, error) {
	randomBytes := make([]byte, 4)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("generate socket name: %w", err)
	}
	return filepath.Join(where.Temp(), fmt.Sprintf("%s-%x.sock", constant.App, randomBytes)), nil
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// Get implements property.Bus.
func (m *MPV) Get(name string) (any, error) {
	data, err := m.sendCommand([]any{"get_property", name})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("%s: %w", name, property.ErrUnavailable)
	}
	return data, nil
}

// Set implements property.Bus.
func (m *MPV) Set(name string, value any) error {
	_, err := m.sendCommand([]any{"set_property", name, value})
	return err
}

// Command implements property.Bus.
func (m *MPV) Command(args ...any) error {
	_, err := m.sendCommand(args)
	return err
}

// Observe implements property.Observer.
func (m *MPV) Observe(name string, _ property.Format) error {
	if m.events == nil {
		m.events = NewEventListener(m.socketPath, m.dispatch)
	}
	return m.events.Observe(name)
}

// OnChange registers the receiver of property changes.
func (m *MPV) OnChange(fn func(name string, value any)) {
	m.changeMu.Lock()
	defer m.changeMu.Unlock()
	m.onChange = fn
}

func (m *MPV) dispatch(name string, value any) {
	m.changeMu.RLock()
	fn := m.onChange
	m.changeMu.RUnlock()

	if fn != nil {
		fn(name, value)
	}
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	if m.cmd != nil {
		select {
		case <-m.exited:
			return false
		default:
		}
	}

	_, err := m.sendCommand([]any{"get_property", "pid"})
	return err == nil
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.events != nil {
		m.events.Stop()
	}

	if m.socketPath == "" || m.cmd == nil {
		return nil
	}

	_, _ = m.sendCommand([]any{"quit"})

	select {
	case <-m.exited:
	case <-time.After(3 * time.Second):
		_ = killProcess(m.cmd)
	}

	_ = filesystem.API().Remove(m.socketPath)
	return nil
}

// sanitizeMediaTarget validates that a target is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty target")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in target")
	}

	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("target must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	if exists, err := filesystem.API().Exists(l); err != nil || !exists {
		return "", fmt.Errorf("media file %s does not exist", l)
	}
	return filepath.Clean(l), nil
}

// sanitizeTitle flattens a title onto one line.
func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}

var _ Engine = (*MPV)(nil)
