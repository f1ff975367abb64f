package property

import (
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// Call is one write or command received by a Memory bus.
type Call struct {
	Name  string
	Value any
	Args  []any
}

func (c Call) String() string {
	if c.Name == "" {
		return strings.Join(lo.Map(c.Args, func(a any, _ int) string { return fmt.Sprint(a) }), " ")
	}
	return fmt.Sprintf("%s=%v", c.Name, c.Value)
}

// Memory is an in-process engine: it stores property values, applies the clamps a
// real engine would, understands the seek and cycle commands, and records every call.
// It backs tests and the replay command.
type Memory struct {
	mu       sync.Mutex
	values   map[string]any
	clamps   map[string]func(m *Memory, v any) any
	observed map[string]Format
	calls    []Call
	onChange func(name string, value any)
}

// NewMemory creates an engine with mpv-like defaults: playing at speed 1, engine volume 100.
func NewMemory() *Memory {
	m := &Memory{
		values: map[string]any{
			"pause":      false,
			"speed":      1.0,
			"volume":     100.0,
			"volume-max": 130.0,
		},
		clamps:   make(map[string]func(*Memory, any) any),
		observed: make(map[string]Format),
	}

	m.clamps["volume"] = func(m *Memory, v any) any {
		f, ok := asDouble(v)
		if !ok {
			return v
		}
		max, _ := asDouble(m.values["volume-max"])
		return lo.Clamp(f, 0, max)
	}
	m.clamps["speed"] = func(_ *Memory, v any) any {
		f, ok := asDouble(v)
		if !ok {
			return v
		}
		return lo.Clamp(f, 0.01, 100)
	}
	m.clamps["time-pos"] = func(m *Memory, v any) any {
		f, ok := asDouble(v)
		if !ok {
			return v
		}
		return m.clampPosition(f)
	}

	return m
}

// OnChange registers the receiver of change notifications for observed properties.
func (m *Memory) OnChange(fn func(name string, value any)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Get implements Bus.
func (m *Memory) Get(name string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[name]
	if !ok || v == nil {
		return nil, fmt.Errorf("%s: %w", name, ErrUnavailable)
	}
	return v, nil
}

// Set implements Bus. The stored value is clamped and may differ from value.
func (m *Memory) Set(name string, value any) error {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Name: name, Value: value})
	m.mu.Unlock()

	m.store(name, value)
	return nil
}

// Put changes a value from the engine side, e.g. playback progress. It is not recorded.
func (m *Memory) Put(name string, value any) {
	m.store(name, value)
}

// Command implements Bus for "seek <target> <flags>" and "cycle <property>".
func (m *Memory) Command(args ...any) error {
	m.mu.Lock()
	m.calls = append(m.calls, Call{Args: append([]any(nil), args...)})
	m.mu.Unlock()

	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}

	switch args[0] {
	case "seek":
		if len(args) < 2 {
			return fmt.Errorf("seek: missing target")
		}
		target, ok := asDouble(args[1])
		if !ok {
			return fmt.Errorf("seek: invalid target %v", args[1])
		}
		mode := "relative"
		if len(args) > 2 {
			mode = fmt.Sprint(args[2])
		}
		if !strings.HasPrefix(mode, "absolute") {
			m.mu.Lock()
			pos, _ := asDouble(m.values["time-pos"])
			m.mu.Unlock()
			target += pos
		}
		m.store("time-pos", target)
		return nil
	case "cycle":
		if len(args) < 2 {
			return fmt.Errorf("cycle: missing property")
		}
		name := fmt.Sprint(args[1])
		m.mu.Lock()
		current, ok := asFlag(m.values[name])
		m.mu.Unlock()
		if !ok {
			return fmt.Errorf("cycle: %s is not a flag", name)
		}
		m.store(name, !current)
		return nil
	default:
		return fmt.Errorf("unsupported command %v", args[0])
	}
}

// Observe implements Observer.
func (m *Memory) Observe(name string, format Format) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observed[name] = format
	return nil
}

// Calls returns every write and command received so far.
func (m *Memory) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Call(nil), m.calls...)
}

// Writes returns the values written to name, in order.
func (m *Memory) Writes(name string) []any {
	return lo.FilterMap(m.Calls(), func(c Call, _ int) (any, bool) {
		return c.Value, c.Name == name
	})
}

// Commands returns the commands whose first argument is verb.
func (m *Memory) Commands(verb string) [][]any {
	return lo.FilterMap(m.Calls(), func(c Call, _ int) ([]any, bool) {
		return c.Args, len(c.Args) > 0 && c.Args[0] == verb
	})
}

// ClearCalls forgets the recorded calls.
func (m *Memory) ClearCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *Memory) store(name string, value any) {
	m.mu.Lock()
	if clamp, ok := m.clamps[name]; ok && value != nil {
		value = clamp(m, value)
	}
	previous, existed := m.values[name]
	m.values[name] = value
	_, observed := m.observed[name]
	notify := m.onChange
	m.mu.Unlock()

	if observed && notify != nil && (!existed || previous != value) {
		notify(name, value)
	}
}

// clampPosition must be called with mu held.
func (m *Memory) clampPosition(pos float64) float64 {
	if pos < 0 {
		return 0
	}
	if d, ok := asDouble(m.values["duration"]); ok && pos > d {
		return d
	}
	return pos
}
