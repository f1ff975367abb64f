package gesture

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/samber/lo"
)

// Type is the kind of a touch event.
type Type string

const (
	Down   Type = "down"
	Move   Type = "move"
	Up     Type = "up"
	Cancel Type = "cancel"
)

var types = []Type{Down, Move, Up, Cancel}

// Event is one raw pointer event. Streams carry one JSON object per line.
type Event struct {
	Type Type    `json:"type" jsonschema:"enum=down,enum=move,enum=up,enum=cancel,description=Pointer transition"`
	ID   int     `json:"id" jsonschema:"description=Pointer identifier, stable from down to up"`
	X    float64 `json:"x" jsonschema:"description=Horizontal position in viewport pixels"`
	Y    float64 `json:"y" jsonschema:"description=Vertical position in viewport pixels"`
	T    int64   `json:"t" jsonschema:"minimum=0,description=Milliseconds since the start of the stream"`
}

func (e Event) String() string {
	return fmt.Sprintf("%s#%d (%.1f, %.1f) @%dms", e.Type, e.ID, e.X, e.Y, e.T)
}

// Validate rejects unknown event types.
func (e Event) Validate() error {
	if !lo.Contains(types, e.Type) {
		return fmt.Errorf("unknown event type %q", e.Type)
	}
	return nil
}

// Decoder reads events from a line-oriented stream. Blank lines and lines
// starting with # are skipped.
type Decoder struct {
	scanner *bufio.Scanner
	line    int
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{scanner: bufio.NewScanner(r)}
}

// Next returns the next event, or io.EOF at the end of the stream.
func (d *Decoder) Next() (Event, error) {
	for d.scanner.Scan() {
		d.line++
		line := bytes.TrimSpace(d.scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil {
			return Event{}, fmt.Errorf("line %d: %w", d.line, err)
		}
		if err := ev.Validate(); err != nil {
			return Event{}, fmt.Errorf("line %d: %w", d.line, err)
		}
		return ev, nil
	}

	if err := d.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}

// ReadAll decodes every event of r.
func ReadAll(r io.Reader) ([]Event, error) {
	var (
		events []Event
		d      = NewDecoder(r)
	)
	for {
		ev, err := d.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
}
