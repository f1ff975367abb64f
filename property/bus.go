// Package property is the typed bridge between the gesture core and the playback engine's property bus.
//
// Every read and write of engine state goes through a Bridge. The bus underneath is
// generic and string-keyed; the Bridge hands out typed accessors (Flag, Int, Float,
// Double, String) that turn unset or mistyped values into mo.None instead of errors.
package property

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned by a Bus when a property is unset or unknown.
var ErrUnavailable = errors.New("property unavailable")

// Format is the value kind a property is expected to carry.
type Format int

const (
	FormatNone Format = iota
	FormatFlag
	FormatInt64
	FormatFloat
	FormatDouble
	FormatString
)

func (f Format) String() string {
	switch f {
	case FormatFlag:
		return "flag"
	case FormatInt64:
		return "int64"
	case FormatFloat:
		return "float"
	case FormatDouble:
		return "double"
	case FormatString:
		return "string"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Bus is the engine side of the bridge: raw property access plus commands.
type Bus interface {
	// Get returns the current raw value of a property.
	Get(name string) (any, error)

	// Set writes a raw value. The engine may clamp or reject it.
	Set(name string, value any) error

	// Command runs an engine command such as "seek".
	Command(args ...any) error
}

// Observer is implemented by buses that can push change notifications.
// Notifications are delivered by the bus owner calling Bridge.Notify.
type Observer interface {
	Observe(name string, format Format) error
}
