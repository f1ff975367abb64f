package property

import (
	"errors"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/touchctl/touchctl/log"
)

type handler struct {
	id int
	fn func(raw any)
}

// Bridge wraps a Bus with typed accessors and a subscription registry.
// It is not safe for concurrent use; callers serialize access on the event loop.
type Bridge struct {
	bus      Bus
	observed map[string]Format
	handlers map[string][]handler
	nextID   int
}

// NewBridge creates a bridge over bus.
func NewBridge(bus Bus) *Bridge {
	return &Bridge{
		bus:      bus,
		observed: make(map[string]Format),
		handlers: make(map[string][]handler),
	}
}

// Flag returns the boolean accessor for name.
func (b *Bridge) Flag(name string) Flag { return Flag{b, name} }

// Int returns the integer accessor for name.
func (b *Bridge) Int(name string) Int { return Int{b, name} }

// Float returns the single-precision accessor for name.
func (b *Bridge) Float(name string) Float { return Float{b, name} }

// Double returns the double-precision accessor for name.
func (b *Bridge) Double(name string) Double { return Double{b, name} }

// String returns the string accessor for name.
func (b *Bridge) String(name string) String { return String{b, name} }

// Command runs a raw engine command.
func (b *Bridge) Command(args ...any) error {
	if err := b.bus.Command(args...); err != nil {
		log.WithFields(logrus.Fields{"command": args}).Warnf("engine command failed: %v", err)
		return err
	}
	return nil
}

// Observed returns the property names registered for change notifications with their expected format.
func (b *Bridge) Observed() map[string]Format {
	return lo.Assign(b.observed)
}

// Notify delivers a change notification for name to every subscriber.
// Values that do not match a subscriber's expected type arrive as absent.
func (b *Bridge) Notify(name string, raw any) {
	// copy so handlers may unsubscribe while being notified
	for _, h := range append([]handler(nil), b.handlers[name]...) {
		h.fn(raw)
	}
}

func (b *Bridge) get(name string) (any, bool) {
	raw, err := b.bus.Get(name)
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			log.WithFields(logrus.Fields{"property": name}).Debugf("read failed: %v", err)
		}
		return nil, false
	}
	return raw, raw != nil
}

func (b *Bridge) set(name string, value any) error {
	if err := b.bus.Set(name, value); err != nil {
		log.WithFields(logrus.Fields{"property": name, "value": value}).Warnf("write failed: %v", err)
		return err
	}
	return nil
}

func (b *Bridge) subscribe(name string, format Format, fn func(raw any)) (cancel func()) {
	if _, ok := b.observed[name]; !ok {
		b.observed[name] = format
		if o, ok := b.bus.(Observer); ok {
			if err := o.Observe(name, format); err != nil {
				log.WithFields(logrus.Fields{"property": name}).Warnf("observe failed: %v", err)
			}
		}
	}

	b.nextID++
	id := b.nextID
	b.handlers[name] = append(b.handlers[name], handler{id: id, fn: fn})

	return func() {
		b.handlers[name] = lo.Reject(b.handlers[name], func(h handler, _ int) bool {
			return h.id == id
		})
	}
}

// coerced turns a raw-value converter into an option-producing one.
func coerced[T any](convert func(any) (T, bool)) func(any) mo.Option[T] {
	return func(raw any) mo.Option[T] {
		v, ok := convert(raw)
		if !ok {
			return mo.None[T]()
		}
		return mo.Some(v)
	}
}
