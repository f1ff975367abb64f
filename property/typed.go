package property

import "github.com/samber/mo"

// Flag is a boolean property such as "pause".
type Flag struct {
	b    *Bridge
	name string
}

func (p Flag) Name() string { return p.name }

// Get reads the property; unset or mistyped values are absent.
func (p Flag) Get() mo.Option[bool] {
	raw, ok := p.b.get(p.name)
	if !ok {
		return mo.None[bool]()
	}
	return coerced(asFlag)(raw)
}

func (p Flag) Set(v bool) error { return p.b.set(p.name, v) }

// Observe subscribes fn to change notifications.
func (p Flag) Observe(fn func(mo.Option[bool])) (cancel func()) {
	convert := coerced(asFlag)
	return p.b.subscribe(p.name, FormatFlag, func(raw any) { fn(convert(raw)) })
}

// Int is an integer property such as "volume".
type Int struct {
	b    *Bridge
	name string
}

func (p Int) Name() string { return p.name }

func (p Int) Get() mo.Option[int] {
	raw, ok := p.b.get(p.name)
	if !ok {
		return mo.None[int]()
	}
	return coerced(asInt)(raw)
}

func (p Int) Set(v int) error { return p.b.set(p.name, v) }

func (p Int) Observe(fn func(mo.Option[int])) (cancel func()) {
	convert := coerced(asInt)
	return p.b.subscribe(p.name, FormatInt64, func(raw any) { fn(convert(raw)) })
}

// Float is a single-precision property such as "speed".
type Float struct {
	b    *Bridge
	name string
}

func (p Float) Name() string { return p.name }

func (p Float) Get() mo.Option[float32] {
	raw, ok := p.b.get(p.name)
	if !ok {
		return mo.None[float32]()
	}
	return coerced(asFloat)(raw)
}

func (p Float) Set(v float32) error { return p.b.set(p.name, float64(v)) }

func (p Float) Observe(fn func(mo.Option[float32])) (cancel func()) {
	convert := coerced(asFloat)
	return p.b.subscribe(p.name, FormatDouble, func(raw any) { fn(convert(raw)) })
}

// Double is a double-precision property such as "time-pos".
type Double struct {
	b    *Bridge
	name string
}

func (p Double) Name() string { return p.name }

func (p Double) Get() mo.Option[float64] {
	raw, ok := p.b.get(p.name)
	if !ok {
		return mo.None[float64]()
	}
	return coerced(asDouble)(raw)
}

func (p Double) Set(v float64) error { return p.b.set(p.name, v) }

func (p Double) Observe(fn func(mo.Option[float64])) (cancel func()) {
	convert := coerced(asDouble)
	return p.b.subscribe(p.name, FormatDouble, func(raw any) { fn(convert(raw)) })
}

// String is a string property such as a user-data entry.
type String struct {
	b    *Bridge
	name string
}

func (p String) Name() string { return p.name }

func (p String) Get() mo.Option[string] {
	raw, ok := p.b.get(p.name)
	if !ok {
		return mo.None[string]()
	}
	return coerced(asString)(raw)
}

func (p String) Set(v string) error { return p.b.set(p.name, v) }

func (p String) Observe(fn func(mo.Option[string])) (cancel func()) {
	convert := coerced(asString)
	return p.b.subscribe(p.name, FormatString, func(raw any) { fn(convert(raw)) })
}
