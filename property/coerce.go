package property

import (
	"encoding/json"
	"math"

	"github.com/spf13/cast"
)

func asFlag(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch t {
		case "yes":
			return true, true
		case "no":
			return false, true
		}
	}
	return false, false
}

func asDouble(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// asInt truncates fractional numbers, matching how the engine converts a double property read as int64.
func asInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case int32:
		return int(t), true
	}
	f, ok := asDouble(v)
	if !ok {
		return 0, false
	}
	// int conversion of an out-of-range float is implementation-defined.
	if f >= math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

// asString accepts any scalar; the engine can render every property as a string.
func asString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	switch t := v.(type) {
	case json.Number:
		return string(t), true
	case string, bool, float64, float32, int, int64, int32:
	default:
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}

func asFloat(v any) (float32, bool) {
	f, ok := asDouble(v)
	if !ok || math.Abs(f) > math.MaxFloat32 {
		return 0, false
	}
	return float32(f), true
}
