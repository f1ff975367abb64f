package gesture

import (
	"time"

	"github.com/spf13/viper"
	"github.com/touchctl/touchctl/key"
)

// Options tune recognition.
type Options struct {
	// TouchSlop is the distance a pointer travels before a press becomes a drag.
	TouchSlop float64
	// LongPress is how long a press is held before it becomes a long press.
	LongPress time.Duration
	// DoubleTap is the longest wait for the second tap of a double tap.
	DoubleTap time.Duration
	// DoubleTapSlop is the farthest the second tap may land from the first.
	DoubleTapSlop float64
}

func LoadOptions() Options {
	return Options{
		TouchSlop:     viper.GetFloat64(key.GestureTouchSlop),
		LongPress:     time.Duration(viper.GetInt(key.GestureLongPressMs)) * time.Millisecond,
		DoubleTap:     time.Duration(viper.GetInt(key.GestureDoubleTapMs)) * time.Millisecond,
		DoubleTapSlop: viper.GetFloat64(key.GestureDoubleTapSlop),
	}
}
