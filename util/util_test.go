package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "second", "seconds"), ShouldEqual, "1 second")
		So(Quantify(-1, "second", "seconds"), ShouldEqual, "-1 second")
		So(Quantify(20, "second", "seconds"), ShouldEqual, "20 seconds")
	})
}

func TestClamp(t *testing.T) {
	Convey("Clamp", t, func() {
		So(Clamp(5, 0, 10), ShouldEqual, 5)
		So(Clamp(-3, 0, 10), ShouldEqual, 0)
		So(Clamp(12.5, 0.0, 10.0), ShouldEqual, 10.0)

		Convey("Should prefer the lower bound when bounds are inverted", func() {
			So(Clamp(3, 5, 1), ShouldEqual, 5)
		})
	})
}

func TestTruncate(t *testing.T) {
	Convey("Truncate", t, func() {
		So(Truncate(2.9), ShouldEqual, 2)
		So(Truncate(-2.9), ShouldEqual, -2)
	})
}

func TestFormatSeconds(t *testing.T) {
	Convey("FormatSeconds", t, func() {
		So(FormatSeconds(5), ShouldEqual, "0:05")
		So(FormatSeconds(125.7), ShouldEqual, "2:05")
		So(FormatSeconds(3725), ShouldEqual, "1:02:05")
		So(FormatSeconds(-30), ShouldEqual, "-0:30")
	})
}
