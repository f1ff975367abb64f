package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/touchctl/touchctl/filesystem"
	"github.com/touchctl/touchctl/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetInt(key.AudioMaxVolume), ShouldEqual, 150)
			So(viper.GetFloat64(key.ViewportMaxZoom), ShouldEqual, 2.0)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("gesture.seek_sensitivity")
			So(result, ShouldEqual, "gesture_seek_sensitivity")
		})
	})
}

func TestParse(t *testing.T) {
	Convey("Parse", t, func() {
		Convey("Should convert to the registered type", func() {
			v, err := Parse(key.AudioVolumeBoostCap, []string{"20"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 20)

			v, err = Parse(key.GestureSeekSensitivity, []string{"0.3"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 0.3)

			v, err = Parse(key.GestureSeek, []string{"false"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, false)

			v, err = Parse(key.GestureCenterDoubleTap, []string{"none"})
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "none")
		})

		Convey("Should reject malformed values", func() {
			_, err := Parse(key.AudioMaxVolume, []string{"loud"})
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject unknown keys", func() {
			_, err := Parse("gesture.nope", []string{"1"})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field", t, func() {
		f := Default[key.GestureSeek]

		Convey("Env should carry the application prefix", func() {
			So(f.Env(), ShouldEqual, "TOUCHCTL_GESTURE_SEEK")
		})

		Convey("typeName should describe floats", func() {
			fl := Default[key.ViewportMinZoom]
			So(fl.typeName(), ShouldEqual, "float")
		})
	})
}
