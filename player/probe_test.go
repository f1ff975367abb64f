package player

import (
	"errors"
	"os/exec"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/touchctl/touchctl/filesystem"
	"github.com/touchctl/touchctl/version"
)

func TestProbe(t *testing.T) {
	Convey("Given a stubbed version command", t, func() {
		filesystem.SetMemMapFs()

		sh, err := exec.LookPath("sh")
		if err != nil {
			SkipSo(err, ShouldBeNil)
			return
		}

		original := runVersion
		Reset(func() { runVersion = original })

		var runs []string
		output, failure := "mpv v0.38.0-4-gabc Copyright", error(nil)
		runVersion = func(path string) (string, error) {
			runs = append(runs, path)
			return output, failure
		}

		Convey("The first probe runs the binary and later ones read the cache", func() {
			v, err := Probe("sh")
			So(err, ShouldBeNil)
			So(v, ShouldResemble, version.Version{Major: 0, Minor: 38, Patch: 0})
			So(runs, ShouldResemble, []string{sh})

			output = "mpv 0.40.0"
			v, err = Probe("sh")
			So(err, ShouldBeNil)
			So(v.String(), ShouldEqual, "0.38.0")
			So(runs, ShouldHaveLength, 1)
		})

		Convey("Failed runs are reported and not cached", func() {
			failure = errors.New("exit status 1")
			_, err := Probe("sh")
			So(err, ShouldNotBeNil)

			failure = nil
			output = "mpv 0.37.0"
			v, err := Probe("sh")
			So(err, ShouldBeNil)
			So(v.String(), ShouldEqual, "0.37.0")
			So(runs, ShouldHaveLength, 2)
		})

		Convey("Unparseable output is an error", func() {
			output = "not a player"
			_, err := Probe("sh")
			So(err, ShouldNotBeNil)
		})

		Convey("Missing binaries fail before running anything", func() {
			_, err := Probe("touchctl-no-such-player")
			So(err, ShouldNotBeNil)
			So(runs, ShouldBeEmpty)
		})
	})
}
