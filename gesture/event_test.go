package gesture

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDecoder(t *testing.T) {
	Convey("Given a touch stream", t, func() {
		stream := strings.Join([]string{
			`# pinch`,
			`{"type":"down","id":0,"x":400,"y":300,"t":0}`,
			``,
			`{"type":"down","id":1,"x":600,"y":300,"t":16}`,
			`{"type":"move","id":1,"x":800.5,"y":300,"t":32}`,
			`{"type":"cancel","t":48}`,
		}, "\n")

		Convey("Every event is decoded in order", func() {
			events, err := ReadAll(strings.NewReader(stream))
			So(err, ShouldBeNil)
			So(events, ShouldHaveLength, 4)
			So(events[0], ShouldResemble, Event{Type: Down, ID: 0, X: 400, Y: 300, T: 0})
			So(events[2].X, ShouldEqual, 800.5)
			So(events[3].Type, ShouldEqual, Cancel)
		})

		Convey("Unknown types are rejected with their line", func() {
			_, err := ReadAll(strings.NewReader(stream + "\n" + `{"type":"hover"}`))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "line 7")
		})

		Convey("Malformed lines are rejected", func() {
			_, err := ReadAll(strings.NewReader(`{"type":`))
			So(err, ShouldNotBeNil)
		})
	})
}
