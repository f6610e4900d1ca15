package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Reset(SetOsFs)

		Convey("Should default to OsFs", func() {
			SetOsFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			fs := API()
			So(fs, ShouldNotBeNil)
			So(fs.Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Should discard in-memory state on reinstall", func() {
			SetMemMapFs()
			So(API().WriteFile("/probe", []byte("x"), 0o644), ShouldBeNil)

			exists, _ := API().Exists("/probe")
			So(exists, ShouldBeTrue)

			SetMemMapFs()
			exists, _ = API().Exists("/probe")
			So(exists, ShouldBeFalse)
		})
	})
}
