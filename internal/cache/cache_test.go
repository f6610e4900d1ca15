package cache

import (
	"testing"
	"time"

	"github.com/gense-cli/gense/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerateKey(t *testing.T) {
	Convey("GenerateKey", t, func() {
		Convey("Should be deterministic", func() {
			So(GenerateKey("matador", "drtv"), ShouldEqual, GenerateKey("matador", "drtv"))
		})

		Convey("Should ignore spacing and case", func() {
			So(GenerateKey("Ma Ta Dor", "drtv"), ShouldEqual, GenerateKey("matador", "drtv"))
		})

		Convey("Should scope by provider", func() {
			So(GenerateKey("matador", "drtv"), ShouldNotEqual, GenerateKey("matador", "other"))
		})
	})
}

func TestReadWrite(t *testing.T) {
	Convey("Cache round trip", t, func() {
		filesystem.SetMemMapFs()
		Reset(filesystem.SetOsFs)

		type payload struct {
			Title string `json:"title"`
		}

		So(Write("probe", payload{Title: "Matador"}), ShouldBeNil)

		var got payload
		So(Read("probe", &got), ShouldBeTrue)
		So(got.Title, ShouldEqual, "Matador")

		Convey("Should miss on unknown keys", func() {
			So(Read("unknown", &got), ShouldBeFalse)
		})
	})
}

func TestTTL(t *testing.T) {
	Convey("TTL", t, func() {
		Convey("Should fall back to a week", func() {
			So(TTL(), ShouldEqual, 7*24*time.Hour)
		})
	})
}
