package source

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFormat(t *testing.T) {
	Convey("Format", t, func() {
		f := &Format{
			URL:     "http://example.com/stream.m3u8",
			ID:      "HLS-0",
			Height:  1080,
			Bitrate: 4500,
		}

		Convey("Label prefers height", func() {
			So(f.Label(), ShouldEqual, "1080p")
		})

		Convey("Label falls back to bitrate", func() {
			f.Height = 0
			So(f.Label(), ShouldEqual, "4500k")
		})

		Convey("Label falls back to the id", func() {
			f.Height = 0
			f.Bitrate = 0
			So(f.Label(), ShouldEqual, "HLS-0")
		})

		Convey("String", func() {
			So(f.String(), ShouldEqual, "HLS-0 (1080p)")
			f.Height = 0
			f.Bitrate = 0
			So(f.String(), ShouldEqual, "HLS-0")
		})

		Convey("AudioOnly", func() {
			So(f.AudioOnly(), ShouldBeFalse)
			f.VideoCodec = CodecNone
			So(f.AudioOnly(), ShouldBeTrue)
		})
	})
}

func TestTarget(t *testing.T) {
	Convey("Target", t, func() {
		Convey("Alternate audiences", func() {
			So(TargetSpokenSubtitles.Alternate(), ShouldBeTrue)
			So(TargetSignLanguage.Alternate(), ShouldBeTrue)
			So(TargetVisuallyInterpreted.Alternate(), ShouldBeTrue)
		})

		Convey("Default and free-form targets are not alternate", func() {
			So(TargetDefault.Alternate(), ShouldBeFalse)
			So(Target("Teaser").Alternate(), ShouldBeFalse)
			So(Target("").Alternate(), ShouldBeFalse)
		})
	})
}

func TestResolution(t *testing.T) {
	Convey("Resolution", t, func() {
		Convey("Best of nothing", func() {
			r := &Resolution{}
			_, ok := r.Best()
			So(ok, ShouldBeFalse)
		})

		Convey("Best prefers preference over bitrate", func() {
			r := &Resolution{Formats: []*Format{
				{ID: "Download-1300", Bitrate: 1300, Preference: mo.Some(1)},
				{ID: "Download-SignLanguage-3000", Bitrate: 3000, Preference: mo.Some(-1)},
			}}

			best, ok := r.Best()
			So(ok, ShouldBeTrue)
			So(best.ID, ShouldEqual, "Download-1300")
		})

		Convey("Best breaks preference ties by bitrate", func() {
			r := &Resolution{Formats: []*Format{
				{ID: "Download-750", Bitrate: 750},
				{ID: "Download-3000", Bitrate: 3000},
			}}

			best, _ := r.Best()
			So(best.ID, ShouldEqual, "Download-3000")
		})

		Convey("Best keeps the earliest format on a full tie", func() {
			r := &Resolution{Formats: []*Format{
				{ID: "Download"},
				{ID: "HLS-0"},
			}}

			best, _ := r.Best()
			So(best.ID, ShouldEqual, "Download")
		})
	})
}
