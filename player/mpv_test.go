package player

import (
	"testing"

	"github.com/gense-cli/gense/key"
	"github.com/spf13/viper"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Should accept http(s) URLs untouched", func() {
			url := "https://cdn.example.com/stream.m3u8?token=abc"
			got, err := sanitizeMediaTarget(url)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, url)
		})

		Convey("Should reject empty input", func() {
			_, err := sanitizeMediaTarget("  ")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject flag-like input", func() {
			_, err := sanitizeMediaTarget("--script=evil.lua")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject control characters", func() {
			_, err := sanitizeMediaTarget("https://example.com/a\nb")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject unsupported schemes", func() {
			_, err := sanitizeMediaTarget("ftp://example.com/file.mp4")
			So(err, ShouldNotBeNil)
		})

		Convey("Should clean local file paths", func() {
			got, err := sanitizeMediaTarget("videos//show/./ep1.mp4")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "videos/show/ep1.mp4")
		})
	})
}

func TestSanitizeTitle(t *testing.T) {
	Convey("sanitizeTitle", t, func() {
		Convey("Should collapse newlines and tabs", func() {
			So(sanitizeTitle("Matador\n(1978)\tE01"), ShouldEqual, "Matador (1978) E01")
		})

		Convey("Should strip null bytes", func() {
			So(sanitizeTitle("Borgen\x00"), ShouldEqual, "Borgen")
		})
	})
}

func TestBinarySelection(t *testing.T) {
	Convey("Given the player configuration", t, func() {
		mpv := NewMPV()

		Convey("When no binary is configured", func() {
			viper.Set(key.Player, "")
			So(mpv.binary(), ShouldEqual, "mpv")
		})

		Convey("When a custom binary is configured", func() {
			viper.Set(key.Player, "/opt/mpv/bin/mpv")
			defer viper.Set(key.Player, "mpv")

			So(mpv.binary(), ShouldEqual, "/opt/mpv/bin/mpv")
		})

		Convey("When iina is configured", func() {
			viper.Set(key.Player, "iina")
			defer viper.Set(key.Player, "mpv")

			Convey("New should return the IINA backend", func() {
				_, ok := New().(*IINA)
				So(ok, ShouldBeTrue)
			})

			Convey("The mpv fallback binary should stay mpv", func() {
				So(mpv.binary(), ShouldEqual, "mpv")
			})
		})
	})
}
