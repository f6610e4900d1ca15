package custom

import (
	"testing"

	"github.com/gense-cli/gense/source"
	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

func TestProgramFromTable(t *testing.T) {
	Convey("programFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should extract a program from a valid Lua table", func() {
			tbl := L.NewTable()
			tbl.RawSetString("title", lua.LString("Borgen"))
			tbl.RawSetString("url", lua.LString("https://example.com/borgen"))
			tbl.RawSetString("thumbnail", lua.LString("https://example.com/cover.jpg"))

			program, err := programFromTable(tbl, 0)
			So(err, ShouldBeNil)
			So(program.Title, ShouldEqual, "Borgen")
			So(program.ID, ShouldEqual, "https://example.com/borgen")
			So(program.Thumbnail, ShouldEqual, "https://example.com/cover.jpg")
		})

		Convey("Should fail when required field 'title' is missing", func() {
			tbl := L.NewTable()
			tbl.RawSetString("url", lua.LString("https://example.com"))

			_, err := programFromTable(tbl, 0)
			So(err, ShouldNotBeNil)
		})

		Convey("Should read the live flag", func() {
			tbl := L.NewTable()
			tbl.RawSetString("title", lua.LString("Kanal 1"))
			tbl.RawSetString("url", lua.LString("https://example.com/k1"))
			tbl.RawSetString("live", lua.LTrue)

			program, err := programFromTable(tbl, 3)
			So(err, ShouldBeNil)
			So(program.Live, ShouldBeTrue)
			So(program.Index, ShouldEqual, 3)
		})
	})
}

func TestAssetFromTable(t *testing.T) {
	Convey("assetFromTable", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("Should extract an asset with links and subtitles", func() {
			link := L.NewTable()
			link.RawSetString("uri", lua.LString("https://example.com/stream.m3u8"))
			link.RawSetString("transport", lua.LString("HLS"))

			sub := L.NewTable()
			sub.RawSetString("uri", lua.LString("https://example.com/subs.vtt"))
			sub.RawSetString("language", lua.LString("Danish"))
			sub.RawSetString("mime", lua.LString("text/vtt"))

			links := L.NewTable()
			links.Append(link)
			subs := L.NewTable()
			subs.Append(sub)

			tbl := L.NewTable()
			tbl.RawSetString("kind", lua.LString("VideoResource"))
			tbl.RawSetString("target", lua.LString("Default"))
			tbl.RawSetString("restricted", lua.LTrue)
			tbl.RawSetString("duration_ms", lua.LNumber(90000))
			tbl.RawSetString("links", links)
			tbl.RawSetString("subtitles", subs)

			asset, err := assetFromTable(tbl)
			So(err, ShouldBeNil)
			So(asset.Kind, ShouldEqual, source.KindVideo)
			So(asset.Target, ShouldEqual, source.TargetDefault)
			So(asset.Restricted, ShouldBeTrue)
			So(asset.DurationMs, ShouldEqual, 90000)
			So(asset.Links, ShouldHaveLength, 1)
			So(asset.Links[0].Transport, ShouldEqual, source.TransportHLS)
			So(asset.Subtitles, ShouldHaveLength, 1)
			So(asset.Subtitles[0].Language, ShouldEqual, "Danish")
		})

		Convey("Should fail when kind is missing", func() {
			tbl := L.NewTable()
			_, err := assetFromTable(tbl)
			So(err, ShouldNotBeNil)
		})

		Convey("Should fail when a link has neither uri nor encrypted_uri", func() {
			link := L.NewTable()
			link.RawSetString("transport", lua.LString("HLS"))

			links := L.NewTable()
			links.Append(link)

			tbl := L.NewTable()
			tbl.RawSetString("kind", lua.LString("VideoResource"))
			tbl.RawSetString("links", links)

			_, err := assetFromTable(tbl)
			So(err, ShouldNotBeNil)
		})

		Convey("Should pass encrypted links through untouched", func() {
			link := L.NewTable()
			link.RawSetString("encrypted_uri", lua.LString("E1AABB"))
			link.RawSetString("bitrate", lua.LNumber(1125))

			links := L.NewTable()
			links.Append(link)

			tbl := L.NewTable()
			tbl.RawSetString("kind", lua.LString("AudioResource"))
			tbl.RawSetString("links", links)

			asset, err := assetFromTable(tbl)
			So(err, ShouldBeNil)
			So(asset.Links[0].EncryptedURI, ShouldEqual, "E1AABB")
			So(asset.Links[0].Bitrate, ShouldEqual, 1125)
		})
	})
}
