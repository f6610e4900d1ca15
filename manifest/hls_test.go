package manifest

import (
	"net/url"
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

const masterPlaylist = `#EXTM3U
#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="audio",NAME="Dansk",LANGUAGE="da",DEFAULT=YES,AUTOSELECT=YES,URI="audio/da.m3u8"
#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=2437000,AVERAGE-BANDWIDTH=2000000,RESOLUTION=1280x720,CODECS="avc1.64001f,mp4a.40.2",AUDIO="audio"
720/stream.m3u8
#EXT-X-STREAM-INF:PROGRAM-ID=1,BANDWIDTH=5437000,RESOLUTION=1920x1080,CODECS="avc1.640028,mp4a.40.2",AUDIO="audio"
1080/stream.m3u8
`

const mediaPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:10.000,
segment0.ts
#EXT-X-ENDLIST
`

func TestExpandHLS(t *testing.T) {
	Convey("expandHLS", t, func() {
		base := lo.Must(url.Parse("http://host/play/master.m3u8"))

		Convey("Master playlist", func() {
			formats, err := expandHLS(strings.NewReader(masterPlaylist), base, "HLS", mo.Some(1))
			So(err, ShouldBeNil)
			So(formats, ShouldHaveLength, 3)

			Convey("Variants keep playlist order and get indexed ids", func() {
				So(formats[0].ID, ShouldEqual, "HLS-0")
				So(formats[0].URL, ShouldEqual, "http://host/play/720/stream.m3u8")
				So(formats[2].ID, ShouldEqual, "HLS-1")
				So(formats[2].URL, ShouldEqual, "http://host/play/1080/stream.m3u8")
			})

			Convey("Average bandwidth wins over peak bandwidth", func() {
				So(formats[0].Bitrate, ShouldEqual, 2000)
				So(formats[2].Bitrate, ShouldEqual, 5437)
			})

			Convey("Resolution and codecs split out", func() {
				So(formats[0].Width, ShouldEqual, 1280)
				So(formats[0].Height, ShouldEqual, 720)
				So(formats[0].VideoCodec, ShouldEqual, "avc1.64001f")
				So(formats[0].AudioCodec, ShouldEqual, "mp4a.40.2")
			})

			Convey("Audio renditions appear once, audio-only", func() {
				audio := formats[1]
				So(audio.ID, ShouldEqual, "HLS-audio-Dansk")
				So(audio.URL, ShouldEqual, "http://host/play/audio/da.m3u8")
				So(audio.VideoCodec, ShouldEqual, "none")
				So(audio.Language, ShouldEqual, "da")
			})

			Convey("Preference is copied onto every format", func() {
				for _, f := range formats {
					So(f.Preference, ShouldResemble, mo.Some(1))
				}
			})
		})

		Convey("Media playlist maps to a single format", func() {
			formats, err := expandHLS(strings.NewReader(mediaPlaylist), base, "HLS", mo.None[int]())
			So(err, ShouldBeNil)
			So(formats, ShouldHaveLength, 1)
			So(formats[0].ID, ShouldEqual, "HLS")
			So(formats[0].URL, ShouldEqual, "http://host/play/master.m3u8")
		})

		Convey("Garbage fails", func() {
			_, err := expandHLS(strings.NewReader("not a playlist"), base, "HLS", mo.None[int]())
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSplitResolution(t *testing.T) {
	Convey("splitResolution", t, func() {
		w, h, ok := splitResolution("1920x1080")
		So(ok, ShouldBeTrue)
		So(w, ShouldEqual, 1920)
		So(h, ShouldEqual, 1080)

		_, _, ok = splitResolution("")
		So(ok, ShouldBeFalse)

		_, _, ok = splitResolution("wide")
		So(ok, ShouldBeFalse)
	})
}
