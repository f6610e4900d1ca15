package manifest

import (
	"net/url"
	"testing"

	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

const mpdFixture = `<?xml version="1.0" encoding="utf-8"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="static" mediaPresentationDuration="PT30M">
  <Period id="pre-roll" duration="PT0S">
    <AdaptationSet contentType="video">
      <Representation id="ad" bandwidth="500000" width="640" height="360"/>
    </AdaptationSet>
  </Period>
  <Period id="main">
    <AdaptationSet contentType="video" mimeType="video/mp4" frameRate="30000/1001">
      <Representation id="video=2399000" bandwidth="2399000" width="1280" height="720" codecs="avc1.64001f"/>
      <Representation id="video=5099000" bandwidth="5099000" width="1920" height="1080" codecs="avc1.640028" frameRate="25"/>
    </AdaptationSet>
    <AdaptationSet contentType="audio" mimeType="audio/mp4" lang="da" codecs="mp4a.40.2">
      <Representation id="audio=128000" bandwidth="128000"/>
    </AdaptationSet>
  </Period>
  <Period id="repeat">
    <AdaptationSet contentType="video" mimeType="video/mp4">
      <Representation id="video=2399000" bandwidth="2399000" width="1280" height="720"/>
    </AdaptationSet>
  </Period>
</MPD>
`

const mpdWithBaseURL = `<?xml version="1.0" encoding="utf-8"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" type="static">
  <BaseURL>http://cdn.example/vod/</BaseURL>
  <Period>
    <AdaptationSet contentType="video">
      <Representation id="progressive" bandwidth="1000000">
        <BaseURL>clip-1000.mp4</BaseURL>
      </Representation>
    </AdaptationSet>
  </Period>
</MPD>
`

func TestExpandDASH(t *testing.T) {
	Convey("expandDASH", t, func() {
		base := lo.Must(url.Parse("http://host/play/manifest.mpd"))

		Convey("Representations across non-empty periods", func() {
			formats, err := expandDASH([]byte(mpdFixture), base, "DASH", mo.None[int]())
			So(err, ShouldBeNil)
			So(formats, ShouldHaveLength, 3)

			Convey("Zero-length periods are skipped", func() {
				for _, f := range formats {
					So(f.ID, ShouldNotEqual, "DASH-ad")
				}
			})

			Convey("Repeated representation ids collapse", func() {
				So(formats[0].ID, ShouldEqual, "DASH-video=2399000")
				So(formats[1].ID, ShouldEqual, "DASH-video=5099000")
				So(formats[2].ID, ShouldEqual, "DASH-audio=128000")
			})

			Convey("Video representations carry dimensions and codecs", func() {
				So(formats[0].Width, ShouldEqual, 1280)
				So(formats[0].Height, ShouldEqual, 720)
				So(formats[0].Bitrate, ShouldEqual, 2399)
				So(formats[0].VideoCodec, ShouldEqual, "avc1.64001f")
			})

			Convey("Frame rates evaluate, fractions included", func() {
				So(formats[0].FPS, ShouldAlmostEqual, 29.97, 0.01)
				So(formats[1].FPS, ShouldEqual, 25)
			})

			Convey("Audio sets are audio-only with language", func() {
				audio := formats[2]
				So(audio.VideoCodec, ShouldEqual, "none")
				So(audio.AudioCodec, ShouldEqual, "mp4a.40.2")
				So(audio.Language, ShouldEqual, "da")
			})

			Convey("Without a BaseURL the manifest address is kept", func() {
				So(formats[0].URL, ShouldEqual, "http://host/play/manifest.mpd")
			})
		})

		Convey("BaseURL chains resolve", func() {
			formats, err := expandDASH([]byte(mpdWithBaseURL), base, "DASH", mo.None[int]())
			So(err, ShouldBeNil)
			So(formats, ShouldHaveLength, 1)
			So(formats[0].URL, ShouldEqual, "http://cdn.example/vod/clip-1000.mp4")
		})

		Convey("Garbage fails", func() {
			_, err := expandDASH([]byte("not xml at all"), base, "DASH", mo.None[int]())
			So(err, ShouldNotBeNil)
		})
	})
}

func TestFrameRate(t *testing.T) {
	Convey("frameRate", t, func() {
		So(frameRate("25"), ShouldEqual, 25)
		So(frameRate("30000/1001"), ShouldAlmostEqual, 29.97, 0.01)
		So(frameRate("", "50"), ShouldEqual, 50)
		So(frameRate(""), ShouldEqual, 0)
		So(frameRate("not-a-rate"), ShouldEqual, 0)
	})
}
