package manifest

import (
	"net/url"
	"testing"

	"github.com/samber/lo"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

const f4mFixture = `<?xml version="1.0" encoding="UTF-8"?>
<manifest xmlns="http://ns.adobe.com/f4m/1.0">
  <baseURL>http://cdn.example/hds/</baseURL>
  <media url="clip-1000" bitrate="1000" width="1024" height="576"/>
  <media url="clip-2400" bitrate="2400" width="1280" height="720"/>
  <media href="clip-meta"/>
</manifest>
`

func TestExpandHDS(t *testing.T) {
	Convey("expandHDS", t, func() {
		base := lo.Must(url.Parse("http://host/play/manifest.f4m?hdcore=3.3.0"))

		formats, err := expandHDS([]byte(f4mFixture), base, "HDS", mo.Some(-1))
		So(err, ShouldBeNil)
		So(formats, ShouldHaveLength, 3)

		Convey("Bitrate names the rendition, index when absent", func() {
			So(formats[0].ID, ShouldEqual, "HDS-1000")
			So(formats[1].ID, ShouldEqual, "HDS-2400")
			So(formats[2].ID, ShouldEqual, "HDS-2")
		})

		Convey("Fragments stay addressed through the manifest", func() {
			for _, f := range formats {
				So(f.URL, ShouldEqual, "http://host/play/manifest.f4m?hdcore=3.3.0")
				So(f.Ext, ShouldEqual, "flv")
			}
		})

		Convey("Dimensions and preference carry over", func() {
			So(formats[1].Width, ShouldEqual, 1280)
			So(formats[1].Height, ShouldEqual, 720)
			So(formats[1].Preference, ShouldResemble, mo.Some(-1))
		})
	})
}
