package drtv

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/gense-cli/gense/source"
	. "github.com/smartystreets/goconvey/convey"
)

const programCardFixture = `{
	"Slug": "historien-om-danmark-stenalder",
	"Title": "Stenalder",
	"SeriesTitle": "Historien om Danmark",
	"EpisodeNumber": 1,
	"Description": "Danmarkshistorien begynder.",
	"PrimaryImageUri": "https://asset.dr.dk/imagescaler/1.jpg",
	"PrimaryAsset": {
		"Kind": "VideoResource",
		"Target": "Default",
		"RestrictedToDenmark": true,
		"DurationInMilliseconds": 3504618,
		"Links": [
			{"Uri": "https://drod.net/hls/master.m3u8", "Target": "HLS", "Bitrate": 0},
			{"EncryptedUri": "E1AABBCC", "Target": "Download", "Bitrate": 1125, "FileFormat": "mp4"}
		],
		"SubtitlesList": [
			{"Uri": "https://drod.net/subs.vtt", "Language": "Danish", "MimeType": "text/vtt"}
		]
	},
	"SecondaryAssets": [
		{
			"Kind": "VideoResource",
			"Target": "SignLanguage",
			"Links": [{"Uri": "https://drod.net/sign.mp4", "Target": "Download", "Bitrate": 750}]
		}
	]
}`

func TestMapAsset(t *testing.T) {
	Convey("Given an expanded programcard", t, func() {
		var card programCard
		So(json.Unmarshal([]byte(programCardFixture), &card), ShouldBeNil)

		Convey("When mapping the primary asset", func() {
			asset := mapAsset(card.PrimaryAsset)

			Convey("The asset fields should carry over", func() {
				So(asset.Kind, ShouldEqual, source.KindVideo)
				So(asset.Target, ShouldEqual, source.TargetDefault)
				So(asset.Restricted, ShouldBeTrue)
				So(asset.DurationMs, ShouldEqual, 3504618)
			})

			Convey("Links should keep their transports and bitrates", func() {
				So(asset.Links, ShouldHaveLength, 2)
				So(asset.Links[0].Transport, ShouldEqual, source.TransportHLS)
				So(asset.Links[1].EncryptedURI, ShouldEqual, "E1AABBCC")
				So(asset.Links[1].Bitrate, ShouldEqual, 1125)
				So(asset.Links[1].FileFormat, ShouldEqual, "mp4")
			})

			Convey("Subtitle references should keep the provider naming", func() {
				So(asset.Subtitles, ShouldHaveLength, 1)
				So(asset.Subtitles[0].Language, ShouldEqual, "Danish")
				So(asset.Subtitles[0].MimeType, ShouldEqual, "text/vtt")
			})
		})

		Convey("When mapping a secondary asset", func() {
			asset := mapAsset(card.SecondaryAssets[0])

			So(asset.Target, ShouldEqual, source.TargetSignLanguage)
			So(asset.Restricted, ShouldBeFalse)
			So(asset.Links[0].Bitrate, ShouldEqual, 750)
		})
	})
}

func TestDisplayTitle(t *testing.T) {
	Convey("displayTitle", t, func() {
		Convey("Should compose series and episode", func() {
			var card programCard
			So(json.Unmarshal([]byte(programCardFixture), &card), ShouldBeNil)
			So(displayTitle(&card), ShouldEqual, "Historien om Danmark - Stenalder (1)")
		})

		Convey("Should pass a standalone title through", func() {
			So(displayTitle(&programCard{Title: "Matador"}), ShouldEqual, "Matador")
		})

		Convey("Should not repeat an identical series title", func() {
			So(displayTitle(&programCard{Title: "TV Avisen", SeriesTitle: "TV Avisen"}), ShouldEqual, "TV Avisen")
		})
	})
}

func TestLiveTransport(t *testing.T) {
	Convey("liveTransport", t, func() {
		So(liveTransport("HLS"), ShouldEqual, source.TransportHLS)
		So(liveTransport("DASH"), ShouldEqual, source.TransportDASH)
		So(liveTransport("DASH_B"), ShouldEqual, source.TransportDASH)
		So(liveTransport("HDS"), ShouldBeEmpty)
	})
}

func TestProgramFromURL(t *testing.T) {
	Convey("ProgramFromURL", t, func() {
		d := New()

		parse := func(raw string) *url.URL {
			u, err := url.Parse(raw)
			So(err, ShouldBeNil)
			return u
		}

		Convey("Should route a drtv watch page", func() {
			program, ok := d.ProgramFromURL(parse("https://www.dr.dk/drtv/se/bonderoeven_71769"))
			So(ok, ShouldBeTrue)
			So(program.ID, ShouldEqual, "bonderoeven_71769")
			So(program.Live, ShouldBeFalse)
		})

		Convey("Should route a legacy tv page", func() {
			program, ok := d.ProgramFromURL(parse("https://www.dr.dk/tv/se/historien-om-danmark/-/historien-om-danmark-stenalder"))
			So(ok, ShouldBeTrue)
			So(program.ID, ShouldEqual, "historien-om-danmark-stenalder")
		})

		Convey("Should route a live channel page", func() {
			program, ok := d.ProgramFromURL(parse("https://www.dr.dk/drtv/kanal/dr1"))
			So(ok, ShouldBeTrue)
			So(program.ID, ShouldEqual, "dr1")
			So(program.Live, ShouldBeTrue)
		})

		Convey("Should reject unrelated paths", func() {
			_, ok := d.ProgramFromURL(parse("https://www.dr.dk/nyheder"))
			So(ok, ShouldBeFalse)
		})
	})
}
