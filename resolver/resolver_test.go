package resolver

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gense-cli/gense/source"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Resolve", t, func() {
		fetcher := &fakeFetcher{count: 2}
		prober := &fakeProber{dead: map[string]bool{}}

		var warnings []string
		r := New(Options{
			Fetcher:         fetcher,
			Prober:          prober,
			Languages:       map[string]string{"Danish": "da"},
			DefaultLanguage: "da",
			Countries:       []string{"DK", "FO", "GL"},
			Warn: func(format string, args ...any) {
				warnings = append(warnings, fmt.Sprintf(format, args...))
			},
		})

		Convey("Direct link with an alternate-audience target", func() {
			res, err := r.Resolve([]*source.Asset{{
				Kind:   source.KindVideo,
				Target: source.TargetSignLanguage,
				Links: []*source.Link{{
					URI:        "http://host/clip.mp4",
					Transport:  "Download",
					Bitrate:    750,
					FileFormat: "mp4",
				}},
			}})

			So(err, ShouldBeNil)
			So(res.Formats, ShouldHaveLength, 1)
			So(res.Formats[0].ID, ShouldEqual, "Download-SignLanguage-750")
			So(res.Formats[0].Preference, ShouldResemble, mo.Some(-1))
			So(res.Formats[0].Ext, ShouldEqual, "mp4")
			So(res.Formats[0].Bitrate, ShouldEqual, 750)
		})

		Convey("Default target raises preference without renaming", func() {
			res, err := r.Resolve([]*source.Asset{{
				Kind:   source.KindVideo,
				Target: source.TargetDefault,
				Links: []*source.Link{{
					URI:       "http://host/clip.mp4",
					Transport: "Download",
					Bitrate:   1300,
				}},
			}})

			So(err, ShouldBeNil)
			So(res.Formats[0].ID, ShouldEqual, "Download-1300")
			So(res.Formats[0].Preference, ShouldResemble, mo.Some(1))
		})

		Convey("Free-form targets stay neutral", func() {
			res, err := r.Resolve([]*source.Asset{{
				Kind:   source.KindVideo,
				Target: "Teaser",
				Links: []*source.Link{{
					URI:       "http://host/clip.mp4",
					Transport: "Download",
				}},
			}})

			So(err, ShouldBeNil)
			So(res.Formats[0].ID, ShouldEqual, "Download")
			So(res.Formats[0].Preference.IsAbsent(), ShouldBeTrue)
		})

		Convey("Audio asset over HDS forces video codec none", func() {
			res, err := r.Resolve([]*source.Asset{{
				Kind:   source.KindAudio,
				Target: source.TargetDefault,
				Links: []*source.Link{{
					URI:       "http://host/manifest.f4m",
					Transport: source.TransportHDS,
				}},
			}})

			So(err, ShouldBeNil)
			So(res.Formats, ShouldHaveLength, 2)
			for _, f := range res.Formats {
				So(f.VideoCodec, ShouldEqual, source.CodecNone)
			}
			So(fetcher.urls, ShouldHaveLength, 1)
			So(fetcher.urls[0], ShouldEqual, "http://host/manifest.f4m"+hdsQuery)
		})

		Convey("Encrypted uri resolves before dispatch", func() {
			token := encryptToken("https://example/enc.mp4?volatile=1", testIVHex)

			res, err := r.Resolve([]*source.Asset{{
				Kind:  source.KindVideo,
				Links: []*source.Link{{EncryptedURI: token, Transport: "Download"}},
			}})

			So(err, ShouldBeNil)
			So(res.Formats[0].URL, ShouldEqual, "https://example/enc.mp4")
			So(warnings, ShouldBeEmpty)
		})

		Convey("Undecryptable link warns and keeps its siblings", func() {
			res, err := r.Resolve([]*source.Asset{{
				Kind: source.KindVideo,
				Links: []*source.Link{
					{EncryptedURI: "bogus", Transport: "Download"},
					{URI: "http://host/good.mp4", Transport: "Download"},
				},
			}})

			So(err, ShouldBeNil)
			So(res.Formats, ShouldHaveLength, 1)
			So(res.Formats[0].URL, ShouldEqual, "http://host/good.mp4")
			So(warnings, ShouldHaveLength, 1)
		})

		Convey("Manifest failure warns and keeps its siblings", func() {
			fetcher.err = errors.New("503")

			res, err := r.Resolve([]*source.Asset{{
				Kind: source.KindVideo,
				Links: []*source.Link{
					{URI: "http://host/master.m3u8", Transport: source.TransportHLS},
					{URI: "http://host/clip.mp4", Transport: "Download"},
				},
			}})

			So(err, ShouldBeNil)
			So(res.Formats, ShouldHaveLength, 1)
			So(res.Formats[0].ID, ShouldEqual, "Download")
			So(warnings, ShouldHaveLength, 1)
		})

		Convey("A link with neither uri is skipped silently", func() {
			_, err := r.Resolve([]*source.Asset{{
				Kind:  source.KindVideo,
				Links: []*source.Link{{Transport: "Download"}},
			}})

			So(err, ShouldEqual, ErrNoPlayable)
			So(warnings, ShouldBeEmpty)
		})

		Convey("HLS variants always go last, order otherwise kept", func() {
			res, err := r.Resolve([]*source.Asset{{
				Kind: source.KindVideo,
				Links: []*source.Link{
					{URI: "http://host/master.m3u8", Transport: source.TransportHLS},
					{URI: "http://host/a.mp4", Transport: "Download", Bitrate: 750},
					{URI: "http://host/b.mp4", Transport: "Download", Bitrate: 1300},
				},
			}})

			So(err, ShouldBeNil)
			So(ids(res.Formats), ShouldResemble, []string{
				"Download-750", "Download-1300", "HLS-0", "HLS-1",
			})
		})

		Convey("Prober drops dead formats and never sees HLS", func() {
			prober.dead["http://host/a.mp4"] = true

			res, err := r.Resolve([]*source.Asset{{
				Kind: source.KindVideo,
				Links: []*source.Link{
					{URI: "http://host/master.m3u8", Transport: source.TransportHLS},
					{URI: "http://host/a.mp4", Transport: "Download", Bitrate: 750},
					{URI: "http://host/b.mp4", Transport: "Download", Bitrate: 1300},
				},
			}})

			So(err, ShouldBeNil)
			So(ids(res.Formats), ShouldResemble, []string{
				"Download-1300", "HLS-0", "HLS-1",
			})
			So(prober.probed, ShouldResemble, []string{
				"http://host/a.mp4", "http://host/b.mp4",
			})
		})

		Convey("Restriction", func() {
			locked := &source.Asset{Kind: source.KindVideo, Restricted: true}

			Convey("Empty result with a locked asset is geo-restricted", func() {
				_, err := r.Resolve([]*source.Asset{locked})

				var restrictedErr *RestrictedError
				So(errors.As(err, &restrictedErr), ShouldBeTrue)
				So(restrictedErr.Countries, ShouldResemble, []string{"DK", "FO", "GL"})
			})

			Convey("Empty result without a lock is just unplayable", func() {
				_, err := r.Resolve([]*source.Asset{{Kind: source.KindVideo}})
				So(errors.Is(err, ErrNoPlayable), ShouldBeTrue)
			})

			Convey("A locked asset with playable formats is fine", func() {
				playable := &source.Asset{
					Kind:  source.KindVideo,
					Links: []*source.Link{{URI: "http://host/clip.mp4", Transport: "Download"}},
				}

				res, err := r.Resolve([]*source.Asset{locked, playable})
				So(err, ShouldBeNil)
				So(res.Formats, ShouldHaveLength, 1)
			})
		})

		Convey("First image asset wins the thumbnail", func() {
			res, err := r.Resolve([]*source.Asset{
				{Kind: source.KindImage, URI: "http://host/first.jpg"},
				{Kind: source.KindImage, URI: "http://host/second.jpg"},
				{Kind: source.KindVideo, Links: []*source.Link{{URI: "http://host/clip.mp4", Transport: "Download"}}},
			})

			So(err, ShouldBeNil)
			So(res.Thumbnail, ShouldEqual, "http://host/first.jpg")
		})

		Convey("Longest declared duration wins", func() {
			res, err := r.Resolve([]*source.Asset{
				{Kind: source.KindVideo, DurationMs: 100_000, Links: []*source.Link{{URI: "http://host/clip.mp4", Transport: "Download"}}},
				{Kind: source.KindAudio, DurationMs: 250_000},
			})

			So(err, ShouldBeNil)
			So(res.Duration, ShouldEqual, 250*time.Second)
		})

		Convey("Subtitles normalize per the language table", func() {
			res, err := r.Resolve([]*source.Asset{{
				Kind:  source.KindVideo,
				Links: []*source.Link{{URI: "http://host/clip.mp4", Transport: "Download"}},
				Subtitles: []*source.SubtitleRef{
					{Language: "Danish", URI: "http://host/da.vtt", MimeType: "text/vtt"},
					{URI: "http://host/unnamed.ttml", MimeType: "application/ttml+xml"},
					{Language: "Norwegian", URI: "http://host/no.sub"},
					{Language: "Danish"},
				},
			}})

			So(err, ShouldBeNil)
			So(res.Subtitles["da"], ShouldHaveLength, 2)
			So(res.Subtitles["da"][0].URL, ShouldEqual, "http://host/da.vtt")
			So(res.Subtitles["da"][0].Ext, ShouldEqual, "vtt")
			So(res.Subtitles["da"][1].Ext, ShouldEqual, "ttml")
			So(res.Subtitles["Norwegian"], ShouldHaveLength, 1)
			So(res.Subtitles["Norwegian"][0].Ext, ShouldEqual, "vtt")
		})

		Convey("Resolving the same assets twice is identical", func() {
			assets := []*source.Asset{
				{Kind: source.KindImage, URI: "http://host/thumb.jpg"},
				{
					Kind:       source.KindVideo,
					Target:     source.TargetDefault,
					DurationMs: 90_000,
					Links: []*source.Link{
						{URI: "http://host/master.m3u8", Transport: source.TransportHLS},
						{URI: "http://host/clip.mp4", Transport: "Download", Bitrate: 1300},
					},
					Subtitles: []*source.SubtitleRef{
						{Language: "Danish", URI: "http://host/da.vtt", MimeType: "text/vtt"},
					},
				},
			}

			first, err := r.Resolve(assets)
			So(err, ShouldBeNil)

			second, err := r.Resolve(assets)
			So(err, ShouldBeNil)

			So(second, ShouldResemble, first)
		})
	})
}

func TestDetect(t *testing.T) {
	Convey("detect", t, func() {
		some := []*source.Format{{URL: "http://host/clip.mp4", ID: "Download"}}

		So(detect(nil, true), ShouldBeTrue)
		So(detect(nil, false), ShouldBeFalse)
		So(detect(some, true), ShouldBeFalse)
		So(detect(some, false), ShouldBeFalse)
	})
}

func ids(formats []*source.Format) []string {
	out := make([]string, len(formats))
	for i, f := range formats {
		out[i] = f.ID
	}

	return out
}

// fakeFetcher hands back count formats per call, named the way the
// manifest package names variants.
type fakeFetcher struct {
	count int
	err   error
	urls  []string
}

func (f *fakeFetcher) Fetch(url string, transport source.Transport, id string, preference mo.Option[int]) ([]*source.Format, error) {
	f.urls = append(f.urls, url)

	if f.err != nil {
		return nil, f.err
	}

	formats := make([]*source.Format, f.count)
	for i := range formats {
		formats[i] = &source.Format{
			URL:        url,
			ID:         fmt.Sprintf("%s-%d", id, i),
			Preference: preference,
		}
	}

	return formats, nil
}

type fakeProber struct {
	dead   map[string]bool
	probed []string
}

func (p *fakeProber) Alive(f *source.Format) bool {
	p.probed = append(p.probed, f.URL)
	return !p.dead[f.URL]
}
