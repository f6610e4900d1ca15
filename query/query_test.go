package query

import (
	"testing"

	"github.com/gense-cli/gense/filesystem"
	"github.com/gense-cli/gense/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		So(Remember("matador", 1), ShouldBeNil)
		So(Remember("borgen", 10), ShouldBeNil)

		Convey("Suggestions come back sorted by rank", func() {
			s := SuggestMany("bor")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 1)
			So(s[0], ShouldEqual, "borgen")
		})

		Convey("An empty input lists the whole history", func() {
			s := SuggestMany("")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "borgen")
		})

		Convey("Remembering again reorders suggestions within the session", func() {
			// Prime the memoized ranking, then outrank it.
			_ = SuggestMany("")
			So(Remember("matador", 100), ShouldBeNil)

			s := SuggestMany("")
			So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
			So(s[0], ShouldEqual, "matador")
		})

		Convey("Input is sanitized", func() {
			So(sanitize("  MATADOR  "), ShouldEqual, "matador")
		})

		Convey("Suggestions can be disabled", func() {
			viper.Set(key.SearchShowQuerySuggestions, false)
			defer viper.Set(key.SearchShowQuerySuggestions, true)

			So(SuggestMany("bor"), ShouldBeEmpty)
		})
	})
}
