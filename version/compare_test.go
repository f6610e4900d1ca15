package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		Convey("Should order release versions", func() {
			type testCase struct {
				a, b string
				want int
			}

			for _, tc := range []testCase{
				{"1.0.0", "1.0.0", 0},
				{"v1.2.3", "1.2.3", 0},
				{"2.0.0", "1.9.9", 1},
				{"1.3.0", "1.2.9", 1},
				{"1.2.3", "1.2.4", -1},
				{"0.9.1-rc1", "0.9.1", 0},
			} {
				got, err := Compare(tc.a, tc.b)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, tc.want)
			}
		})

		Convey("Should reject malformed versions", func() {
			_, err := Compare("1.2", "1.2.3")
			So(err, ShouldNotBeNil)
		})
	})
}
