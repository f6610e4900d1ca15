package provider

import (
	"testing"

	"github.com/gense-cli/gense/filesystem"
	"github.com/gense-cli/gense/provider/drtv"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestGet(t *testing.T) {
	Convey("When trying to get an invalid provider", t, func() {
		_, ok := Get("kek")
		Convey("Then ok should be false", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("When trying to get the built-in provider", t, func() {
		p, ok := Get(drtv.ID)
		Convey("Then it should be found by ID", func() {
			So(ok, ShouldBeTrue)
			So(p.Name, ShouldEqual, drtv.Name)
			So(p.IsCustom, ShouldBeFalse)
		})

		Convey("And its source should be cached across calls", func() {
			first, err := p.Source()
			So(err, ShouldBeNil)

			second, err := p.Source()
			So(err, ShouldBeNil)
			So(first, ShouldEqual, second)
		})
	})
}

func TestFromURL(t *testing.T) {
	Convey("FromURL", t, func() {
		Convey("Should route a DR watch page to a program stub", func() {
			program, err := FromURL("https://www.dr.dk/drtv/se/bonderoeven_71769")
			So(err, ShouldBeNil)
			So(program.ID, ShouldEqual, "bonderoeven_71769")
			So(program.Source, ShouldNotBeNil)
		})

		Convey("Should reject a host no provider serves", func() {
			_, err := FromURL("https://example.com/watch/1")
			So(err, ShouldNotBeNil)
		})
	})
}
