package history

import (
	"fmt"
	"testing"

	"github.com/gense-cli/gense/filesystem"
	"github.com/gense-cli/gense/key"
	"github.com/gense-cli/gense/source"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

type testSource struct{}

func (testSource) Name() string {
	panic("")
}

func (testSource) Search(_ string) ([]*source.Program, error) {
	panic("")
}

func (testSource) AssetsOf(_ *source.Program) ([]*source.Asset, error) {
	panic("")
}

func (testSource) ChannelsOf() ([]*source.Program, error) {
	panic("")
}

func (testSource) ID() string {
	return "test source"
}

func (testSource) Locale() source.Locale {
	return source.Locale{}
}

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.HistorySize, 42)
}

func TestHistory(t *testing.T) {
	Convey("Given a program", t, func() {
		program := source.Program{
			ID:     "20875",
			Slug:   "bamse-og-kylling-1",
			Title:  "Bamse og Kylling",
			Index:  0,
			Source: testSource{},
		}

		Convey("When saving the program", func() {
			err := Save(&program, "HLS-2", 120)
			Convey("Then the error should be nil", func() {
				So(err, ShouldBeNil)

				Convey("And the program should be saved", func() {
					programs, err := Get()
					So(err, ShouldBeNil)
					So(len(programs), ShouldBeGreaterThan, 0)
					record := programs[fmt.Sprintf("%s (%s)", program.Title, program.Source.ID())]
					So(record.Title, ShouldEqual, program.Title)
					So(record.FormatID, ShouldEqual, "HLS-2")
					So(record.Position, ShouldEqual, 120)
				})
			})
		})

		Convey("When history overflows the configured size", func() {
			viper.Set(key.HistorySize, 2)
			defer viper.Set(key.HistorySize, 42)

			for i := 0; i < 5; i++ {
				p := program
				p.Title = fmt.Sprintf("Program %d", i)
				So(Save(&p, "HLS-0", 0), ShouldBeNil)
			}

			programs, err := Get()
			So(err, ShouldBeNil)
			So(len(programs), ShouldBeLessThanOrEqualTo, 2)
		})
	})
}
