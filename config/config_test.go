package config

import (
	"testing"

	"github.com/gense-cli/gense/filesystem"
	"github.com/gense-cli/gense/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should register every defined field with a default", func() {
			So(Setup(), ShouldBeNil)
			So(Default, ShouldHaveLength, key.DefinedFieldsCount)

			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("history.save_on_watch"), ShouldEqual, "history_save_on_watch")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a configuration field", t, func() {
		field := Default[key.HistorySize]

		Convey("Its env name carries the application prefix", func() {
			So(field.Env(), ShouldEqual, "GENSE_HISTORY_SIZE")
		})

		Convey("Its type name reflects the default value", func() {
			So(field.typeName(), ShouldEqual, "int")
		})

		Convey("Pretty rendering mentions the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.HistorySize)
		})
	})
}
