package inline

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gense-cli/gense/source"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

type testSource struct {
	programs []*source.Program
}

func (s *testSource) Name() string { return "test" }
func (s *testSource) ID() string   { return "test" }

func (s *testSource) Search(query string) ([]*source.Program, error) {
	for _, p := range s.programs {
		p.Source = s
	}
	return s.programs, nil
}

func (s *testSource) AssetsOf(program *source.Program) ([]*source.Asset, error) {
	return nil, nil
}

func (s *testSource) ChannelsOf() ([]*source.Program, error) {
	return nil, nil
}

func (s *testSource) Locale() source.Locale {
	return source.Locale{}
}

func TestParseProgramPicker(t *testing.T) {
	programs := []*source.Program{
		{Title: "Historien om Danmark"},
		{Title: "Bonderøven"},
		{Title: "Matador"},
	}

	Convey("ParseProgramPicker", t, func() {
		Convey("first picks the head of the result", func() {
			picker, err := ParseProgramPicker("first")
			So(err, ShouldBeNil)
			So(picker(programs).Title, ShouldEqual, "Historien om Danmark")
		})

		Convey("last picks the tail of the result", func() {
			picker, err := ParseProgramPicker("last")
			So(err, ShouldBeNil)
			So(picker(programs).Title, ShouldEqual, "Matador")
		})

		Convey("an index picks by position, clamped to the result", func() {
			picker, err := ParseProgramPicker("1")
			So(err, ShouldBeNil)
			So(picker(programs).Title, ShouldEqual, "Bonderøven")

			picker, err = ParseProgramPicker("99")
			So(err, ShouldBeNil)
			So(picker(programs).Title, ShouldEqual, "Matador")
		})

		Convey("@text@ matches a title substring case-insensitively", func() {
			picker, err := ParseProgramPicker("@matador@")
			So(err, ShouldBeNil)
			So(picker(programs).Title, ShouldEqual, "Matador")

			So(picker([]*source.Program{{Title: "Borgen"}}), ShouldBeNil)
		})

		Convey("anything else is rejected", func() {
			_, err := ParseProgramPicker("second")
			So(err, ShouldNotBeNil)

			_, err = ParseProgramPicker("@@")
			So(err, ShouldNotBeNil)
		})

		Convey("pickers tolerate an empty result", func() {
			for _, description := range []string{"first", "last", "0"} {
				picker, err := ParseProgramPicker(description)
				So(err, ShouldBeNil)
				So(picker(nil), ShouldBeNil)
			}
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Run", t, func() {
		src := &testSource{programs: []*source.Program{
			{ID: "a", Title: "Historien om Danmark"},
			{ID: "b", Title: "Bonderøven"},
		}}

		Convey("Lists matching titles in plain text", func() {
			var buf bytes.Buffer
			err := Run(&Options{
				Out:     &buf,
				Sources: []source.Source{src},
				Query:   "dan",
			})
			So(err, ShouldBeNil)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			So(lines, ShouldHaveLength, 2)
			So(lines[0], ShouldEqual, "Historien om Danmark")
		})

		Convey("Applies the program picker before output", func() {
			picker, err := ParseProgramPicker("last")
			So(err, ShouldBeNil)

			var buf bytes.Buffer
			err = Run(&Options{
				Out:           &buf,
				Sources:       []source.Source{src},
				Query:         "dan",
				ProgramPicker: mo.Some(picker),
			})
			So(err, ShouldBeNil)
			So(strings.TrimSpace(buf.String()), ShouldEqual, "Bonderøven")
		})

		Convey("Produces the output envelope in JSON mode", func() {
			var buf bytes.Buffer
			err := Run(&Options{
				Out:     &buf,
				Sources: []source.Source{src},
				Query:   "dan",
				Json:    true,
			})
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Query, ShouldEqual, "dan")
			So(output.Result, ShouldHaveLength, 2)
			So(output.Result[0].Source, ShouldEqual, "test")
			So(output.Result[0].Program.Title, ShouldEqual, "Historien om Danmark")
			So(output.Result[0].Resolution, ShouldBeNil)
		})

		Convey("JSON mode reports an empty result for no matches", func() {
			empty := &testSource{}

			var buf bytes.Buffer
			err := Run(&Options{
				Out:     &buf,
				Sources: []source.Source{empty},
				Query:   "nothing",
				Json:    true,
			})
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Result, ShouldHaveLength, 0)
		})
	})
}
