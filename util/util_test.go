package util

import (
	"testing"

	"github.com/gense-cli/gense/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace invalid chars", func() {
			So(SanitizeFilename("file:name?.txt"), ShouldEqual, "file_name_.txt")
		})
		Convey("Should collapse underscores", func() {
			So(SanitizeFilename("file__name.txt"), ShouldEqual, "file_name.txt")
		})
		Convey("Should trim separators", func() {
			So(SanitizeFilename("-file-name-"), ShouldEqual, "file-name")
		})
		Convey("Should keep Danish letters", func() {
			So(SanitizeFilename("Badehotellet: Sæson 9"), ShouldEqual, "Badehotellet_Sæson_9")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "file", "files"), ShouldEqual, "1 file")
		So(Quantify(2, "file", "files"), ShouldEqual, "2 files")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("hello"), ShouldEqual, "Hello")
		So(Capitalize(""), ShouldEqual, "")

		Convey("Should handle multi-byte first runes", func() {
			So(Capitalize("æble"), ShouldEqual, "Æble")
			So(Capitalize("årgang 0"), ShouldEqual, "Årgang 0")
		})
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("path/to/file.txt"), ShouldEqual, "file")
		So(FileStem("file"), ShouldEqual, "file")
	})
}

func TestMaxMin(t *testing.T) {
	Convey("Max/Min", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Min(1, 5, 2), ShouldEqual, 1)
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]
		s.Push(1)
		s.Push(2)
		So(s.Len(), ShouldEqual, 2)
		So(s.Peek(), ShouldEqual, 2)
		item := s.Pop()
		So(item, ShouldEqual, 2)
		item = s.Pop()
		So(item, ShouldEqual, 1)
		item = s.Pop()
		So(item, ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		Reset(filesystem.SetOsFs)

		fs := filesystem.API()

		Convey("Should remove a single file", func() {
			So(fs.WriteFile("/tmp/probe.txt", []byte("x"), 0o644), ShouldBeNil)
			So(Delete("/tmp/probe.txt"), ShouldBeNil)

			exists, _ := fs.Exists("/tmp/probe.txt")
			So(exists, ShouldBeFalse)
		})

		Convey("Should remove a directory recursively", func() {
			So(fs.MkdirAll("/tmp/nested/deep", 0o755), ShouldBeNil)
			So(fs.WriteFile("/tmp/nested/deep/probe.txt", []byte("x"), 0o644), ShouldBeNil)
			So(Delete("/tmp/nested"), ShouldBeNil)

			exists, _ := fs.Exists("/tmp/nested")
			So(exists, ShouldBeFalse)
		})

		Convey("Should report missing paths", func() {
			So(Delete("/tmp/missing"), ShouldNotBeNil)
		})
	})
}
