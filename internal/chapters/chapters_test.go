package chapters

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/brogergvhs/galleryd/internal/providers"
)

func images(n int) []providers.Image {
	out := make([]providers.Image, n)
	for i := range out {
		out[i] = providers.Image{URI: "https://img.example/" + string(rune('a'+i)) + ".jpg"}
	}
	return out
}

func TestSelectPages(t *testing.T) {
	Convey("Given a five page gallery", t, func() {
		all := images(5)

		Convey("No selection keeps every page numbered from 1", func() {
			got, err := SelectPages(all, "", "")
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 5)
			So(got[0].Number, ShouldEqual, 1)
			So(got[4].Number, ShouldEqual, 5)
		})

		Convey("A range keeps gallery numbering", func() {
			got, err := SelectPages(all, "2-4", "")
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 3)
			So(got[0].Number, ShouldEqual, 2)
			So(got[0].URI, ShouldEqual, all[1].URI)
		})

		Convey("A list picks the named pages in order", func() {
			got, err := SelectPages(all, "", "5, 1")
			So(err, ShouldBeNil)
			So(len(got), ShouldEqual, 2)
			So(got[0].Number, ShouldEqual, 5)
			So(got[1].Number, ShouldEqual, 1)
		})

		Convey("Out of bounds or malformed selections are errors", func() {
			_, err := SelectPages(all, "4-9", "")
			So(err, ShouldNotBeNil)
			_, err = SelectPages(all, "three", "")
			So(err, ShouldNotBeNil)
			_, err = SelectPages(all, "", "1,x")
			So(err, ShouldNotBeNil)
			_, err = SelectPages(all, "", "6")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestChapterNaming(t *testing.T) {
	Convey("File names come from the gallery id and title", t, func() {
		book := providers.Book{
			ID:     "12345/abcdef",
			Title:  "(C99) [Circle] Some Title [English]",
			Author: "some |artist",
			Tags:   []providers.Tag{{ID: "a", Name: "a"}, {ID: "b |c", Name: "b |c"}},
			Chapters: []providers.Chapter{{
				ID:       "12345/abcdef",
				Title:    "(C99) [Circle] Some Title [English]",
				Language: providers.English,
			}},
		}

		ch, ok := New(book, "https://e-hentai.org/g/12345/abcdef/")
		So(ok, ShouldBeTrue)
		So(ch.OutputCBZ(), ShouldEqual, "12345_abcdef_c99_circle_some_title_english.cbz")
		So(ch.FolderName(), ShouldEqual, "12345_abcdef_c99_circle_some_title_english_tmp")

		info := ch.ComicInfo(3)
		So(info.Writer, ShouldEqual, "some |artist")
		So(info.Tags, ShouldEqual, "a, b |c")
		So(info.LanguageISO, ShouldEqual, "en")
		So(info.PageCount, ShouldEqual, 3)
		So(info.Web, ShouldEqual, "https://e-hentai.org/g/12345/abcdef/")
	})

	Convey("A book without chapters cannot be wrapped", t, func() {
		_, ok := New(providers.EmptyBook(), "")
		So(ok, ShouldBeFalse)
	})

	Convey("Unknown authors are left out of ComicInfo", t, func() {
		book := providers.Book{ID: "1/a", Author: "unknown", Chapters: []providers.Chapter{{ID: "1/a"}}}
		ch, _ := New(book, "")
		So(ch.ComicInfo(0).Writer, ShouldEqual, "")
		So(ch.OutputCBZ(), ShouldEqual, "1_a.cbz")
	})
}
