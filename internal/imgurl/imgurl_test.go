package imgurl

import (
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type recorder struct {
	lines []string
}

func (r *recorder) Warnf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func TestSanitize(t *testing.T) {
	const want = "https://a.com/b/c.png"

	Convey("Given links in the shapes the source emits", t, func() {
		inputs := []string{
			"//a.com/b/c.png",
			"//a.com/b/c.jpg.png",
			"//a.com/b/c.jpg.png.jpg.png",
			"a.com/b/c.png",
			"http://a.com/b/c.png",
			"https://a.com/b/c.png",
			"  https://a.com/b/c.png\n",
		}

		for _, in := range inputs {
			in := in
			Convey(fmt.Sprintf("%q normalizes to the secure single-extension form", in), func() {
				got, err := Sanitize(in)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, want)
			})
		}
	})

	Convey("Interior dots that are not extensions are kept", t, func() {
		got, err := Sanitize("//ehgt.org/t/ab/cd/abcd.v2-300.webp.jpg")
		So(err, ShouldBeNil)
		So(got, ShouldEqual, "https://ehgt.org/t/ab/cd/abcd.v2-300.jpg")
	})

	Convey("Sanitize is idempotent", t, func() {
		for _, in := range []string{"//a.com/b/c.jpg.png", "x.org/p/q.r.gif", "ftp://h/i.webp"} {
			once, err := Sanitize(in)
			So(err, ShouldBeNil)
			twice, err := Sanitize(once)
			So(err, ShouldBeNil)
			So(twice, ShouldEqual, once)
		}
	})

	Convey("Invalid input fails without panicking", t, func() {
		_, err := Sanitize("")
		So(err, ShouldEqual, ErrEmpty)

		_, err = Sanitize("//a.com/b/c")
		So(err, ShouldEqual, ErrNoExtension)

		_, err = Sanitize("//a.com/b/c.png.html")
		So(err, ShouldEqual, ErrNoExtension)

		_, err = Sanitize("localhost")
		So(err, ShouldEqual, ErrNoExtension)
	})
}

func TestImageSrc(t *testing.T) {
	Convey("ImageSrc logs and returns empty on failure", t, func() {
		log := &recorder{}

		So(ImageSrc("", log), ShouldEqual, "")
		So(ImageSrc("//a.com/b/c", log), ShouldEqual, "")
		So(len(log.lines), ShouldEqual, 2)

		So(ImageSrc("//a.com/b/c.gif", log), ShouldEqual, "https://a.com/b/c.gif")
		So(len(log.lines), ShouldEqual, 2)
	})

	Convey("A nil logger is tolerated", t, func() {
		So(ImageSrc("nope", nil), ShouldEqual, "")
	})
}

func TestRemoveDuplicateExtensions(t *testing.T) {
	Convey("Chained duplicates collapse to the trailing extension", t, func() {
		for _, in := range []string{
			"https://a.com/b/c.png",
			"https://a.com/b/c.jpg.png",
			"https://a.com/b/c.jpg.png.jpg.png",
		} {
			got, err := RemoveDuplicateExtensions(in)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "https://a.com/b/c.png")
		}
	})
}
