package render_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/okian/podium/internal/adapters/render"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCache(t *testing.T) {
	Convey("Given a cache with room for two images", t, func() {
		c := render.NewCache(render.WithMaxSize(2))

		Convey("When the key is unknown", func() {
			_, ok := c.Get("trend|All")

			Convey("Then it is a miss", func() {
				So(ok, ShouldBeFalse)
				hits, misses := c.Stats()
				So(hits, ShouldEqual, 0)
				So(misses, ShouldEqual, 1)
			})
		})

		Convey("When storing an empty chart", func() {
			c.Put("trend|Curling", nil)
			img, ok := c.Get("trend|Curling")

			Convey("Then the nil image is a hit", func() {
				So(ok, ShouldBeTrue)
				So(img, ShouldBeNil)
			})
		})

		Convey("When storing a third image", func() {
			c.Put("a", []byte("1"))
			c.Put("b", []byte("2"))
			c.Put("c", []byte("3"))

			Convey("Then the oldest is evicted", func() {
				So(c.Len(), ShouldEqual, 2)
				_, ok := c.Get("a")
				So(ok, ShouldBeFalse)
				img, ok := c.Get("c")
				So(ok, ShouldBeTrue)
				So(string(img), ShouldEqual, "3")
			})
		})

		Convey("When replacing an existing key", func() {
			c.Put("a", []byte("1"))
			c.Put("a", []byte("2"))

			Convey("Then the size is unchanged and the image updated", func() {
				So(c.Len(), ShouldEqual, 1)
				img, _ := c.Get("a")
				So(string(img), ShouldEqual, "2")
			})
		})
	})

	Convey("Given a default cache used concurrently", t, func() {
		c := render.NewCache(render.WithMaxSize(0))
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("k%d", i%10)
				c.Put(key, []byte(key))
				_, _ = c.Get(key)
			}(i)
		}
		wg.Wait()

		Convey("Then every distinct key is kept", func() {
			So(c.Len(), ShouldEqual, 10)
		})
	})
}
