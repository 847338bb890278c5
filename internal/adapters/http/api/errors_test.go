package api

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestError(t *testing.T) {
	Convey("Given API errors", t, func() {
		cause := errors.New("unexpected EOF")

		Convey("When wrapping with a kind", func() {
			err := WrapKind("api.select_sport", ErrBadRequest, cause)

			Convey("Then both kind and cause are matched", func() {
				So(errors.Is(err, ErrBadRequest), ShouldBeTrue)
				So(errors.Is(err, cause), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "api.select_sport: bad request: unexpected EOF")
			})

			Convey("Then the op is recoverable", func() {
				var apiErr *Error
				So(errors.As(err, &apiErr), ShouldBeTrue)
				So(apiErr.Op, ShouldEqual, "api.select_sport")
			})
		})

		Convey("When building a bare kind", func() {
			err := NewKind("api.get_chart_image", ErrNotFound)
			So(err.Error(), ShouldEqual, "api.get_chart_image: not found")
			So(errors.Is(err, ErrRender), ShouldBeFalse)
		})

		Convey("When wrapping nil", func() {
			So(Wrap("api.get_charts", nil), ShouldBeNil)
		})
	})
}

func TestSelectorRequest_Validate(t *testing.T) {
	Convey("Given selector requests", t, func() {
		So(selectorRequest{Sport: "Judo"}.validate(), ShouldBeNil)
		So(selectorRequest{Sport: "All"}.validate(), ShouldBeNil)
		So(selectorRequest{}.validate(), ShouldNotBeNil)
		So(selectorRequest{Sport: " \t"}.validate(), ShouldNotBeNil)
	})
}

func TestErrorClassification(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		So(getErrorType(500), ShouldEqual, "server_error")
		So(getErrorType(404), ShouldEqual, "not_found")
		So(getErrorType(400), ShouldEqual, "client_error")
		So(getErrorSeverity(503), ShouldEqual, "high")
		So(getErrorSeverity(400), ShouldEqual, "medium")
		So(getErrorSeverity(200), ShouldEqual, "low")
	})
}
