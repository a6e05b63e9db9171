package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-back-office/internal/booking"
	"github.com/iliyamo/hotel-back-office/internal/repository"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid date range", booking.ErrInvalidDateRange, http.StatusBadRequest},
		{"invalid rate", booking.ErrInvalidRate, http.StatusBadRequest},
		{"invalid transition", booking.ErrInvalidTransition, http.StatusBadRequest},
		{"room not found", booking.ErrRoomNotFound, http.StatusNotFound},
		{"client not found", booking.ErrClientNotFound, http.StatusNotFound},
		{"reservation not found", booking.ErrReservationNotFound, http.StatusNotFound},
		{"room unavailable", booking.ErrRoomUnavailable, http.StatusConflict},
		{"room under maintenance", booking.ErrRoomUnderMaintenance, http.StatusConflict},
		{"unique violation", repository.ErrConflict, http.StatusConflict},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			if err := writeError(c, tc.err); err != nil {
				t.Fatalf("writeError returned %v", err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
			if !strings.Contains(rec.Body.String(), "error") {
				t.Fatalf("body %q carries no error field", rec.Body.String())
			}
		})
	}
}

func TestWriteErrorHidesStoreDetails(t *testing.T) {
	c, rec := newTestContext(t)
	if err := writeError(c, errors.New("dial tcp 10.0.0.5:3306: connection refused")); err != nil {
		t.Fatalf("writeError returned %v", err)
	}
	if strings.Contains(rec.Body.String(), "10.0.0.5") {
		t.Fatalf("internal error leaked to client: %s", rec.Body.String())
	}
}

func TestPathID(t *testing.T) {
	cases := []struct {
		raw string
		id  uint64
		ok  bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		c, _ := newTestContext(t)
		c.SetParamNames("id")
		c.SetParamValues(tc.raw)
		id, ok := pathID(c)
		if ok != tc.ok || id != tc.id {
			t.Fatalf("pathID(%q) = (%d, %v), want (%d, %v)", tc.raw, id, ok, tc.id, tc.ok)
		}
	}
}
