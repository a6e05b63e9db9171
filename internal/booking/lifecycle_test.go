package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/hotel-back-office/internal/model"
)

func testManager(rooms *fakeRoomStore, clock Clock) (*Manager, *fakeReservationStore) {
	reservations := newFakeReservations()
	clients := newFakeClients(1, 2)
	rec := NewReconciler(reservations, rooms, clock, 0)
	return NewManager(reservations, rooms, clients, clock, rec), reservations
}

func room101() *model.Room {
	return &model.Room{ID: 101, Number: "101", Type: model.RoomTypeDouble, NightlyRate: 150.00, Capacity: 2, Status: model.RoomAvailable}
}

func TestManagerCreate(t *testing.T) {
	ctx := context.Background()
	clock := fakeClock{now: day("2024-03-01")}

	t.Run("books an open room and prices the stay", func(t *testing.T) {
		rooms := newFakeRooms(room101())
		m, _ := testManager(rooms, clock)

		res, err := m.Create(ctx, CreateInput{ClientID: 1, RoomID: 101, CheckIn: day("2024-03-01"), CheckOut: day("2024-03-04")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.TotalPrice != 450.00 {
			t.Fatalf("expected total 450.00, got %.2f", res.TotalPrice)
		}
		if res.Status != model.ReservationConfirmed {
			t.Fatalf("expected CONFIRMED, got %s", res.Status)
		}
		// The stay covers today, so the reconciler marks the room occupied.
		if got := rooms.rooms[101].Status; got != model.RoomOccupied {
			t.Fatalf("expected room OCCUPIED after create, got %s", got)
		}
	})

	t.Run("rejects overlapping dates", func(t *testing.T) {
		rooms := newFakeRooms(room101())
		m, _ := testManager(rooms, clock)
		if _, err := m.Create(ctx, CreateInput{ClientID: 1, RoomID: 101, CheckIn: day("2024-03-01"), CheckOut: day("2024-03-04")}); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}

		_, err := m.Create(ctx, CreateInput{ClientID: 2, RoomID: 101, CheckIn: day("2024-03-02"), CheckOut: day("2024-03-03")})
		if !errors.Is(err, ErrRoomUnavailable) {
			t.Fatalf("expected ErrRoomUnavailable, got %v", err)
		}
	})

	t.Run("checkout day can be rebooked same day", func(t *testing.T) {
		rooms := newFakeRooms(room101())
		m, _ := testManager(rooms, clock)
		if _, err := m.Create(ctx, CreateInput{ClientID: 1, RoomID: 101, CheckIn: day("2024-03-01"), CheckOut: day("2024-03-04")}); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}

		if _, err := m.Create(ctx, CreateInput{ClientID: 2, RoomID: 101, CheckIn: day("2024-03-04"), CheckOut: day("2024-03-06")}); err != nil {
			t.Fatalf("back-to-back stay should be allowed, got %v", err)
		}
	})

	t.Run("cancelled reservations do not block", func(t *testing.T) {
		rooms := newFakeRooms(room101())
		m, reservations := testManager(rooms, clock)
		res, err := m.Create(ctx, CreateInput{ClientID: 1, RoomID: 101, CheckIn: day("2024-03-01"), CheckOut: day("2024-03-04")})
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		reservations.items[res.ID].Status = model.ReservationCancelled

		if _, err := m.Create(ctx, CreateInput{ClientID: 2, RoomID: 101, CheckIn: day("2024-03-02"), CheckOut: day("2024-03-03")}); err != nil {
			t.Fatalf("cancelled reservation must not conflict, got %v", err)
		}
	})

	t.Run("same-day range", func(t *testing.T) {
		rooms := newFakeRooms(room101())
		m, _ := testManager(rooms, clock)
		_, err := m.Create(ctx, CreateInput{ClientID: 1, RoomID: 101, CheckIn: day("2024-03-01"), CheckOut: day("2024-03-01")})
		if !errors.Is(err, ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("missing room and client", func(t *testing.T) {
		rooms := newFakeRooms(room101())
		m, _ := testManager(rooms, clock)
		if _, err := m.Create(ctx, CreateInput{ClientID: 1, RoomID: 999, CheckIn: day("2024-03-01"), CheckOut: day("2024-03-02")}); !errors.Is(err, ErrRoomNotFound) {
			t.Fatalf("expected ErrRoomNotFound, got %v", err)
		}
		if _, err := m.Create(ctx, CreateInput{ClientID: 999, RoomID: 101, CheckIn: day("2024-03-01"), CheckOut: day("2024-03-02")}); !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("room under maintenance", func(t *testing.T) {
		r := room101()
		r.Status = model.RoomMaintenance
		rooms := newFakeRooms(r)
		m, _ := testManager(rooms, clock)
		_, err := m.Create(ctx, CreateInput{ClientID: 1, RoomID: 101, CheckIn: day("2024-03-01"), CheckOut: day("2024-03-02")})
		if !errors.Is(err, ErrRoomUnderMaintenance) {
			t.Fatalf("expected ErrRoomUnderMaintenance, got %v", err)
		}
	})

	t.Run("future stay does not occupy the room today", func(t *testing.T) {
		// Earlier revisions of the back office flipped the room to
		// OCCUPIED as soon as a reservation was confirmed.  Status is
		// now derived from whether an active stay covers today, so a
		// future booking leaves the room available until check-in day.
		rooms := newFakeRooms(room101())
		m, _ := testManager(rooms, clock)
		if _, err := m.Create(ctx, CreateInput{ClientID: 1, RoomID: 101, CheckIn: day("2024-06-01"), CheckOut: day("2024-06-05")}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := rooms.rooms[101].Status; got != model.RoomAvailable {
			t.Fatalf("expected room to stay AVAILABLE for a future booking, got %s", got)
		}
	})
}

func TestManagerUpdate(t *testing.T) {
	ctx := context.Background()
	clock := fakeClock{now: day("2024-03-02")}

	seed := func(t *testing.T) (*Manager, *fakeReservationStore, *fakeRoomStore, uint64) {
		t.Helper()
		rooms := newFakeRooms(room101())
		m, reservations := testManager(rooms, clock)
		res, err := m.Create(ctx, CreateInput{ClientID: 1, RoomID: 101, CheckIn: day("2024-03-01"), CheckOut: day("2024-03-04")})
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		return m, reservations, rooms, res.ID
	}

	t.Run("moving dates excludes the reservation itself", func(t *testing.T) {
		m, _, _, id := seed(t)
		in, out := day("2024-03-02"), day("2024-03-05")
		res, err := m.Update(ctx, id, UpdateInput{CheckIn: &in, CheckOut: &out})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.TotalPrice != 450.00 {
			t.Fatalf("expected reprice to 450.00, got %.2f", res.TotalPrice)
		}
	})

	t.Run("status is merged from existing when omitted", func(t *testing.T) {
		m, reservations, _, id := seed(t)
		out := day("2024-03-05")
		if _, err := m.Update(ctx, id, UpdateInput{CheckOut: &out}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := reservations.items[id].Status; got != model.ReservationConfirmed {
			t.Fatalf("expected status unchanged, got %s", got)
		}
	})

	t.Run("cancelling frees the room for today", func(t *testing.T) {
		m, _, rooms, id := seed(t)
		if got := rooms.rooms[101].Status; got != model.RoomOccupied {
			t.Fatalf("precondition: expected OCCUPIED, got %s", got)
		}
		st := model.ReservationCancelled
		if _, err := m.Update(ctx, id, UpdateInput{Status: &st}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := rooms.rooms[101].Status; got != model.RoomAvailable {
			t.Fatalf("expected AVAILABLE after cancellation, got %s", got)
		}
	})

	t.Run("check-in then check-out", func(t *testing.T) {
		m, _, _, id := seed(t)
		st := model.ReservationCheckedIn
		if _, err := m.Update(ctx, id, UpdateInput{Status: &st}); err != nil {
			t.Fatalf("check-in failed: %v", err)
		}
		st = model.ReservationCheckedOut
		if _, err := m.Update(ctx, id, UpdateInput{Status: &st}); err != nil {
			t.Fatalf("check-out failed: %v", err)
		}
	})

	t.Run("illegal transitions are rejected", func(t *testing.T) {
		m, _, _, id := seed(t)
		st := model.ReservationCheckedOut // CONFIRMED -> CHECKED_OUT skips check-in
		if _, err := m.Update(ctx, id, UpdateInput{Status: &st}); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
		st = model.ReservationCancelled
		if _, err := m.Update(ctx, id, UpdateInput{Status: &st}); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		st = model.ReservationCheckedIn // cancelled is terminal
		if _, err := m.Update(ctx, id, UpdateInput{Status: &st}); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition from CANCELLED, got %v", err)
		}
	})

	t.Run("moving rooms reconciles both rooms", func(t *testing.T) {
		rooms := newFakeRooms(room101(), &model.Room{ID: 102, Number: "102", Type: model.RoomTypeSingle, NightlyRate: 90.00, Capacity: 1, Status: model.RoomAvailable})
		m, _ := testManager(rooms, clock)
		res, err := m.Create(ctx, CreateInput{ClientID: 1, RoomID: 101, CheckIn: day("2024-03-01"), CheckOut: day("2024-03-04")})
		if err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
		newRoom := uint64(102)
		moved, err := m.Update(ctx, res.ID, UpdateInput{RoomID: &newRoom})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if moved.TotalPrice != 270.00 {
			t.Fatalf("expected reprice at new room's rate (270.00), got %.2f", moved.TotalPrice)
		}
		if got := rooms.rooms[101].Status; got != model.RoomAvailable {
			t.Fatalf("expected old room AVAILABLE, got %s", got)
		}
		if got := rooms.rooms[102].Status; got != model.RoomOccupied {
			t.Fatalf("expected new room OCCUPIED, got %s", got)
		}
	})

	t.Run("unknown reservation", func(t *testing.T) {
		m, _, _, _ := seed(t)
		if _, err := m.Update(ctx, 999, UpdateInput{}); !errors.Is(err, ErrReservationNotFound) {
			t.Fatalf("expected ErrReservationNotFound, got %v", err)
		}
	})
}

func TestManagerDelete(t *testing.T) {
	ctx := context.Background()
	clock := fakeClock{now: day("2024-03-02")}
	rooms := newFakeRooms(room101())
	m, reservations := testManager(rooms, clock)
	res, err := m.Create(ctx, CreateInput{ClientID: 1, RoomID: 101, CheckIn: day("2024-03-01"), CheckOut: day("2024-03-04")})
	if err != nil {
		t.Fatalf("seed create failed: %v", err)
	}
	if got := rooms.rooms[101].Status; got != model.RoomOccupied {
		t.Fatalf("precondition: expected OCCUPIED, got %s", got)
	}

	if err := m.Delete(ctx, res.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := reservations.items[res.ID]; ok {
		t.Fatal("reservation should be hard-deleted")
	}
	if got := rooms.rooms[101].Status; got != model.RoomAvailable {
		t.Fatalf("expected AVAILABLE after delete, got %s", got)
	}

	if err := m.Delete(ctx, res.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound on second delete, got %v", err)
	}
}
