package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/iliyamo/hotel-back-office/internal/model"
)

// In-memory stores implementing the same contracts as the MySQL
// repositories, including the overlap re-check Create and Update
// promise.

type fakeClock struct{ now time.Time }

func (f fakeClock) Now() time.Time { return f.now }

func day(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeReservationStore struct {
	nextID uint64
	items  map[uint64]*model.Reservation
}

func newFakeReservations() *fakeReservationStore {
	return &fakeReservationStore{items: map[uint64]*model.Reservation{}}
}

func (s *fakeReservationStore) CountOverlapping(_ context.Context, roomID uint64, in, out time.Time, excludeID uint64) (int, error) {
	n := 0
	for _, r := range s.items {
		if r.RoomID != roomID || r.ID == excludeID || r.Status == model.ReservationCancelled {
			continue
		}
		if Overlaps(r.CheckIn, r.CheckOut, in, out) {
			n++
		}
	}
	return n, nil
}

func (s *fakeReservationStore) CountActiveOn(_ context.Context, roomID uint64, dayT time.Time) (int, error) {
	n := 0
	for _, r := range s.items {
		if r.RoomID == roomID && model.ReservationActive(r.Status) && Covers(r.CheckIn, r.CheckOut, dayT) {
			n++
		}
	}
	return n, nil
}

func (s *fakeReservationStore) GetByID(_ context.Context, id uint64) (*model.Reservation, error) {
	r, ok := s.items[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeReservationStore) Create(ctx context.Context, res *model.Reservation) error {
	if n, _ := s.CountOverlapping(ctx, res.RoomID, res.CheckIn, res.CheckOut, 0); n > 0 {
		return ErrRoomUnavailable
	}
	s.nextID++
	res.ID = s.nextID
	cp := *res
	s.items[res.ID] = &cp
	return nil
}

func (s *fakeReservationStore) Update(ctx context.Context, res *model.Reservation) error {
	if _, ok := s.items[res.ID]; !ok {
		return ErrReservationNotFound
	}
	if n, _ := s.CountOverlapping(ctx, res.RoomID, res.CheckIn, res.CheckOut, res.ID); n > 0 {
		return ErrRoomUnavailable
	}
	cp := *res
	s.items[res.ID] = &cp
	return nil
}

func (s *fakeReservationStore) Delete(_ context.Context, id uint64) (*model.Reservation, error) {
	r, ok := s.items[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	delete(s.items, id)
	cp := *r
	return &cp, nil
}

type fakeRoomStore struct {
	rooms   map[uint64]*model.Room
	failGet map[uint64]error
	writes  []statusWrite
}

type statusWrite struct {
	roomID uint64
	status string
}

func newFakeRooms(rooms ...*model.Room) *fakeRoomStore {
	s := &fakeRoomStore{rooms: map[uint64]*model.Room{}, failGet: map[uint64]error{}}
	for _, r := range rooms {
		cp := *r
		s.rooms[r.ID] = &cp
	}
	return s
}

func (s *fakeRoomStore) GetByID(_ context.Context, id uint64) (*model.Room, error) {
	if err, ok := s.failGet[id]; ok {
		return nil, err
	}
	r, ok := s.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeRoomStore) UpdateStatus(_ context.Context, id uint64, status string) error {
	r, ok := s.rooms[id]
	if !ok {
		return ErrRoomNotFound
	}
	r.Status = status
	s.writes = append(s.writes, statusWrite{roomID: id, status: status})
	return nil
}

func (s *fakeRoomStore) IDs(_ context.Context) ([]uint64, error) {
	ids := make([]uint64, 0, len(s.rooms))
	for id := range s.rooms {
		ids = append(ids, id)
	}
	for id := range s.failGet {
		if _, ok := s.rooms[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type fakeClientStore struct{ clients map[uint64]*model.Client }

func newFakeClients(ids ...uint64) *fakeClientStore {
	s := &fakeClientStore{clients: map[uint64]*model.Client{}}
	for _, id := range ids {
		s.clients[id] = &model.Client{ID: id}
	}
	return s
}

func (s *fakeClientStore) GetByID(_ context.Context, id uint64) (*model.Client, error) {
	c, ok := s.clients[id]
	if !ok {
		return nil, ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

var errStoreDown = errors.New("store down")
