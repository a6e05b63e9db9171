package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-back-office/internal/booking"
	"github.com/iliyamo/hotel-back-office/internal/model"
)

// ReservationRepo provides persistence for reservations.  The overlap
// predicate lives in exactly one query (countOverlapping) and mirrors
// booking.Overlaps: two half-open stays [a,b) and [c,d) conflict iff
// a < d AND c < b, so a checkout day can be rebooked the same day.
// Cancelled reservations never count.
//
// Create and Update take a write lock on the room row and re-run the
// overlap count inside the same transaction, so two concurrent
// bookings for the same room serialize and the loser gets
// booking.ErrRoomUnavailable instead of a double booking.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given
// database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationColumns = `id, client_id, room_id, check_in, check_out, total_price, status, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var m model.Reservation
	err := row.Scan(&m.ID, &m.ClientID, &m.RoomID, &m.CheckIn, &m.CheckOut, &m.TotalPrice, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// countOverlapping is the single site of the overlap query.  excludeID
// of zero excludes nothing (ids start at one).
func countOverlapping(ctx context.Context, q querier, roomID uint64, checkIn, checkOut interface{}, excludeID uint64) (int, error) {
	const query = `SELECT COUNT(*) FROM reservations
				   WHERE room_id = ?
					 AND id <> ?
					 AND status <> 'CANCELLED'
					 AND check_in < ?
					 AND check_out > ?`
	var n int
	err := q.QueryRowContext(ctx, query, roomID, excludeID, checkOut, checkIn).Scan(&n)
	return n, err
}

// CountOverlapping reports how many non-cancelled reservations on the
// room conflict with the half-open range [checkIn, checkOut), ignoring
// excludeID when non-zero.
func (r *ReservationRepo) CountOverlapping(ctx context.Context, roomID uint64, checkIn, checkOut time.Time, excludeID uint64) (int, error) {
	return countOverlapping(ctx, r.db, roomID, checkIn, checkOut, excludeID)
}

// CountActiveOn reports how many CONFIRMED or CHECKED_IN reservations
// on the room cover the given day (check_in <= day < check_out).
func (r *ReservationRepo) CountActiveOn(ctx context.Context, roomID uint64, day time.Time) (int, error) {
	const q = `SELECT COUNT(*) FROM reservations
			   WHERE room_id = ?
				 AND status IN ('CONFIRMED', 'CHECKED_IN')
				 AND check_in <= ?
				 AND check_out > ?`
	var n int
	err := r.db.QueryRowContext(ctx, q, roomID, day, day).Scan(&n)
	return n, err
}

// GetByID fetches one reservation, returning
// booking.ErrReservationNotFound when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	m, err := scanReservation(r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrReservationNotFound
		}
		return nil, err
	}
	return m, nil
}

// lockRoom takes a write lock on the room row for the duration of the
// transaction, serializing concurrent bookings on the same room.
func lockRoom(ctx context.Context, tx *sql.Tx, roomID uint64) error {
	var id uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM rooms WHERE id = ? FOR UPDATE`, roomID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return booking.ErrRoomNotFound
	}
	return err
}

// Create inserts a new reservation after re-checking the overlap under
// the room lock.  On success the generated id and DB timestamps are
// populated on res.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := lockRoom(ctx, tx, res.RoomID); err != nil {
		return err
	}
	n, err := countOverlapping(ctx, tx, res.RoomID, res.CheckIn, res.CheckOut, 0)
	if err != nil {
		return err
	}
	if n > 0 {
		return booking.ErrRoomUnavailable
	}

	const q = `INSERT INTO reservations (client_id, room_id, check_in, check_out, total_price, status)
			   VALUES (?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q, res.ClientID, res.RoomID, res.CheckIn, res.CheckOut, res.TotalPrice, res.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)

	got, err := scanReservation(tx.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, res.ID))
	if err != nil {
		return err
	}
	*res = *got

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Update persists a merged reservation under the same room-lock overlap
// re-check as Create, excluding the reservation itself.
func (r *ReservationRepo) Update(ctx context.Context, res *model.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := lockRoom(ctx, tx, res.RoomID); err != nil {
		return err
	}
	n, err := countOverlapping(ctx, tx, res.RoomID, res.CheckIn, res.CheckOut, res.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return booking.ErrRoomUnavailable
	}

	const q = `UPDATE reservations
			   SET client_id = ?, room_id = ?, check_in = ?, check_out = ?, total_price = ?, status = ?
			   WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, res.ClientID, res.RoomID, res.CheckIn, res.CheckOut, res.TotalPrice, res.Status, res.ID); err != nil {
		return err
	}

	got, err := scanReservation(tx.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, res.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return booking.ErrReservationNotFound
		}
		return err
	}
	*res = *got

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Delete reads and removes a reservation in one transaction and
// returns the removed row, so the caller reconciles the room the row
// actually referenced even when deletes race.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) (*model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	got, err := scanReservation(tx.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ? FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrReservationNotFound
		}
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return got, nil
}

// ClientSummary is the slice of the client joined into reservation
// listings.
type ClientSummary struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}

// RoomSummary is the slice of the room joined into reservation
// listings.
type RoomSummary struct {
	ID          uint64  `json:"id"`
	Number      string  `json:"number"`
	Type        string  `json:"type"`
	NightlyRate float64 `json:"nightly_rate"`
}

// ReservationDetail is a reservation joined with its client and room
// summaries for display.  Cancelled reservations are listed like any
// other; they are only excluded from availability checks.
type ReservationDetail struct {
	ID         uint64        `json:"id"`
	CheckIn    string        `json:"check_in"`
	CheckOut   string        `json:"check_out"`
	TotalPrice float64       `json:"total_price"`
	Status     string        `json:"status"`
	Client     ClientSummary `json:"client"`
	Room       RoomSummary   `json:"room"`
}

const detailQuery = `SELECT r.id, r.check_in, r.check_out, r.total_price, r.status,
							c.id, c.name, c.tax_id,
							ro.id, ro.number, ro.room_type, ro.nightly_rate
					 FROM reservations r
					 JOIN clients c ON c.id = r.client_id
					 JOIN rooms ro ON ro.id = r.room_id`

func scanDetail(row interface{ Scan(...any) error }) (*ReservationDetail, error) {
	var d ReservationDetail
	var in, out time.Time
	err := row.Scan(
		&d.ID, &in, &out, &d.TotalPrice, &d.Status,
		&d.Client.ID, &d.Client.Name, &d.Client.TaxID,
		&d.Room.ID, &d.Room.Number, &d.Room.Type, &d.Room.NightlyRate,
	)
	if err != nil {
		return nil, err
	}
	d.CheckIn = in.Format(booking.DateLayout)
	d.CheckOut = out.Format(booking.DateLayout)
	return &d, nil
}

// List returns all reservations with client and room summaries, newest
// first.
func (r *ReservationRepo) List(ctx context.Context) ([]ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, detailQuery+` ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// GetDetail returns one reservation with its client and room
// summaries, or booking.ErrReservationNotFound.
func (r *ReservationRepo) GetDetail(ctx context.Context, id uint64) (*ReservationDetail, error) {
	d, err := scanDetail(r.db.QueryRowContext(ctx, detailQuery+` WHERE r.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrReservationNotFound
		}
		return nil, err
	}
	return d, nil
}
