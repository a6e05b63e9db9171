package booking

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/hotel-back-office/internal/model"
)

// Reconciler keeps the rooms table's cached status column consistent
// with the reservation ledger.  The ledger plus the manual MAINTENANCE
// flag are authoritative; the stored status is only a cache refreshed
// after every reservation mutation and by the periodic sweep.
type Reconciler struct {
	reservations ReservationStore
	rooms        RoomStore
	clock        Clock
	interval     time.Duration
}

// NewReconciler builds a Reconciler.  interval controls the background
// sweep cadence of Run.
func NewReconciler(reservations ReservationStore, rooms RoomStore, clock Clock, interval time.Duration) *Reconciler {
	if reservations == nil || rooms == nil || clock == nil {
		panic("nil dependency passed to NewReconciler")
	}
	return &Reconciler{reservations: reservations, rooms: rooms, clock: clock, interval: interval}
}

// EffectiveStatus derives a room's live status for the given day:
// MAINTENANCE always wins and is never auto-cleared here; otherwise the
// room is OCCUPIED when an active reservation covers the day and
// AVAILABLE when none does.
func (r *Reconciler) EffectiveStatus(ctx context.Context, room *model.Room, today time.Time) (string, error) {
	if room.Status == model.RoomMaintenance {
		return model.RoomMaintenance, nil
	}
	n, err := r.reservations.CountActiveOn(ctx, room.ID, today)
	if err != nil {
		return "", err
	}
	if n > 0 {
		return model.RoomOccupied, nil
	}
	return model.RoomAvailable, nil
}

// ReconcileOne recomputes one room's effective status and writes it
// back when it differs from the stored value.  A stored MAINTENANCE is
// never overwritten by a computed non-MAINTENANCE value: clearing
// maintenance takes an explicit room update, not a sweep.
func (r *Reconciler) ReconcileOne(ctx context.Context, roomID uint64) error {
	room, err := r.rooms.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	effective, err := r.EffectiveStatus(ctx, room, r.clock.Now())
	if err != nil {
		return err
	}
	if effective == room.Status {
		return nil
	}
	if room.Status == model.RoomMaintenance && effective != model.RoomMaintenance {
		return nil
	}
	return r.rooms.UpdateStatus(ctx, roomID, effective)
}

// SweepSummary aggregates one ReconcileAll pass.
type SweepSummary struct {
	Checked int      `json:"checked"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// ReconcileAll runs ReconcileOne over every room.  A single room's
// failure is logged and counted but never aborts the rest of the sweep.
func (r *Reconciler) ReconcileAll(ctx context.Context) (SweepSummary, error) {
	ids, err := r.rooms.IDs(ctx)
	if err != nil {
		return SweepSummary{}, err
	}
	sum := SweepSummary{Checked: len(ids)}
	for _, id := range ids {
		if err := r.ReconcileOne(ctx, id); err != nil {
			log.Printf("reconcile: room %d: %v", id, err)
			sum.Failed++
			sum.Errors = append(sum.Errors, err.Error())
		}
	}
	return sum, nil
}

// Run executes the periodic sweep until ctx is cancelled.  The first
// pass fires immediately so the cache is corrected right after startup.
func (r *Reconciler) Run(ctx context.Context) error {
	t := time.NewTicker(r.interval)
	defer t.Stop()

	r.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			r.sweep(ctx)
		}
	}
}

func (r *Reconciler) sweep(ctx context.Context) {
	if _, err := r.ReconcileAll(ctx); err != nil {
		log.Printf("reconcile: sweep failed: %v", err)
	}
}
