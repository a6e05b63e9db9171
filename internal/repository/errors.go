// Package repository implements MySQL persistence for the back office.
// Repositories return the booking package's sentinel errors for
// not-found and availability failures so handlers and the lifecycle
// manager share one taxonomy; store-level conflicts get their own
// sentinel here.
package repository

import (
	"errors"
	"strings"
)

// ErrConflict is returned when a write violates a uniqueness or
// foreign-key constraint (duplicate room number, duplicate client
// tax id / email, deleting a room that still has reservations).
// Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned when registering a user with an email
// that is already on file.
var ErrEmailExists = errors.New("email already exists")

// isDuplicate reports MySQL duplicate-entry errors (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// isFKViolation reports MySQL foreign-key errors (1451/1452).
func isFKViolation(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "1451") || strings.Contains(s, "1452")
}
