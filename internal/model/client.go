package model

import "time"

// Client is a hotel guest on file.  TaxID and Email are unique across
// clients.  Clients carry no behaviour; reservations reference them by
// identifier.
type Client struct {
	ID        uint64    `json:"id"`     // clients.id
	Name      string    `json:"name"`   // clients.name
	TaxID     string    `json:"tax_id"` // clients.tax_id
	Phone     string    `json:"phone"`  // clients.phone
	Email     string    `json:"email"`  // clients.email
	CreatedAt time.Time `json:"-"`      // clients.created_at
	UpdatedAt time.Time `json:"-"`      // clients.updated_at
}
