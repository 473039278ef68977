// Package document implements the server side of the per-user vault
// collection. Documents are opaque to the server: the secret field is
// ciphertext produced on the client and never inspected here.
package document

import "time"

type Document struct {
	ID        string
	UserID    string
	Label     string
	Username  string
	Secret    string // client-side encrypted blob
	Notes     string
	CreatedAt int64 // milliseconds since epoch, stamped by the client
	UpdatedAt time.Time
}
