// Package credential defines the decrypted, in-memory form of a saved
// credential and its derived staleness classification.
package credential

import "time"

// Freshness classifies how long ago a credential's secret was last refreshed.
type Freshness int

const (
	Fresh Freshness = iota // younger than 5 months
	Aging                  // 5 months or older
	Stale                  // 6 months or older
)

const (
	agingThresholdMonths = 5
	staleThresholdMonths = 6

	daysPerMonth = 30
)

// Record is one saved credential. Secret is plaintext in memory only; the
// persisted form is always the encrypted blob produced by vaultcrypt.
// DocumentID is empty exactly while the record is an unsaved draft; the
// remote store assigns it on first create and it never changes afterwards.
type Record struct {
	Label      string `json:"label"`
	Username   string `json:"username"`
	Secret     string `json:"secret"`
	Notes      string `json:"notes"`
	CreatedAt  int64  `json:"created_at"` // milliseconds since epoch, last secret refresh
	DocumentID string `json:"document_id"`
}

// New returns an unsaved record stamped with the current time.
func New(label, username, secret, notes string) Record {
	return Record{
		Label:     label,
		Username:  username,
		Secret:    secret,
		Notes:     notes,
		CreatedAt: time.Now().UnixMilli(),
	}
}

// Saved reports whether the record has been persisted to the remote store.
func (r Record) Saved() bool {
	return r.DocumentID != ""
}

// AgeMonths returns the age of the secret in whole months relative to now.
func (r Record) AgeMonths(now time.Time) int {
	ageDays := int(now.Sub(time.UnixMilli(r.CreatedAt)).Hours() / 24)
	if ageDays < 0 {
		return 0
	}
	return ageDays / daysPerMonth
}

// Freshness classifies the secret's age for staleness reporting.
func (r Record) Freshness(now time.Time) Freshness {
	months := r.AgeMonths(now)
	switch {
	case months >= staleThresholdMonths:
		return Stale
	case months >= agingThresholdMonths:
		return Aging
	default:
		return Fresh
	}
}
