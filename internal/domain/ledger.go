package domain

import "time"

// LedgerEntry records the single, permanent issuance of one catalog card.
// At most one entry ever exists per CardKey; entries are created by
// Ledger.Issue and never updated or deleted outside an administrative reset.
type LedgerEntry struct {
	Key      CardKey
	OwnerID  string
	Tier     int
	IssuedAt time.Time
}

// LedgerStats summarizes how much of the catalog has been issued
type LedgerStats struct {
	Issued        int     `json:"issued"`
	Available     int     `json:"available"`
	PercentIssued float64 `json:"percent_issued"`
}
