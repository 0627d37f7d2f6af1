package domain

import "time"

const BackupVersion = 1

// BackupPayload is the portable snapshot written to .backup files. Entities
// keep their original identities inside the document; those are discarded
// (and foreign keys remapped) on import. Settings travels without its id.
type BackupPayload struct {
	Version    int        `json:"version"`
	ExportedAt time.Time  `json:"exportedAt"`
	Products   []Product  `json:"products"`
	Customers  []Customer `json:"customers"`
	Orders     []Order    `json:"orders"`
	Settings   Settings   `json:"settings"`
}

// Valid reports whether the document carries the two fields every backup
// must declare. Anything else is rejected before the store is touched.
func (p *BackupPayload) Valid() bool {
	return p.Version > 0 && !p.ExportedAt.IsZero()
}
