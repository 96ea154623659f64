package domain

import "time"

// AuditFields holds the creation and modification timestamps shared by
// persisted entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}
