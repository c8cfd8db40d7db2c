package entities

import (
	"time"
)

// ReportEntry stores one opaque JSON document received on the relay endpoint.
// The primary key is a plain bigserial so insertion order breaks timestamp ties
// when the history is pruned; entries are never updated after creation.
type ReportEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Payload   string    `gorm:"type:text" json:"payload"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
}
