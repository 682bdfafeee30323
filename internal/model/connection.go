package model

import "time"

// Connection statuses. StatusNone is never stored; it is the computed
// status reported when no record exists for a pair.
const (
	StatusNone     = "NONE"
	StatusPending  = "PENDING"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

// Connection is the relationship record between two users. The direction
// (requester, receiver) records who asked; the relationship itself is
// undirected, so at most one record may exist per unordered pair and lookups
// must check both orderings. The unique index covers only the stored
// ordering — see DESIGN.md for the concurrent-request gap.
type Connection struct {
	ID          uint   `gorm:"primaryKey"`
	RequesterID uint   `gorm:"not null;uniqueIndex:idx_connection_pair,priority:1"`
	ReceiverID  uint   `gorm:"not null;index;uniqueIndex:idx_connection_pair,priority:2"`
	Status      string `gorm:"type:varchar(10);not null;default:'PENDING'"`
	Requester   User   `gorm:"foreignKey:RequesterID"`
	Receiver    User   `gorm:"foreignKey:ReceiverID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Connection) TableName() string { return "connection" }

// Involves reports whether the user is either party of the record.
func (c *Connection) Involves(userID uint) bool {
	return c.RequesterID == userID || c.ReceiverID == userID
}
