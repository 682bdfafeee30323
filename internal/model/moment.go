package model

import "time"

// Moment is a single authored post delivered to designated recipients.
// Current flows create exactly one recipient per moment; the fan-out join
// leaves room for multi-recipient delivery.
type Moment struct {
	ID         uint   `gorm:"primaryKey"`
	SenderID   uint   `gorm:"not null;index"`
	Text       string `gorm:"type:text;not null"`
	Emoji      string `gorm:"type:varchar(10)"`
	ImageURL   string `gorm:"type:varchar(512)"`
	Sender     User   `gorm:"foreignKey:SenderID"`
	Recipients []MomentRecipient
	Replies    []Reply
	CreatedAt  time.Time
}

func (Moment) TableName() string { return "moment" }

// MomentRecipient is one delivery of a moment. ReadAt is nil until the
// receiver fetches their inbox.
type MomentRecipient struct {
	ID         uint       `gorm:"primaryKey"`
	MomentID   uint       `gorm:"not null;index"`
	ReceiverID uint       `gorm:"not null;index"`
	ReadAt     *time.Time
}

func (MomentRecipient) TableName() string { return "moment_recipient" }

// Reply is a threaded comment on a moment.
type Reply struct {
	ID        uint   `gorm:"primaryKey"`
	MomentID  uint   `gorm:"not null;index"`
	SenderID  uint   `gorm:"not null;index"`
	Text      string `gorm:"type:text;not null"`
	Emoji     string `gorm:"type:varchar(10)"`
	Sender    User   `gorm:"foreignKey:SenderID"`
	CreatedAt time.Time
}

func (Reply) TableName() string { return "reply" }
