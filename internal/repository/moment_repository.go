package repository

import (
	"time"

	"pulse-backend/internal/model"

	"gorm.io/gorm"
)

type MomentRepository struct {
	db *gorm.DB
}

func NewMomentRepository(db *gorm.DB) *MomentRepository {
	return &MomentRepository{db: db}
}

// Create stores a moment and its recipient row together.
func (r *MomentRepository) Create(moment *model.Moment, receiverID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(moment).Error; err != nil {
			return err
		}
		recipient := &model.MomentRecipient{
			MomentID:   moment.ID,
			ReceiverID: receiverID,
		}
		return tx.Create(recipient).Error
	})
}

// GetByID loads a moment with its sender and reply thread.
func (r *MomentRepository) GetByID(id uint) (*model.Moment, error) {
	var moment model.Moment
	err := r.db.Preload("Sender").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.Sender").
		First(&moment, id).Error
	if err != nil {
		return nil, err
	}
	return &moment, nil
}

// ListInbox returns moments delivered to the user, newest first.
func (r *MomentRepository) ListInbox(userID uint, limit int) ([]model.Moment, error) {
	var moments []model.Moment
	q := r.db.Preload("Sender").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.Sender").
		Joins("JOIN moment_recipient ON moment_recipient.moment_id = moment.id").
		Where("moment_recipient.receiver_id = ?", userID).
		Order("moment.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&moments).Error
	return moments, err
}

// CountUnread counts the user's deliveries that have never been read. This
// is the source of truth behind the redis counter.
func (r *MomentRepository) CountUnread(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.MomentRecipient{}).
		Where("receiver_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}

// MarkInboxRead stamps read_at on the user's unread deliveries.
func (r *MomentRepository) MarkInboxRead(userID uint, at time.Time) error {
	return r.db.Model(&model.MomentRecipient{}).
		Where("receiver_id = ? AND read_at IS NULL", userID).
		Update("read_at", at).Error
}

// ListBetween returns moments exchanged strictly between the two users in
// either direction, oldest first. The join can only yield one recipient row
// per moment here, so no further deduplication is needed.
func (r *MomentRepository) ListBetween(a, b uint) ([]model.Moment, error) {
	var moments []model.Moment
	err := r.db.Preload("Sender").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.Sender").
		Joins("JOIN moment_recipient ON moment_recipient.moment_id = moment.id").
		Where("(moment.sender_id = ? AND moment_recipient.receiver_id = ?) OR (moment.sender_id = ? AND moment_recipient.receiver_id = ?)",
			a, b, b, a).
		Order("moment.created_at ASC").
		Find(&moments).Error
	return moments, err
}

// CreateReply stores one reply.
func (r *MomentRepository) CreateReply(reply *model.Reply) error {
	return r.db.Create(reply).Error
}

// GetReplyByID loads a reply with its sender.
func (r *MomentRepository) GetReplyByID(id uint) (*model.Reply, error) {
	var reply model.Reply
	if err := r.db.Preload("Sender").First(&reply, id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// ListRepliesToSender returns replies to moments the user authored,
// excluding the user's own replies, newest first.
func (r *MomentRepository) ListRepliesToSender(userID uint, limit int) ([]model.Reply, error) {
	var replies []model.Reply
	q := r.db.Preload("Sender").
		Joins("JOIN moment ON moment.id = reply.moment_id").
		Where("moment.sender_id = ? AND reply.sender_id <> ?", userID, userID).
		Order("reply.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&replies).Error
	return replies, err
}
