package repository

import (
	"errors"

	"pulse-backend/internal/model"

	"gorm.io/gorm"
)

type ConnectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

func (r *ConnectionRepository) Create(conn *model.Connection) error {
	return r.db.Create(conn).Error
}

// UpdateStatus sets the status of one record.
func (r *ConnectionRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&model.Connection{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Reopen flips a record back to PENDING under a new direction; used when a
// REJECTED pair is re-requested.
func (r *ConnectionRepository) Reopen(id, requesterID, receiverID uint) error {
	return r.db.Model(&model.Connection{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"requester_id": requesterID,
			"receiver_id":  receiverID,
			"status":       model.StatusPending,
		}).Error
}

// GetByID loads a record with both parties preloaded.
func (r *ConnectionRepository) GetByID(id uint) (*model.Connection, error) {
	var conn model.Connection
	err := r.db.Preload("Requester").Preload("Receiver").First(&conn, id).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

// GetBetween returns the single record for the unordered pair {a,b}
// regardless of stored direction, or nil when none exists.
func (r *ConnectionRepository) GetBetween(a, b uint) (*model.Connection, error) {
	var conn model.Connection
	err := r.db.Preload("Requester").Preload("Receiver").
		Where("(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)",
			a, b, b, a).
		First(&conn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &conn, nil
}

// ExistsAccepted reports whether {a,b} has an ACCEPTED record in either
// direction. This is the authorization predicate for moments, replies and
// conversation history.
func (r *ConnectionRepository) ExistsAccepted(a, b uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Connection{}).
		Where("((requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)) AND status = ?",
			a, b, b, a, model.StatusAccepted).
		Count(&count).Error
	return count > 0, err
}

// ListPendingIncoming returns requests waiting on the user, newest first.
// Outgoing pending requests are excluded on purpose.
func (r *ConnectionRepository) ListPendingIncoming(userID uint, limit int) ([]model.Connection, error) {
	var conns []model.Connection
	q := r.db.Preload("Requester").Preload("Receiver").
		Where("receiver_id = ? AND status = ?", userID, model.StatusPending).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&conns).Error
	return conns, err
}

// ListAccepted returns the user's confirmed connections on either side.
func (r *ConnectionRepository) ListAccepted(userID uint) ([]model.Connection, error) {
	var conns []model.Connection
	err := r.db.Preload("Requester").Preload("Receiver").
		Where("(requester_id = ? OR receiver_id = ?) AND status = ?",
			userID, userID, model.StatusAccepted).
		Order("created_at DESC").
		Find(&conns).Error
	return conns, err
}
