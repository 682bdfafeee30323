package service

import (
	"fmt"
	"strings"
	"time"

	"pulse-backend/internal/model"
	"pulse-backend/internal/notify"
	"pulse-backend/internal/repository"
	"pulse-backend/pkg/redis"
)

// Feed caps. The three activity sections are capped independently and
// never merged into one ranking.
const (
	activityMomentLimit  = 10
	activityReplyLimit   = 10
	activityPendingLimit = 5
)

// MomentService handles moments, replies and the views over them. All
// write paths authorize through the connection engine's IsConnected
// predicate before touching storage.
type MomentService struct {
	moments     *repository.MomentRepository
	users       *repository.UserRepository
	connections *ConnectionService
	notifier    notify.Notifier
}

func NewMomentService(moments *repository.MomentRepository, users *repository.UserRepository, connections *ConnectionService, notifier notify.Notifier) *MomentService {
	return &MomentService{
		moments:     moments,
		users:       users,
		connections: connections,
		notifier:    notifier,
	}
}

// Send delivers a moment to one receiver. Only confirmed connections may
// exchange moments; the check runs before any row is written.
func (s *MomentService) Send(senderID, receiverID uint, text, emoji, imageURL string) (*model.Moment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}

	receiver, err := s.users.GetByID(receiverID)
	if err != nil {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}

	connected, err := s.connections.IsConnected(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, fmt.Errorf("%w: not connected", ErrForbidden)
	}

	moment := &model.Moment{
		SenderID: senderID,
		Text:     text,
		Emoji:    emoji,
		ImageURL: imageURL,
	}
	if err := s.moments.Create(moment, receiverID); err != nil {
		return nil, err
	}

	// Counter and notifications are best-effort side effects.
	_ = redis.IncrementUnread(receiverID)
	if sender, err := s.users.GetByID(senderID); err == nil {
		s.notifier.MomentSent(sender, receiver, moment.ID, text)
	}

	return s.moments.GetByID(moment.ID)
}

// Reply posts a threaded reply. The moment's own author may always reply;
// anyone else needs a confirmed connection to the author. The author is
// push-notified unless they replied themselves.
func (s *MomentService) Reply(replierID, momentID uint, text, emoji string) (*model.Reply, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}

	moment, err := s.moments.GetByID(momentID)
	if err != nil {
		return nil, fmt.Errorf("moment %w", ErrNotFound)
	}

	if moment.SenderID != replierID {
		connected, err := s.connections.IsConnected(replierID, moment.SenderID)
		if err != nil {
			return nil, err
		}
		if !connected {
			return nil, fmt.Errorf("%w: not authorized to reply to this moment", ErrForbidden)
		}
	}

	reply := &model.Reply{
		MomentID: momentID,
		SenderID: replierID,
		Text:     text,
		Emoji:    emoji,
	}
	if err := s.moments.CreateReply(reply); err != nil {
		return nil, err
	}

	if moment.SenderID != replierID {
		replier, err := s.users.GetByID(replierID)
		if err == nil {
			s.notifier.ReplyPosted(replier, &moment.Sender, moment.ID, text)
		}
	}

	return s.moments.GetReplyByID(reply.ID)
}

// Inbox returns the user's received moments, newest first, and marks them
// read as a side effect.
func (s *MomentService) Inbox(userID uint) ([]model.Moment, error) {
	moments, err := s.moments.ListInbox(userID, 0)
	if err != nil {
		return nil, err
	}

	_ = s.moments.MarkInboxRead(userID, time.Now())
	_ = redis.ResetUnread(userID)

	return moments, nil
}

// UnreadCount returns how many received moments the user has not read yet.
// The redis counter answers first; on a miss the count comes from the
// database and the cache is resynced best-effort.
func (s *MomentService) UnreadCount(userID uint) (int64, error) {
	if count, err := redis.GetUnread(userID); err == nil {
		return count, nil
	}

	count, err := s.moments.CountUnread(userID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetUnread(userID, count)

	return count, nil
}

// ActivityFeed is the aggregated dashboard payload.
type ActivityFeed struct {
	Moments         []model.Moment
	Replies         []model.Reply
	PendingRequests []model.Connection
}

// Activity aggregates the last received moments, the last replies to
// moments the user authored (excluding their own), and the last pending
// incoming requests.
func (s *MomentService) Activity(userID uint) (*ActivityFeed, error) {
	moments, err := s.moments.ListInbox(userID, activityMomentLimit)
	if err != nil {
		return nil, err
	}
	replies, err := s.moments.ListRepliesToSender(userID, activityReplyLimit)
	if err != nil {
		return nil, err
	}
	pending, err := s.connections.PendingIncoming(userID, activityPendingLimit)
	if err != nil {
		return nil, err
	}

	return &ActivityFeed{
		Moments:         moments,
		Replies:         replies,
		PendingRequests: pending,
	}, nil
}

// Conversation returns the full moment history between the caller and one
// other user, oldest first. Only confirmed connections may read history.
func (s *MomentService) Conversation(callerID, otherID uint) ([]model.Moment, error) {
	if _, err := s.users.GetByID(otherID); err != nil {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}

	connected, err := s.connections.IsConnected(callerID, otherID)
	if err != nil {
		return nil, err
	}
	if !connected {
		return nil, fmt.Errorf("%w: you must be in a circle to view history", ErrForbidden)
	}

	return s.moments.ListBetween(callerID, otherID)
}
