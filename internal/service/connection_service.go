package service

import (
	"fmt"

	"pulse-backend/internal/model"
	"pulse-backend/internal/notify"
	"pulse-backend/internal/repository"
)

// ConnectionService owns the lifecycle of the relationship between two
// users and the IsConnected predicate every other flow authorizes against.
//
// Per unordered pair the state machine is NONE -> PENDING -> ACCEPTED or
// REJECTED, with REJECTED reopenable to PENDING by either party and a
// crossed PENDING request auto-accepting.
type ConnectionService struct {
	repo     *repository.ConnectionRepository
	users    *repository.UserRepository
	notifier notify.Notifier
}

func NewConnectionService(repo *repository.ConnectionRepository, users *repository.UserRepository, notifier notify.Notifier) *ConnectionService {
	return &ConnectionService{repo: repo, users: users, notifier: notifier}
}

// Request asks for a connection to receiverID. The returned bool is true
// only when a brand-new PENDING record was created — the one case that
// notifies the receiver.
//
// Existing-record handling:
//   - REJECTED: reopened in place, direction overwritten to the new
//     requester, status back to PENDING. No notification.
//   - PENDING where the caller is the existing receiver: the other party
//     already asked, so accept instead of duplicating. Direction unchanged.
//   - PENDING same direction, or ACCEPTED: returned unchanged.
func (s *ConnectionService) Request(requesterID, receiverID uint) (*model.Connection, bool, error) {
	if receiverID == requesterID {
		return nil, false, fmt.Errorf("%w: cannot request a connection with yourself", ErrInvalidInput)
	}

	receiver, err := s.users.GetByID(receiverID)
	if err != nil {
		return nil, false, fmt.Errorf("user %w", ErrNotFound)
	}

	existing, err := s.repo.GetBetween(requesterID, receiverID)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		switch {
		case existing.Status == model.StatusRejected:
			if err := s.repo.Reopen(existing.ID, requesterID, receiverID); err != nil {
				return nil, false, err
			}
			// Reload so the preloaded parties match the new direction.
			reopened, err := s.repo.GetByID(existing.ID)
			return reopened, false, err

		case existing.Status == model.StatusPending && existing.ReceiverID == requesterID:
			if err := s.repo.UpdateStatus(existing.ID, model.StatusAccepted); err != nil {
				return nil, false, err
			}
			existing.Status = model.StatusAccepted
			return existing, false, nil

		default:
			return existing, false, nil
		}
	}

	conn := &model.Connection{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      model.StatusPending,
	}
	if err := s.repo.Create(conn); err != nil {
		return nil, false, err
	}

	requester, err := s.users.GetByID(requesterID)
	if err == nil {
		s.notifier.ConnectionRequested(requester, receiver)
	}

	created, err := s.repo.GetByID(conn.ID)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}

// Respond lets the receiver of a pending request accept or reject it. A
// requester cannot respond to their own request: the lookup is scoped to
// records where the caller is the receiver, so anything else is NotFound.
func (s *ConnectionService) Respond(connectionID, callerID uint, decision string) (*model.Connection, error) {
	if decision != model.StatusAccepted && decision != model.StatusRejected {
		return nil, fmt.Errorf("%w: status must be ACCEPTED or REJECTED", ErrInvalidInput)
	}

	conn, err := s.repo.GetByID(connectionID)
	if err != nil || conn.ReceiverID != callerID {
		return nil, fmt.Errorf("connection request %w", ErrNotFound)
	}

	if err := s.repo.UpdateStatus(conn.ID, decision); err != nil {
		return nil, err
	}
	conn.Status = decision
	return conn, nil
}

// List returns the caller's connections. PENDING shows incoming requests
// only; any other filter falls back to the ACCEPTED default.
func (s *ConnectionService) List(callerID uint, statusFilter string) ([]model.Connection, error) {
	if statusFilter == model.StatusPending {
		return s.repo.ListPendingIncoming(callerID, 0)
	}
	return s.repo.ListAccepted(callerID)
}

// IsConnected reports whether the unordered pair has an ACCEPTED record.
// It is symmetric by construction.
func (s *ConnectionService) IsConnected(a, b uint) (bool, error) {
	return s.repo.ExistsAccepted(a, b)
}

// StatusBetween computes the viewer-relative connection status shown on
// public profiles: NONE when no record exists.
func (s *ConnectionService) StatusBetween(viewerID, otherID uint) (string, error) {
	conn, err := s.repo.GetBetween(viewerID, otherID)
	if err != nil {
		return "", err
	}
	if conn == nil {
		return model.StatusNone, nil
	}
	return conn.Status, nil
}

// PendingIncoming returns up to limit incoming requests for the activity
// feed.
func (s *ConnectionService) PendingIncoming(userID uint, limit int) ([]model.Connection, error) {
	return s.repo.ListPendingIncoming(userID, limit)
}
