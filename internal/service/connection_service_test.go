package service

import (
	"testing"

	"pulse-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionRequest_CreatesPending(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	conn, created, err := env.conns.Request(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, model.StatusPending, conn.Status)
	assert.Equal(t, alice.ID, conn.RequesterID)
	assert.Equal(t, bob.ID, conn.ReceiverID)

	// Only a brand-new request notifies the receiver.
	require.Len(t, env.notifier.requested, 1)
	assert.Equal(t, [2]uint{alice.ID, bob.ID}, env.notifier.requested[0])
}

func TestConnectionRequest_SelfRejected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, _, err := env.conns.Request(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConnectionRequest_UnknownReceiver(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, _, err := env.conns.Request(alice.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConnectionRequest_RepeatIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	first, created, err := env.conns.Request(alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := env.conns.Request(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.StatusPending, second.Status)

	// No second notification, and still a single record for the pair.
	assert.Len(t, env.notifier.requested, 1)
	var count int64
	require.NoError(t, env.db.Model(&model.Connection{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestConnectionRequest_CrossedRequestsAutoAccept(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	first, created, err := env.conns.Request(alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, created)

	// Bob requesting back accepts instead of creating a mirror record.
	second, created, err := env.conns.Request(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.StatusAccepted, second.Status)

	// The original direction is preserved.
	assert.Equal(t, alice.ID, second.RequesterID)
	assert.Equal(t, bob.ID, second.ReceiverID)

	connected, err := env.conns.IsConnected(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, connected)
}

func TestConnectionRespond_AcceptAndReject(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	conn, _, err := env.conns.Request(alice.ID, bob.ID)
	require.NoError(t, err)

	updated, err := env.conns.Respond(conn.ID, bob.ID, model.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, updated.Status)

	connected, err := env.conns.IsConnected(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, connected, "accepted connection must be symmetric")
}

func TestConnectionRespond_RequesterCannotRespond(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	conn, _, err := env.conns.Request(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = env.conns.Respond(conn.ID, alice.ID, model.StatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConnectionRespond_InvalidDecision(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	conn, _, err := env.conns.Request(alice.ID, bob.ID)
	require.NoError(t, err)

	_, err = env.conns.Respond(conn.ID, bob.ID, "MAYBE")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.conns.Respond(conn.ID, bob.ID, model.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestConnectionRequest_ReopenAfterRejectFlipsDirection(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	conn, _, err := env.conns.Request(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.conns.Respond(conn.ID, bob.ID, model.StatusRejected)
	require.NoError(t, err)

	// Bob changes his mind and asks Alice: same record, back to PENDING,
	// direction now reflects the new requester.
	reopened, created, err := env.conns.Request(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, conn.ID, reopened.ID)
	assert.Equal(t, model.StatusPending, reopened.Status)
	assert.Equal(t, bob.ID, reopened.RequesterID)
	assert.Equal(t, alice.ID, reopened.ReceiverID)

	// Reopening stays silent: only the original creation notified.
	assert.Len(t, env.notifier.requested, 1)

	// Alice can now respond as the receiver.
	accepted, err := env.conns.Respond(reopened.ID, alice.ID, model.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, accepted.Status)
}

func TestConnectionList_PendingShowsIncomingOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	// Alice asks Bob; Carol asks Alice.
	_, _, err := env.conns.Request(alice.ID, bob.ID)
	require.NoError(t, err)
	_, _, err = env.conns.Request(carol.ID, alice.ID)
	require.NoError(t, err)

	pending, err := env.conns.List(alice.ID, model.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1, "outgoing requests must not show as pending")
	assert.Equal(t, carol.ID, pending[0].RequesterID)
}

func TestConnectionList_DefaultsToAccepted(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	env.connect(t, alice, bob)
	_, _, err := env.conns.Request(alice.ID, carol.ID)
	require.NoError(t, err)

	// Unknown filter falls back to ACCEPTED.
	list, err := env.conns.List(alice.ID, "WHATEVER")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.StatusAccepted, list[0].Status)
}

func TestStatusBetween(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	env.connect(t, alice, bob)

	status, err := env.conns.StatusBetween(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, status)

	// Direction of the lookup doesn't matter.
	status, err = env.conns.StatusBetween(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAccepted, status)

	status, err = env.conns.StatusBetween(alice.ID, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusNone, status)
}

func TestIsConnected_PendingIsNotConnected(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, _, err := env.conns.Request(alice.ID, bob.ID)
	require.NoError(t, err)

	connected, err := env.conns.IsConnected(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, connected)
}
