package service

import (
	"fmt"
	"testing"
	"time"

	"pulse-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMomentSend_DeliversToConnection(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.connect(t, alice, bob)

	moment, err := env.moments.Send(alice.ID, bob.ID, "thinking of you", "💓", "")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, moment.SenderID)
	assert.Equal(t, "thinking of you", moment.Text)
	assert.Equal(t, alice.Username, moment.Sender.Username)

	require.Len(t, env.notifier.momentsSent, 1)
	assert.Equal(t, moment.ID, env.notifier.momentsSent[0])

	inbox, err := env.moments.Inbox(bob.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, moment.ID, inbox[0].ID)
}

func TestMomentSend_RequiresText(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.connect(t, alice, bob)

	_, err := env.moments.Send(alice.ID, bob.ID, "   ", "💓", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMomentSend_ForbiddenWithoutConnection(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.moments.Send(alice.ID, bob.ID, "hello", "", "")
	assert.ErrorIs(t, err, ErrForbidden)

	// A pending request is still not a connection.
	_, _, err = env.conns.Request(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = env.moments.Send(alice.ID, bob.ID, "hello", "", "")
	assert.ErrorIs(t, err, ErrForbidden)

	// The authorization failure must leave no rows behind.
	var count int64
	require.NoError(t, env.db.Model(&model.Moment{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
	assert.Empty(t, env.notifier.momentsSent)
}

func TestMomentSend_UnknownReceiverBeatsForbidden(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.moments.Send(alice.ID, 9999, "hello", "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMomentInbox_MarksRead(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.connect(t, alice, bob)

	_, err := env.moments.Send(alice.ID, bob.ID, "first", "", "")
	require.NoError(t, err)

	var before model.MomentRecipient
	require.NoError(t, env.db.Where("receiver_id = ?", bob.ID).First(&before).Error)
	assert.Nil(t, before.ReadAt)

	_, err = env.moments.Inbox(bob.ID)
	require.NoError(t, err)

	var after model.MomentRecipient
	require.NoError(t, env.db.Where("receiver_id = ?", bob.ID).First(&after).Error)
	assert.NotNil(t, after.ReadAt)
}

func TestMomentUnreadCount_TracksInbox(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.connect(t, alice, bob)

	count, err := env.moments.UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	_, err = env.moments.Send(alice.ID, bob.ID, "first", "", "")
	require.NoError(t, err)
	_, err = env.moments.Send(alice.ID, bob.ID, "second", "", "")
	require.NoError(t, err)

	count, err = env.moments.UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// Fetching the inbox marks everything read.
	_, err = env.moments.Inbox(bob.ID)
	require.NoError(t, err)

	count, err = env.moments.UnreadCount(bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	// The sender's own outbox stays at zero.
	count, err = env.moments.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestReply_ByConnectedUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.connect(t, alice, bob)

	moment, err := env.moments.Send(alice.ID, bob.ID, "ping", "", "")
	require.NoError(t, err)

	reply, err := env.moments.Reply(bob.ID, moment.ID, "pong", "✨")
	require.NoError(t, err)
	assert.Equal(t, moment.ID, reply.MomentID)
	assert.Equal(t, bob.Username, reply.Sender.Username)

	// The author is notified about the reply.
	assert.Equal(t, []string{"pong"}, env.notifier.repliesTexts[alice.ID])

	// The thread is attached to the moment.
	var replies []model.Reply
	require.NoError(t, env.db.Where("moment_id = ?", moment.ID).Find(&replies).Error)
	require.Len(t, replies, 1)
	assert.Equal(t, "pong", replies[0].Text)
}

func TestReply_AuthorAlwaysAllowedAndSilent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.connect(t, alice, bob)

	moment, err := env.moments.Send(alice.ID, bob.ID, "ping", "", "")
	require.NoError(t, err)

	// Alice replying to her own moment needs no connection check and does
	// not notify herself.
	_, err = env.moments.Reply(alice.ID, moment.ID, "addendum", "")
	require.NoError(t, err)
	assert.Empty(t, env.notifier.repliesTexts[alice.ID])
}

func TestReply_ForbiddenForStrangers(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	env.connect(t, alice, bob)

	moment, err := env.moments.Send(alice.ID, bob.ID, "ping", "", "")
	require.NoError(t, err)

	_, err = env.moments.Reply(carol.ID, moment.ID, "intruding", "")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestReply_UnknownMoment(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")

	_, err := env.moments.Reply(alice.ID, 9999, "hello", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConversation_BothDirectionsOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	env.connect(t, alice, bob)
	env.connect(t, alice, carol)

	// Interleave directions, with a moment to Carol that must not leak in.
	seedMoment(t, env, alice, bob, "one", time.Now().Add(-3*time.Minute))
	seedMoment(t, env, bob, alice, "two", time.Now().Add(-2*time.Minute))
	seedMoment(t, env, alice, carol, "private", time.Now().Add(-90*time.Second))
	seedMoment(t, env, alice, bob, "three", time.Now().Add(-time.Minute))

	history, err := env.moments.Conversation(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "one", history[0].Text)
	assert.Equal(t, "two", history[1].Text)
	assert.Equal(t, "three", history[2].Text)
}

func TestConversation_RequiresConnection(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	_, err := env.moments.Conversation(alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.moments.Conversation(alice.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivity_SectionsCappedIndependently(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	env.connect(t, alice, bob)

	// 12 received moments: only the latest 10 may surface.
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 12; i++ {
		seedMoment(t, env, bob, alice, fmt.Sprintf("m%d", i), base.Add(time.Duration(i)*time.Minute))
	}

	// 11 replies from Bob to one of Alice's moments, plus one of her own
	// that must be excluded.
	mine := seedMoment(t, env, alice, bob, "mine", base)
	for i := 0; i < 11; i++ {
		seedReply(t, env, bob, mine, fmt.Sprintf("r%d", i), base.Add(time.Duration(i)*time.Minute))
	}
	seedReply(t, env, alice, mine, "self", base.Add(time.Hour))

	// 6 pending incoming requests: capped to 5.
	for i := 0; i < 6; i++ {
		other := env.createUser(t, fmt.Sprintf("fan%d", i))
		_, _, err := env.conns.Request(other.ID, alice.ID)
		require.NoError(t, err)
	}

	feed, err := env.moments.Activity(alice.ID)
	require.NoError(t, err)
	assert.Len(t, feed.Moments, 10)
	assert.Len(t, feed.Replies, 10)
	assert.Len(t, feed.PendingRequests, 5)

	// Newest moment first, and no own replies in the reply section.
	assert.Equal(t, "m11", feed.Moments[0].Text)
	for _, r := range feed.Replies {
		assert.NotEqual(t, alice.ID, r.SenderID)
	}
}

// seedMoment writes a moment with a controlled timestamp so ordering
// assertions don't race the clock.
func seedMoment(t *testing.T, env *testEnv, from, to *model.User, text string, at time.Time) *model.Moment {
	t.Helper()

	m := &model.Moment{SenderID: from.ID, Text: text, CreatedAt: at}
	require.NoError(t, env.db.Create(m).Error)
	require.NoError(t, env.db.Create(&model.MomentRecipient{MomentID: m.ID, ReceiverID: to.ID}).Error)
	return m
}

func seedReply(t *testing.T, env *testEnv, from *model.User, m *model.Moment, text string, at time.Time) {
	t.Helper()

	require.NoError(t, env.db.Create(&model.Reply{
		MomentID:  m.ID,
		SenderID:  from.ID,
		Text:      text,
		CreatedAt: at,
	}).Error)
}
