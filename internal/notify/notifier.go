package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"pulse-backend/internal/model"
	"pulse-backend/pkg/logger"
	"pulse-backend/pkg/mailer"
	"pulse-backend/pkg/push"
	"pulse-backend/pkg/ws"

	"go.uber.org/zap"
)

// Push payload type tags.
const (
	EventConnectionRequest = "connection_request"
	EventMoment            = "moment"
	EventReply             = "reply"
)

// Notifier is the side-channel capability handed to services. Every method
// is fire-and-forget: failures are logged, never returned, and never roll
// back the triggering operation.
type Notifier interface {
	Welcome(user *model.User)
	ConnectionRequested(requester, receiver *model.User)
	MomentSent(sender, receiver *model.User, momentID uint, text string)
	ReplyPosted(replier, momentOwner *model.User, momentID uint, text string)
}

// Dispatcher fans events out over email, FCM push and the realtime
// websocket channel. It is constructed once in main and injected; its
// readiness lives in the mailer/push clients it holds, not in package
// state.
type Dispatcher struct {
	mail *mailer.Mailer
	push *push.Client
	ws   *ws.Manager
}

// NewDispatcher builds the dispatcher from its channels. Any of them may be
// in degraded (no-op) mode.
func NewDispatcher(mail *mailer.Mailer, pushClient *push.Client, wsManager *ws.Manager) *Dispatcher {
	return &Dispatcher{mail: mail, push: pushClient, ws: wsManager}
}

// Welcome greets a new signup by email.
func (d *Dispatcher) Welcome(user *model.User) {
	d.sendMail(user,
		"Welcome to Pulse! 💓",
		fmt.Sprintf("Hey %s, welcome to Pulse. Start sharing your heartbeat with those who matter most.", user.Username),
	)
}

// ConnectionRequested notifies the receiver of a brand-new incoming
// request. Reopened and auto-accepted requests deliberately stay silent.
func (d *Dispatcher) ConnectionRequested(requester, receiver *model.User) {
	d.sendMail(receiver,
		"New Circle Request 💓",
		fmt.Sprintf("Hey %s, %s wants to join your circle on Pulse! Spark a heartbeat now.", receiver.Username, requester.Username),
	)
	d.sendPush(receiver,
		"New Circle Request 💓",
		fmt.Sprintf("%s wants to join your circle! Spark a heartbeat now.", requester.Username),
		map[string]string{
			"type":      EventConnectionRequest,
			"sender_id": strconv.FormatUint(uint64(requester.ID), 10),
		},
	)
}

// MomentSent notifies a moment's recipient over all three channels.
func (d *Dispatcher) MomentSent(sender, receiver *model.User, momentID uint, text string) {
	d.sendMail(receiver,
		fmt.Sprintf("Pulse from %s 💓", sender.Username),
		fmt.Sprintf("You've received a new moment: '%s'. Open Pulse to reveal the heartbeat.", text),
	)
	d.sendPush(receiver,
		fmt.Sprintf("Pulse from %s 💓", sender.Username),
		fmt.Sprintf("You've received a new moment: '%s'.", text),
		map[string]string{
			"type":      EventMoment,
			"moment_id": strconv.FormatUint(uint64(momentID), 10),
			"sender_id": strconv.FormatUint(uint64(sender.ID), 10),
		},
	)
}

// ReplyPosted notifies the moment's author about a reply. Push and
// websocket only: replies never email.
func (d *Dispatcher) ReplyPosted(replier, momentOwner *model.User, momentID uint, text string) {
	d.sendPush(momentOwner,
		fmt.Sprintf("New Reply from %s ✨", replier.Username),
		fmt.Sprintf("'%s'", text),
		map[string]string{
			"type":      EventReply,
			"moment_id": strconv.FormatUint(uint64(momentID), 10),
			"sender_id": strconv.FormatUint(uint64(replier.ID), 10),
		},
	)
}

func (d *Dispatcher) sendMail(to *model.User, subject, body string) {
	if err := d.mail.Send(to.Email, subject, body); err != nil {
		logger.Warn("notify: email send failed",
			zap.Uint("user_id", to.ID),
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

// sendPush delivers over FCM and mirrors the payload to the user's live
// websocket connection when present.
func (d *Dispatcher) sendPush(to *model.User, title, body string, data map[string]string) {
	if err := d.push.Send(context.Background(), to.FCMToken, title, body, data); err != nil {
		logger.Warn("notify: push send failed",
			zap.Uint("user_id", to.ID),
			zap.String("title", title),
			zap.Error(err),
		)
	}

	if d.ws == nil {
		return
	}
	event := map[string]string{"title": title, "body": body}
	for k, v := range data {
		event[k] = v
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	d.ws.SendToUser(to.ID, payload)
}
