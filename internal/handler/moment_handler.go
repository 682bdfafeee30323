package handler

import (
	"strconv"

	"pulse-backend/internal/service"
	"pulse-backend/pkg/jwt"
	"pulse-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type MomentHandler struct {
	moments *service.MomentService
}

func NewMomentHandler(moments *service.MomentService) *MomentHandler {
	return &MomentHandler{moments: moments}
}

// Send delivers a moment to one confirmed connection.
func (h *MomentHandler) Send(c *gin.Context) {
	type req struct {
		ReceiverID uint   `json:"receiver_id" binding:"required"`
		Text       string `json:"text" binding:"required"`
		Emoji      string `json:"emoji"`
		ImageURL   string `json:"image"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	moment, err := h.moments.Send(jwt.GetUserID(c), r.ReceiverID, r.Text, r.Emoji, r.ImageURL)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, response.NewMomentView(moment))
}

// Inbox lists the caller's received moments, newest first.
func (h *MomentHandler) Inbox(c *gin.Context) {
	moments, err := h.moments.Inbox(jwt.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, response.NewMomentViews(moments))
}

// UnreadCount returns how many received moments the caller hasn't read.
func (h *MomentHandler) UnreadCount(c *gin.Context) {
	count, err := h.moments.UnreadCount(jwt.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"unread_count": count})
}

// Reply posts a threaded reply on a moment.
func (h *MomentHandler) Reply(c *gin.Context) {
	type req struct {
		ParentMomentID uint   `json:"parent_moment_id" binding:"required"`
		Text           string `json:"text" binding:"required"`
		Emoji          string `json:"emoji"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	reply, err := h.moments.Reply(jwt.GetUserID(c), r.ParentMomentID, r.Text, r.Emoji)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, response.NewReplyView(reply))
}

// Activity returns the aggregated dashboard feed.
func (h *MomentHandler) Activity(c *gin.Context) {
	feed, err := h.moments.Activity(jwt.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, &response.ActivityView{
		Moments:         response.NewMomentViews(feed.Moments),
		Replies:         response.NewReplyViews(feed.Replies),
		PendingRequests: response.NewConnectionViews(feed.PendingRequests),
	})
}

// Conversation returns the moment history with one other user, oldest
// first.
func (h *MomentHandler) Conversation(c *gin.Context) {
	otherID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	moments, err := h.moments.Conversation(jwt.GetUserID(c), uint(otherID))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, response.NewMomentViews(moments))
}
