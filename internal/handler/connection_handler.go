package handler

import (
	"pulse-backend/internal/service"
	"pulse-backend/pkg/jwt"
	"pulse-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	connections *service.ConnectionService
}

func NewConnectionHandler(connections *service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connections: connections}
}

// Request opens (or revisits) a connection with another user. 201 only
// when a brand-new request was created; existing records come back 200.
func (h *ConnectionHandler) Request(c *gin.Context) {
	type req struct {
		ReceiverID uint `json:"receiver_id" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	conn, created, err := h.connections.Request(jwt.GetUserID(c), r.ReceiverID)
	if err != nil {
		fail(c, err)
		return
	}

	view := response.NewConnectionView(conn)
	if created {
		response.Created(c, view)
		return
	}
	response.Success(c, view)
}

// Respond lets the receiver accept or reject a pending request.
func (h *ConnectionHandler) Respond(c *gin.Context) {
	type req struct {
		ConnectionID uint   `json:"connection_id" binding:"required"`
		Status       string `json:"status" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	conn, err := h.connections.Respond(r.ConnectionID, jwt.GetUserID(c), r.Status)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, response.NewConnectionView(conn))
}

// List returns the caller's connections, filtered by ?status= (ACCEPTED by
// default, PENDING shows incoming requests only).
func (h *ConnectionHandler) List(c *gin.Context) {
	statusFilter := c.DefaultQuery("status", "ACCEPTED")

	conns, err := h.connections.List(jwt.GetUserID(c), statusFilter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, response.NewConnectionViews(conns))
}
