package handler

import (
	"strconv"

	"pulse-backend/internal/service"
	"pulse-backend/pkg/jwt"
	"pulse-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users       *service.UserService
	connections *service.ConnectionService
}

func NewUserHandler(users *service.UserService, connections *service.ConnectionService) *UserHandler {
	return &UserHandler{users: users, connections: connections}
}

// Signup creates an account and returns the token pair.
func (h *UserHandler) Signup(c *gin.Context) {
	type req struct {
		Username    string `json:"username" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		Password    string `json:"password" binding:"required"`
		AvatarEmoji string `json:"avatar_emoji"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, tokens, err := h.users.Signup(r.Username, r.Email, r.Password, r.AvatarEmoji)
	if err != nil {
		fail(c, err)
		return
	}

	response.Created(c, &response.TokenPairView{
		User:    response.NewUserView(user),
		Access:  tokens.Access,
		Refresh: tokens.Refresh,
	})
}

// Login checks credentials and returns a fresh token pair.
func (h *UserHandler) Login(c *gin.Context) {
	type req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, tokens, err := h.users.Login(r.Email, r.Password)
	if err != nil {
		response.Unauthorized(c, "invalid credentials")
		return
	}

	response.Success(c, &response.TokenPairView{
		User:    response.NewUserView(user),
		Access:  tokens.Access,
		Refresh: tokens.Refresh,
	})
}

// GetProfile returns the caller's own profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.users.Profile(jwt.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, response.NewUserView(user))
}

// UpdateProfile changes the caller's mutable profile fields.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	type req struct {
		Email       string `json:"email"`
		AvatarEmoji string `json:"avatar_emoji"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.UpdateProfile(jwt.GetUserID(c), r.Email, r.AvatarEmoji)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, response.NewUserView(user))
}

// RegisterPushToken stores the caller's device push token.
func (h *UserHandler) RegisterPushToken(c *gin.Context) {
	type req struct {
		FCMToken string `json:"fcm_token" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.users.RegisterPushToken(jwt.GetUserID(c), r.FCMToken); err != nil {
		fail(c, err)
		return
	}
	response.SuccessWithMessage(c, "token registered", nil)
}

// Search finds users by username substring or exact invite code, shaped as
// public profiles relative to the caller.
func (h *UserHandler) Search(c *gin.Context) {
	callerID := jwt.GetUserID(c)
	query := c.Query("query")

	users, err := h.users.Search(callerID, query)
	if err != nil {
		fail(c, err)
		return
	}

	views := make([]*response.PublicUserView, 0, len(users))
	for i := range users {
		status, err := h.connections.StatusBetween(callerID, users[i].ID)
		if err != nil {
			fail(c, err)
			return
		}
		views = append(views, response.NewPublicUserView(&users[i], status))
	}
	response.Success(c, views)
}

// PublicProfile returns another user's profile with the caller-relative
// connection status.
func (h *UserHandler) PublicProfile(c *gin.Context) {
	callerID := jwt.GetUserID(c)

	otherID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	user, err := h.users.PublicProfile(uint(otherID))
	if err != nil {
		fail(c, err)
		return
	}

	status, err := h.connections.StatusBetween(callerID, user.ID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, response.NewPublicUserView(user, status))
}
