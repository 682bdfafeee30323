package handler

import (
	"errors"
	"net/http"
	"strconv"

	"pulse-backend/internal/service"
	"pulse-backend/pkg/jwt"
	"pulse-backend/pkg/response"
	"pulse-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

type PhotoHandler struct {
	photos *service.PhotoService
}

func NewPhotoHandler(photos *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// Upload places an image in one of the caller's four profile slots; 201
// when the slot was empty, 200 when it replaced an existing photo.
func (h *PhotoHandler) Upload(c *gin.Context) {
	type req struct {
		ImageURL string `json:"image" binding:"required"`
		Order    int    `json:"order"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if r.Order == 0 {
		r.Order = 1
	}

	photo, created, err := h.photos.Upsert(jwt.GetUserID(c), r.Order, r.ImageURL)
	if err != nil {
		fail(c, err)
		return
	}

	view := response.NewPhotoView(photo)
	if created {
		response.Created(c, view)
		return
	}
	response.Success(c, view)
}

// Delete removes one of the caller's profile photos.
func (h *PhotoHandler) Delete(c *gin.Context) {
	photoID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid photo id")
		return
	}

	if err := h.photos.Delete(jwt.GetUserID(c), uint(photoID)); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List returns the caller's profile photos ordered by slot.
func (h *PhotoHandler) List(c *gin.Context) {
	photos, err := h.photos.List(jwt.GetUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, response.NewPhotoViews(photos))
}

// PresignUpload grants a direct-to-S3 upload URL for a media object.
func (h *PhotoHandler) PresignUpload(c *gin.Context) {
	type req struct {
		Filename    string `json:"filename" binding:"required"`
		ContentType string `json:"content_type" binding:"required"`
		Kind        string `json:"kind"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	prefix := "moments"
	if r.Kind == "profile_photo" {
		prefix = "profile_photos"
	}

	upload, err := h.photos.PresignUpload(c.Request.Context(), prefix, r.Filename, r.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			response.Unavailable(c, "media storage not configured", nil)
			return
		}
		fail(c, err)
		return
	}
	response.Success(c, upload)
}
