package handlers

import (
	"path"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/dentacademy/internal/storage"
)

// UploadHandler signs direct-to-storage upload URLs for admin media uploads
// (thumbnails, note files, video posters).
type UploadHandler struct {
	store storage.ObjectStore
}

// NewUploadHandler constructs UploadHandler; store may be nil when object
// storage is not configured.
func NewUploadHandler(store storage.ObjectStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Sign returns a pre-signed PUT URL for the requested filename plus the GET
// URL the client should persist on the catalog record.
func (h *UploadHandler) Sign(c *fiber.Ctx) error {
	if h.store == nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "object storage not configured")
	}

	filename := c.Query("filename")
	if filename == "" {
		return fiber.NewError(fiber.StatusBadRequest, "filename is required")
	}

	key := uuid.NewString() + path.Ext(filename)

	uploadURL, err := h.store.PresignPut(c.Context(), key, 15*time.Minute)
	if err != nil {
		return err
	}

	downloadURL, err := h.store.PresignGet(c.Context(), key, 7*24*time.Hour)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"key":          key,
		"upload_url":   uploadURL,
		"download_url": downloadURL,
	})
}
