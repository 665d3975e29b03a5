package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gogotex/gogotex/backend/blog-service/internal/storage"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/metrics"
)

// saveUpload streams a multipart file into the image store.
func saveUpload(c *gin.Context, images storage.ImageStore, fh *multipart.FileHeader, now time.Time) (string, error) {
	f, err := fh.Open()
	if err != nil {
		metrics.ImageUploads.WithLabelValues(images.Name(), "error").Inc()
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	url, err := images.Save(c.Request.Context(), storage.ObjectName(fh.Filename, now), f, fh.Size, fh.Header.Get("Content-Type"))
	if err != nil {
		metrics.ImageUploads.WithLabelValues(images.Name(), "error").Inc()
		return "", err
	}
	metrics.ImageUploads.WithLabelValues(images.Name(), "success").Inc()
	return url, nil
}

// UploadHandler stores a standalone image and returns its public URL.
type UploadHandler struct {
	images storage.ImageStore
	now    func() time.Time
}

func NewUploadHandler(images storage.ImageStore) *UploadHandler {
	return &UploadHandler{images: images, now: time.Now}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile(imageField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no image file provided"})
		return
	}
	url, err := saveUpload(c, h.images, fh, h.now())
	if err != nil {
		logger.Errorf("upload image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
