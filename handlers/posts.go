package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gogotex/gogotex/backend/blog-service/internal/post"
	"github.com/gogotex/gogotex/backend/blog-service/internal/post/service"
	"github.com/gogotex/gogotex/backend/blog-service/internal/storage"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/logger"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/metrics"
)

// imageField is the multipart field carrying an image file.
const imageField = "image"

// postRequest binds both JSON bodies and multipart forms. Nil means "not supplied".
// An image URL only comes from JSON; a multipart "image" part is a file read by storeImage.
type postRequest struct {
	Title   *string `json:"title" form:"title"`
	Content *string `json:"content" form:"content"`
	Label   *string `json:"label" form:"label"`
	Image   *string `json:"image" form:"-"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// PostHandler serves the public read endpoints and the gated mutations.
type PostHandler struct {
	posts  *service.Service
	images storage.ImageStore
	now    func() time.Time
}

func NewPostHandler(posts *service.Service, images storage.ImageStore) *PostHandler {
	return &PostHandler{posts: posts, images: images, now: time.Now}
}

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	case errors.Is(err, service.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Errorf("%s: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return 0, false
	}
	return id, true
}

// bindPost reads a JSON or multipart body.
func bindPost(c *gin.Context) (postRequest, bool) {
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return req, false
	}
	return req, true
}

// storeImage saves the multipart image file when one was sent and returns its URL.
func (h *PostHandler) storeImage(c *gin.Context) (*string, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	fh, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	url, err := saveUpload(c, h.images, fh, h.now())
	if err != nil {
		return nil, err
	}
	return &url, nil
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		respondError(c, "list posts", err)
		return
	}
	if posts == nil {
		posts = []*post.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

// Get resolves :identifier as an id or a slug.
func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.posts.Lookup(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		respondError(c, "get post", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) Create(c *gin.Context) {
	req, ok := bindPost(c)
	if !ok {
		return
	}
	in := service.CreateInput{
		Title:   deref(req.Title),
		Content: deref(req.Content),
		Label:   deref(req.Label),
		Image:   req.Image,
	}
	// validate before touching image storage so rejected posts leave nothing behind
	if err := in.Validate(); err != nil {
		respondError(c, "create post", err)
		return
	}
	img, err := h.storeImage(c)
	if err != nil {
		respondError(c, "create post", err)
		return
	}
	if img != nil {
		in.Image = img
	}

	p, err := h.posts.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, "create post", err)
		return
	}
	metrics.PostMutations.WithLabelValues("create").Inc()
	c.JSON(http.StatusCreated, gin.H{"id": p.ID, "slug": p.Slug})
}

func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, ok := bindPost(c)
	if !ok {
		return
	}
	in := service.UpdateInput{Title: req.Title, Content: req.Content, Label: req.Label, Image: req.Image}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		respondError(c, "update post", fmt.Errorf("%w: title cannot be empty", service.ErrInvalid))
		return
	}
	// check the post exists before touching image storage
	if _, err := h.posts.Get(c.Request.Context(), id); err != nil {
		respondError(c, "update post", err)
		return
	}
	img, err := h.storeImage(c)
	if err != nil {
		respondError(c, "update post", err)
		return
	}
	if img != nil {
		in.Image = img
	}

	p, err := h.posts.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, "update post", err)
		return
	}
	metrics.PostMutations.WithLabelValues("update").Inc()
	c.JSON(http.StatusOK, p)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.posts.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, "delete post", err)
		return
	}
	metrics.PostMutations.WithLabelValues("delete").Inc()
	c.JSON(http.StatusOK, p)
}
