package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gogotex/gogotex/backend/blog-service/internal/admin"
	"github.com/gogotex/gogotex/backend/blog-service/internal/post/service"
	"github.com/gogotex/gogotex/backend/blog-service/internal/sessions"
	"github.com/gogotex/gogotex/backend/blog-service/internal/storage"
	"github.com/gogotex/gogotex/backend/blog-service/internal/tokens"
	"github.com/gogotex/gogotex/backend/blog-service/pkg/middleware"
)

// maxUploadMemory bounds the multipart form held in memory; larger parts spill to disk.
const maxUploadMemory = 8 << 20

// ReadinessCheck reports whether a dependency is usable.
type ReadinessCheck func(ctx context.Context) error

// Deps are the services the router exposes.
type Deps struct {
	Posts          *service.Service
	Admin          *admin.Service
	Tokens         *tokens.Issuer
	Blacklist      *sessions.Blacklist
	Images         storage.ImageStore
	AllowedOrigins []string
	Checks         map[string]ReadinessCheck
	// Gatherer backs /metrics; defaults to the global registry.
	Gatherer prometheus.Gatherer
}

var startTime = time.Now()

// NewRouter builds the gin engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = maxUploadMemory
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), middleware.CORS(d.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", readyHandler(d.Checks))

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	RegisterSwagger(r)

	if ls, ok := d.Images.(*storage.LocalStore); ok {
		r.Static(storage.PublicPrefix, ls.Dir())
	}

	// a nil blacklist must not become a non-nil interface holding a nil pointer
	var revoked middleware.RevocationChecker
	if d.Blacklist.Enabled() {
		revoked = d.Blacklist
	}
	gate := middleware.AuthMiddleware(d.Tokens, revoked)

	auth := NewAuthHandler(d.Admin, d.Tokens, d.Blacklist)
	posts := NewPostHandler(d.Posts, d.Images)
	upload := NewUploadHandler(d.Images)

	api := r.Group("/api")
	api.POST("/login", auth.Login)
	api.POST("/logout", gate, auth.Logout)
	api.POST("/upload", gate, upload.Upload)

	api.GET("/posts", posts.List)
	api.GET("/post/:identifier", posts.Get)
	api.POST("/posts", gate, posts.Create)
	api.PUT("/posts/:id", gate, posts.Update)
	api.DELETE("/posts/:id", gate, posts.Delete)

	return r
}

// readyHandler returns 200 only when every registered dependency check passes.
func readyHandler(checks map[string]ReadinessCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		ready := true
		deps := map[string]bool{}
		for name, check := range checks {
			ok := check(ctx) == nil
			deps[name] = ok
			if !ok {
				ready = false
			}
		}

		uptime := time.Since(startTime).Round(time.Second).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	}
}
