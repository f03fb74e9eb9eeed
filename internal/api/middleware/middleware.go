package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/mycampushub/consulting-sub007/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Logger logs each request with method, path, status and latency
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logrus.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": c.GetString("request_id"),
			"client_ip":  c.ClientIP(),
		}).Info("request completed")
	}
}

// Recovery recovers from panics and returns a 500
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logrus.WithFields(logrus.Fields{
					"path":       c.Request.URL.Path,
					"request_id": c.GetString("request_id"),
					"panic":      err,
				}).Error("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
		}()
		c.Next()
	}
}

// RequestID attaches a request id to the context and response headers
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// CORS applies the configured allowed origins
func CORS(cfg *config.Config) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowed[origin] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowed[origin] || allowed["*"]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID, X-Tenant-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// TenantResolver looks tenants up by subdomain or id
type TenantResolver interface {
	ResolveSubdomain(subdomain string) (uuid.UUID, bool)
	ResolveID(id uuid.UUID) bool
}

// Tenant resolves the calling tenant and aborts requests that carry none.
// Resolution order: explicit X-Tenant-ID header, then the Host subdomain
// under the configured base domain. How the subdomain maps to a tenant is
// the resolver's concern; handlers only ever see the resolved id.
func Tenant(cfg *config.Config, resolver TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("X-Tenant-ID"); header != "" {
			id, err := uuid.Parse(header)
			if err != nil || !resolver.ResolveID(id) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown tenant"})
				return
			}
			setTenant(c, id)
			return
		}

		host := c.Request.Host
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		suffix := "." + cfg.BaseDomain
		if !strings.HasSuffix(host, suffix) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown tenant"})
			return
		}
		subdomain := strings.TrimSuffix(host, suffix)

		id, ok := resolver.ResolveSubdomain(subdomain)
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Unknown tenant"})
			return
		}
		setTenant(c, id)
	}
}

func setTenant(c *gin.Context, id uuid.UUID) {
	c.Set("tenant_id", id.String())
	c.Set("tenant_uuid", id)
	c.Next()
}

// TenantID extracts the resolved tenant id from the request context
func TenantID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("tenant_uuid")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
