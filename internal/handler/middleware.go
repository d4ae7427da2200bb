package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

const sessionIDKey = "session_id"

// SessionMiddleware makes sure every request carries a session id cookie and
// exposes the id to handlers. Cookies that are not uuids are replaced.
func SessionMiddleware(cookieName string, maxAge int, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cookieName)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(cookieName, sid, maxAge, "/", "", secure, true)
		c.Set(sessionIDKey, sid)

		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// LoggerMiddleware logs each request through logrus
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   status,
			"duration": time.Since(started).String(),
			"client":   c.ClientIP(),
		})

		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Debug("request served")
		}
	}
}

// RateLimitMiddleware paces requests to at most rps per second. Requests
// over the budget wait rather than fail.
func RateLimitMiddleware(rps int) gin.HandlerFunc {
	rl := ratelimit.New(rps)
	return func(c *gin.Context) {
		rl.Take()
		c.Next()
	}
}
