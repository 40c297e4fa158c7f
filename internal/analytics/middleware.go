package analytics

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin",
	"/favicon",
	"/healthz",
}

// Middleware records page views after they are served. Asset and admin paths
// are skipped, and so is anyone sending Do Not Track.
func (s *Store) Middleware(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !Trackable(c.Request.URL.Path, c.GetHeader("DNT")) || c.Request.Method != http.MethodGet {
			return
		}
		if c.Writer.Status() >= 400 {
			return
		}
		if err := s.RecordVisit(c.Request.Context(), c.ClientIP(), c.GetHeader("User-Agent"), c.Request.URL.Path); err != nil {
			log.Warn("recording visit failed", "error", err)
		}
	}
}

// Trackable reports whether a request for path should be counted.
func Trackable(path, dnt string) bool {
	if dnt == "1" {
		return false
	}
	for _, prefix := range untrackedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// RunRetention prunes old visits every interval until ctx is done.
func (s *Store) RunRetention(ctx context.Context, log *slog.Logger, retention, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Prune(ctx, retention)
			if err != nil {
				log.Warn("analytics retention failed", "error", err)
				continue
			}
			if n > 0 {
				log.Info("analytics retention", "removed", n)
			}
		}
	}
}
