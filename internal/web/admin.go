package web

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionName     = "portfolio_admin"
	sessionAdminKey = "admin"
)

// AdminOptions configures the stats dashboard. It stays unmounted without a
// password hash.
type AdminOptions struct {
	Username      string
	PasswordHash  []byte
	SessionSecret string
}

func (o AdminOptions) Enabled() bool {
	return len(o.PasswordHash) > 0 && o.SessionSecret != ""
}

// HashPassword produces the hash AdminOptions expects.
func HashPassword(password string, cost int) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), cost)
}

func mountAdmin(r *gin.Engine, h *handlers, opts AdminOptions) {
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/admin",
		MaxAge:   24 * 3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	admin := r.Group("/admin", sessions.Sessions(sessionName, store))
	admin.GET("/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin_login.html", gin.H{"title": "Admin Login"})
	})
	admin.POST("/login", h.adminLogin(opts))
	admin.GET("/logout", h.adminLogout)

	auth := admin.Group("", adminRequired())
	auth.GET("/dashboard", h.adminDashboard)
	auth.GET("/api/stats", h.adminStats)
}

func (h *handlers) adminLogin(opts AdminOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(opts.Username)) == 1
		passOK := bcrypt.CompareHashAndPassword(opts.PasswordHash, []byte(password)) == nil
		if !userOK || !passOK {
			h.log.Warn("failed admin login", "visitor", h.visitorID(c))
			c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}

		session := sessions.Default(c)
		session.Set(sessionAdminKey, true)
		if err := session.Save(); err != nil {
			h.log.Error("saving admin session", "error", err)
			c.HTML(http.StatusInternalServerError, "admin_login.html", gin.H{
				"title": "Admin Login",
				"error": "Could not start a session",
			})
			return
		}

		h.log.Info("admin login", "visitor", h.visitorID(c))
		c.Redirect(http.StatusFound, "/admin/dashboard")
	}
}

func (h *handlers) adminLogout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/admin", MaxAge: -1})
	_ = session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, _ := sessions.Default(c).Get(sessionAdminKey).(bool); !ok {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (h *handlers) adminDashboard(c *gin.Context) {
	data := gin.H{"title": "Dashboard"}
	if h.stats != nil {
		stats, err := h.stats.Stats(c.Request.Context())
		if err != nil {
			h.log.Error("loading admin stats", "error", err)
			c.HTML(http.StatusInternalServerError, "admin_login.html", gin.H{
				"title": "Dashboard",
				"error": "Failed to load statistics",
			})
			return
		}
		data["stats"] = stats
	}
	c.HTML(http.StatusOK, "admin_dashboard.html", data)
}

func (h *handlers) adminStats(c *gin.Context) {
	if h.stats == nil {
		respondError(c, http.StatusNotFound, "analytics disabled")
		return
	}
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to load statistics")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// visitorID identifies a client in logs without recording its address.
func (h *handlers) visitorID(c *gin.Context) string {
	if h.stats == nil {
		return "unknown"
	}
	return h.stats.HashIP(c.ClientIP())
}
