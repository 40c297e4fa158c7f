package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hybridzdynamics/portfolio/internal/analytics"
	"github.com/hybridzdynamics/portfolio/internal/contact"
	"github.com/hybridzdynamics/portfolio/internal/content"
	"github.com/hybridzdynamics/portfolio/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var ginOnce sync.Once

type recordingSender struct {
	mu    sync.Mutex
	err   error
	calls []contact.Message
}

func (s *recordingSender) Send(ctx context.Context, msg contact.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, msg)
	return s.err
}

func newTestRouter(t *testing.T, sender contact.Sender, mutate func(*Options)) *gin.Engine {
	t.Helper()
	ginOnce.Do(func() { gin.SetMode(gin.TestMode) })

	site, err := content.Load()
	require.NoError(t, err)

	opts := Options{Site: site, Sender: sender, Logger: logging.Discard()}
	if mutate != nil {
		mutate(&opts)
	}
	r, err := NewRouter(opts)
	require.NoError(t, err)
	return r
}

func postForm(r http.Handler, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var filled = url.Values{
	"name":    {"Ada"},
	"email":   {"ada@example.com"},
	"message": {"Loved the DT Horror site"},
}

func TestHomeRendersEveryEntry(t *testing.T) {
	r := newTestRouter(t, &recordingSender{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Equal(t, 6, strings.Count(body, `class="card website-card"`))
	assert.Equal(t, 3, strings.Count(body, `class="card project-card"`))
	assert.Equal(t, 4, strings.Count(body, `class="card skill-card"`))
	assert.Contains(t, body, "Mythralilos: Realms Unbound")
	assert.Contains(t, body, `data-reveal-threshold="0.3"`)
	assert.Contains(t, body, `data-reveal-delay="0.6"`, "sixth website card is staggered")
	assert.Contains(t, body, `hx-post="/contact"`)
	assert.Contains(t, body, `class="object-cover w-full h-full"`)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestHomeLinksCanonicalURL(t *testing.T) {
	r := newTestRouter(t, &recordingSender{}, func(o *Options) { o.BaseURL = "https://hybridz.example.com" })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<link rel="canonical" href="https://hybridz.example.com/">`)
	assert.Contains(t, w.Body.String(), `<meta property="og:url" content="https://hybridz.example.com/">`)

	w = httptest.NewRecorder()
	newTestRouter(t, &recordingSender{}, nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotContains(t, w.Body.String(), `rel="canonical"`)
}

func TestStaticAssetsAreServed(t *testing.T) {
	r := newTestRouter(t, &recordingSender{}, nil)

	for _, path := range []string{"/static/js/effects.js", "/static/css/site.css", "/static/img/placeholder.svg"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, &recordingSender{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestContactSuccessClearsForm(t *testing.T) {
	sender := &recordingSender{}
	r := newTestRouter(t, sender, nil)

	w := postForm(r, "/contact", filled, true)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Message sent!")
	assert.NotContains(t, body, "toast-destructive")
	assert.NotContains(t, body, "Ada")
	assert.NotContains(t, body, "<html", "HTMX gets only the fragment")

	require.Len(t, sender.calls, 1)
	assert.Equal(t, contact.Message{Name: "Ada", Email: "ada@example.com", Message: "Loved the DT Horror site"}, sender.calls[0])
}

func TestContactFailureKeepsForm(t *testing.T) {
	sender := &recordingSender{err: contact.ErrSubmissionFailed}
	r := newTestRouter(t, sender, nil)

	w := postForm(r, "/contact", filled, true)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "There was a problem sending your message. Please try again.")
	assert.Contains(t, body, "toast-destructive")
	assert.Contains(t, body, `value="Ada"`)
	assert.Contains(t, body, "Loved the DT Horror site")
	assert.Len(t, sender.calls, 1)
}

func TestContactPlainPostRendersPage(t *testing.T) {
	sender := &recordingSender{err: errors.New("boom")}
	r := newTestRouter(t, sender, nil)

	w := postForm(r, "/contact", filled, false)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "<html")
	assert.Contains(t, w.Body.String(), `value="ada@example.com"`)
}

func TestContactIncompleteIsNotSent(t *testing.T) {
	sender := &recordingSender{}
	r := newTestRouter(t, sender, nil)

	w := postForm(r, "/contact", url.Values{"name": {"Ada"}}, false)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, sender.calls)
}

func TestAPIContact(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		sendErr    error
		wantStatus int
		wantCalls  int
	}{
		{name: "sent", body: `{"name":"Ada","email":"ada@example.com","message":"hi"}`, wantStatus: http.StatusOK, wantCalls: 1},
		{name: "endpoint failure", body: `{"name":"Ada","email":"ada@example.com","message":"hi"}`, sendErr: contact.ErrSubmissionFailed, wantStatus: http.StatusBadGateway, wantCalls: 1},
		{name: "invalid email", body: `{"name":"Ada","email":"ada","message":"hi"}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "malformed json", body: `{"name":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &recordingSender{err: tt.sendErr}
			r := newTestRouter(t, sender, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Len(t, sender.calls, tt.wantCalls)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, true, resp["ok"])
			} else {
				assert.NotEmpty(t, resp["error"])
			}
		})
	}
}

func TestAnalyticsCountsPagesAndOutcomes(t *testing.T) {
	store, err := analytics.Open(context.Background())
	require.NoError(t, err)
	defer store.Close()

	sender := &recordingSender{}
	r := newTestRouter(t, sender, func(o *Options) { o.Analytics = store })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
	postForm(r, "/contact", filled, true)
	sender.err = contact.ErrSubmissionFailed
	postForm(r, "/contact", filled, true)

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalVisitors)
	assert.EqualValues(t, 1, stats.ContactsSent)
	assert.EqualValues(t, 1, stats.ContactsFailed)
}

func TestAdminDisabledWithoutPassword(t *testing.T) {
	r := newTestRouter(t, &recordingSender{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/login", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminLoginFlow(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	store, err := analytics.Open(context.Background())
	require.NoError(t, err)
	defer store.Close()

	r := newTestRouter(t, &recordingSender{}, func(o *Options) {
		o.Analytics = store
		o.Admin = AdminOptions{Username: "admin", PasswordHash: hash, SessionSecret: "0123456789abcdef0123456789abcdef"}
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	w = postForm(r, "/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	w = postForm(r, "/admin/login", url.Values{"username": {"admin"}, "password": {"correct horse"}}, false)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Recent visitors")

	req = httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var stats analytics.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Zero(t, stats.ContactsSent)
}

func TestAdminRejectsSessionsFromAnotherSecret(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	withSecret := func(secret string) *gin.Engine {
		return newTestRouter(t, &recordingSender{}, func(o *Options) {
			o.Admin = AdminOptions{Username: "admin", PasswordHash: hash, SessionSecret: secret}
		})
	}
	other := withSecret("0123456789abcdef0123456789abcdef")
	target := withSecret("fedcba9876543210fedcba9876543210")

	w := postForm(other, "/admin/login", url.Values{"username": {"admin"}, "password": {"correct horse"}}, false)
	require.Equal(t, http.StatusFound, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	for _, path := range []string{"/admin/dashboard", "/admin/api/stats"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w = httptest.NewRecorder()
		target.ServeHTTP(w, req)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/admin/login", w.Header().Get("Location"), path)
	}
}
