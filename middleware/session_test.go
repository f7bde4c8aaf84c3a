package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"solvo/config"
	"solvo/session"

	"github.com/gin-gonic/gin"
)

func newRouter(store session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(store))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": GetState(c).Username})
	})
	r.POST("/login-as-jane", func(c *gin.Context) {
		state := GetState(c)
		state.AccessToken = "acc"
		state.Username = "jane"
		c.Status(http.StatusNoContent)
	})
	r.GET("/private", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestSessionCookieIssuedOnFirstContact(t *testing.T) {
	config.LoadConfig()
	r := newRouter(session.NewMemoryStore())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	var found bool
	for _, c := range w.Result().Cookies() {
		if c.Name == config.AppConfig.SessionCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Errorf("no session cookie issued: %v", w.Result().Cookies())
	}
}

func TestSessionStatePersistsAcrossRequests(t *testing.T) {
	config.LoadConfig()
	store := session.NewMemoryStore()
	r := newRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login-as-jane", nil))
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no cookie issued on first request")
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if body := w2.Body.String(); body != `{"username":"jane"}` {
		t.Errorf("second request body = %s", body)
	}
}

func TestSessionNotSavedWhenUnchanged(t *testing.T) {
	config.LoadConfig()
	store := session.NewMemoryStore()
	r := newRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	var sessionID string
	for _, c := range w.Result().Cookies() {
		if c.Name == config.AppConfig.SessionCookieName {
			sessionID = c.Value
		}
	}
	if _, err := store.Get(context.Background(), sessionID); err != session.ErrNotFound {
		t.Errorf("read-only request persisted a session: err = %v", err)
	}
}

func TestRequireAuthBlocksAnonymous(t *testing.T) {
	config.LoadConfig()
	r := newRouter(session.NewMemoryStore())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if body := w.Body.String(); !containsRedirect(body) {
		t.Errorf("body missing login redirect: %s", body)
	}
}

func containsRedirect(body string) bool {
	return len(body) > 0 && (body == `{"error":"authentication required","redirect":"/login"}` ||
		// key order is not guaranteed
		body == `{"redirect":"/login","error":"authentication required"}`)
}

func TestAuthenticatedSessionPassesGate(t *testing.T) {
	config.LoadConfig()
	r := newRouter(session.NewMemoryStore())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login-as-jane", nil))

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w2.Code)
	}
}
