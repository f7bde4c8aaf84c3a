package middleware

import (
	"encoding/json"
	"net/http"

	"solvo/config"
	"solvo/session"
	"solvo/upstream"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	stateKey     = "sessionState"
	sessionIDKey = "sessionID"
)

// SessionMiddleware resolves the visitor's session from the session cookie,
// creating one on first contact, and persists any state change after the
// handler runs.
func SessionMiddleware(store session.Store) gin.HandlerFunc {
	cookieName := config.AppConfig.SessionCookieName
	return func(c *gin.Context) {
		logger := zap.L()

		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cookieName, sessionID, int(config.SessionTTL().Seconds()), "/", "", config.IsProduction(), true)
		}

		state, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			if err != session.ErrNotFound {
				logger.Warn("session load failed, starting fresh", zap.Error(err))
			}
			state = &session.State{}
		}
		before, _ := json.Marshal(state)

		c.Set(sessionIDKey, sessionID)
		c.Set(stateKey, state)
		c.Next()

		after, _ := json.Marshal(state)
		if string(before) == string(after) {
			return
		}
		if err := store.Save(c.Request.Context(), sessionID, state); err != nil {
			logger.Error("session save failed", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}
}

// GetState returns the request's session state. The session middleware must
// have run.
func GetState(c *gin.Context) *session.State {
	return c.MustGet(stateKey).(*session.State)
}

// GetSessionID returns the request's session ID.
func GetSessionID(c *gin.Context) string {
	return c.MustGet(sessionIDKey).(string)
}

// GetAuth adapts the request's session state to the upstream auth source.
// Token mutations made by the client land on the state and are persisted by
// the session middleware.
func GetAuth(c *gin.Context) *upstream.SessionAuth {
	return &upstream.SessionAuth{State: GetState(c)}
}
