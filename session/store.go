// Package session holds per-visitor state that the browser front-end kept in
// local storage: auth tokens, display preferences, chat history and filter
// selections. Reads happen at the start of a request, writes on change,
// last-write-wins.
package session

import (
	"context"
	"errors"

	"solvo/models"
)

// ErrNotFound is returned when no state exists for a session ID.
var ErrNotFound = errors.New("session not found")

// ChatStage enumerates the chat widget flow.
const (
	ChatStageEmail    = "collecting-email"
	ChatStageScripted = "scripted"
	ChatStageFreeform = "freeform"
)

// ChatFlow is the chat widget's position in its scripted flow.
type ChatFlow struct {
	Stage         string `json:"stage"`
	Email         string `json:"email,omitempty"`
	QuestionIndex int    `json:"question_index"`
	Language      string `json:"language,omitempty"`
	Personality   string `json:"personality,omitempty"`
}

// State is everything the gateway remembers about one visitor.
type State struct {
	AccessToken   string               `json:"access_token,omitempty"`
	RefreshToken  string               `json:"refresh_token,omitempty"`
	Username      string               `json:"username,omitempty"`
	DarkMode      bool                 `json:"dark_mode"`
	CookieConsent bool                 `json:"cookie_consent"`
	SafariFilters string               `json:"safari_filters,omitempty"` // opaque JSON blob
	ChatMessages  []models.ChatMessage `json:"chat_messages,omitempty"`
	ChatFlow      ChatFlow             `json:"chat_flow"`

	// LastBookingID points the confirmation view at the booking just
	// created, replacing the SPA's navigation-state handoff.
	LastBookingID int `json:"last_booking_id,omitempty"`
}

// Authenticated reports whether the visitor holds an access token.
func (s *State) Authenticated() bool {
	return s != nil && s.AccessToken != ""
}

// ClearAuth drops the token pair and username, as done on logout and on an
// unrecoverable refresh failure.
func (s *State) ClearAuth() {
	s.AccessToken = ""
	s.RefreshToken = ""
	s.Username = ""
}

// Store persists visitor state keyed by session ID.
type Store interface {
	// Get returns the state for id, or ErrNotFound.
	Get(ctx context.Context, id string) (*State, error)
	// Save writes the state for id, resetting its TTL.
	Save(ctx context.Context, id string, state *State) error
	// Delete removes the state for id. Deleting a missing session is not an
	// error.
	Delete(ctx context.Context, id string) error
}
