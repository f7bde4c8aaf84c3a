package upstream

import "solvo/session"

// SessionAuth adapts a visitor session to the client's Auth interface.
// Mutations land on the state object; the request middleware persists it
// after the handler runs.
type SessionAuth struct {
	State *session.State
}

func (a SessionAuth) AccessToken() string {
	return a.State.AccessToken
}

func (a SessionAuth) RefreshToken() string {
	return a.State.RefreshToken
}

func (a SessionAuth) SetAccessToken(token string) {
	a.State.AccessToken = token
}

func (a SessionAuth) Clear() {
	a.State.ClearAuth()
}
