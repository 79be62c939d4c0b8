package client

import "time"

// Session is the explicit auth-state object produced by Login. Views that
// need authenticated calls receive the session instead of reading token
// state ambiently, and Logout is an explicit lifecycle transition.
type Session struct {
	token     string
	userID    string
	username  string
	expiresAt time.Time
}

// sessionTTL mirrors the server's two-hour login token.
const sessionTTL = 2 * time.Hour

func newSession(token, userID, username string) *Session {
	return &Session{
		token:     token,
		userID:    userID,
		username:  username,
		expiresAt: time.Now().Add(sessionTTL),
	}
}

// Authenticated reports whether the session is live: logged in and not
// past the token's lifetime.
func (s *Session) Authenticated() bool {
	return s != nil && s.token != "" && time.Now().Before(s.expiresAt)
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// UserID returns the logged-in user's id.
func (s *Session) UserID() string { return s.userID }

// Username returns the logged-in username.
func (s *Session) Username() string { return s.username }

// Logout clears the session.
func (s *Session) Logout() {
	s.token = ""
	s.userID = ""
	s.username = ""
	s.expiresAt = time.Time{}
}
