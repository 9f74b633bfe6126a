// Package auth owns sign-in, sign-up, sign-out and session-to-role
// resolution for the portal. A single Service instance is constructed at
// startup and handed to the web layer; nothing else mutates session state.
package auth

import (
	"context"
	"time"
)

// Session origins. Only password sessions grant access; a session created by
// an email-confirmation flow is an anomaly and is revoked on resolve.
const (
	OriginPassword     = "password"
	OriginConfirmation = "confirmation"
)

// Roles recognised by the access gates.
const (
	RoleMember     = "member"
	RoleCommission = "commission"
)

// User is the external identity record. Read-only outside this package.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	ConfirmedAt  *time.Time
	LastSignInAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is a live authenticated browser context.
type Session struct {
	ID        string
	UserID    string
	Origin    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Profile is the one-to-one extension of User carrying the role string.
type Profile struct {
	ID        string
	UserID    string
	FullName  string
	Position  string
	PhotoURL  string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// State is the externally observable authentication state.
//
// Role flags are computed together and only while Loading is false; callers
// never observe flags belonging to a different user than State.User.
type State struct {
	User               *User
	Session            *Session
	Profile            *Profile
	IsMember           bool
	IsCommissionMember bool
	Loading            bool
}

// Anonymous returns the empty signed-out state.
func Anonymous() State {
	return State{}
}

// RoleFlags derives the access flags from a profile role string.
// Commission members are members too.
func RoleFlags(role string) (isMember, isCommission bool) {
	switch role {
	case RoleCommission:
		return true, true
	case RoleMember:
		return true, false
	default:
		return false, false
	}
}

// UserStore persists identity records.
type UserStore interface {
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	PutUser(ctx context.Context, user User) error
	MarkUserConfirmed(ctx context.Context, id string, at time.Time) error
	MarkUserSignedIn(ctx context.Context, id string, at time.Time) error
}

// SessionStore persists web sessions.
type SessionStore interface {
	GetSession(ctx context.Context, id string) (Session, error)
	PutSession(ctx context.Context, session Session) error
	RevokeSession(ctx context.Context, id string, at time.Time) error
}

// ProfileStore persists per-user profiles.
type ProfileStore interface {
	GetProfileByUserID(ctx context.Context, userID string) (Profile, error)
	PutProfile(ctx context.Context, profile Profile) error
	UpdateProfile(ctx context.Context, profile Profile) error
}

// Store aggregates the persistence surface the Service needs.
type Store interface {
	UserStore
	SessionStore
	ProfileStore
}
