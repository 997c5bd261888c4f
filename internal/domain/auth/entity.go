package auth

import (
	"time"

	"github.com/sodeng/branchops-backend-go/internal/domain/staff"
)

// EmailDomain is appended to a lowercased staff name to form the login identity.
const EmailDomain = "@fakeemail.com"

type Credential struct {
	Email        string
	PasswordHash string
	StaffID      string
	CreatedAt    time.Time
}

// Session is the identity and privilege resolved for a signed-in user.
type Session struct {
	Email   string
	StaffID string
	Name    string
	Branch  string
	Role    staff.Role
	IsAdmin bool
}

type SessionEventType string

const (
	SessionLogin   SessionEventType = "login"
	SessionRefresh SessionEventType = "refresh"
	SessionLogout  SessionEventType = "logout"
)

// SessionEvent is published whenever a user's session changes.
type SessionEvent struct {
	Type    SessionEventType `json:"type"`
	Session SessionResponse  `json:"session"`
	At      time.Time        `json:"at"`
}
