package state

import (
	"errors"
	"strings"
	"time"
)

// SessionState is the persistent source-of-truth for one conversation.
// PatientName is the single piece of cross-turn routing state: it is set at
// most once and never cleared within the session. History is append-only.
type SessionState struct {
	SessionID   string     `json:"session_id"`
	PatientName string     `json:"patient_name,omitempty"`
	History     []Exchange `json:"history,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Exchange struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrIdentityAlreadySet = errors.New("patient identity is already set")
	ErrEmptyPatientName   = errors.New("patient name is empty")
)

func NewSessionState(sessionID string, now time.Time) *SessionState {
	return &SessionState{
		SessionID: sessionID,
		UpdatedAt: now.UTC(),
	}
}

func (s *SessionState) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// IdentityKnown reports whether the patient name has been captured.
func (s *SessionState) IdentityKnown() bool {
	return s != nil && strings.TrimSpace(s.PatientName) != ""
}

// CapturePatientName sets the patient identity exactly once. A second call
// fails regardless of the candidate, which keeps the identity immutable for
// the remainder of the session.
func (s *SessionState) CapturePatientName(name string, now time.Time) error {
	if s.IdentityKnown() {
		return ErrIdentityAlreadySet
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyPatientName
	}
	s.PatientName = trimmed
	s.Touch(now)
	return nil
}

// Append records one history entry. History only ever grows; a failed turn
// appends its error notice and nothing else changes.
func (s *SessionState) Append(role, text string, now time.Time) {
	s.History = append(s.History, Exchange{Role: role, Text: text})
	s.Touch(now)
}

func (s *SessionState) Validate() error {
	if strings.TrimSpace(s.SessionID) == "" {
		return ErrInvalidSession
	}
	for _, ex := range s.History {
		if ex.Role != RoleUser && ex.Role != RoleAssistant {
			return errors.New("history entry has unknown role: " + ex.Role)
		}
	}
	return nil
}
