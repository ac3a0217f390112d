package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActionType is the closed set of privileged actions recorded in the
// audit trail.
type ActionType string

const (
	ActionLogin          ActionType = "login"
	ActionViewLogs       ActionType = "view_logs"
	ActionViewStats      ActionType = "view_stats"
	ActionUserManagement ActionType = "user_management"
)

// Valid reports whether t is one of the known action types.
func (t ActionType) Valid() bool {
	switch t {
	case ActionLogin, ActionViewLogs, ActionViewStats, ActionUserManagement:
		return true
	}
	return false
}

// AuditEntry records one privileged action. Entries are append-only and
// owned by the system; the acting user cannot mutate them.
type AuditEntry struct {
	ID          string     `json:"entry_id"`
	ActionType  ActionType `json:"action_type"`
	PerformedBy string     `json:"performed_by"`
	Details     string     `json:"details,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewAuditEntry builds an audit entry attributed to the acting user.
func NewAuditEntry(action ActionType, performedBy, details string) *AuditEntry {
	return &AuditEntry{
		ID:          uuid.New().String(),
		ActionType:  action,
		PerformedBy: performedBy,
		Details:     details,
		CreatedAt:   time.Now().UTC(),
	}
}
