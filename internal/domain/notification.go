package domain

import "errors"

// Notification-related errors
var (
	ErrTemplateEmpty    = errors.New("notification template cannot be empty")
	ErrNoRecipients     = errors.New("notification has no recipients")
	ErrRecipientEmpty   = errors.New("notification recipient cannot be empty")
	ErrUnknownTemplate  = errors.New("unknown notification template")
	ErrNotificationSend = errors.New("notification send failed")
)

// NotificationTemplate names a message template rendered by the external
// notification layer. Templates are an enumeration, not free-form.
type NotificationTemplate string

const (
	TemplateCaseAssigned  NotificationTemplate = "case-assigned"
	TemplateCaseEscalated NotificationTemplate = "case-escalated"
	TemplateCaseResolved  NotificationTemplate = "case-resolved"
	TemplateDigestDaily   NotificationTemplate = "digest-daily"
)

// ValidNotificationTemplate reports whether t names a known template.
func ValidNotificationTemplate(t NotificationTemplate) bool {
	switch t {
	case TemplateCaseAssigned, TemplateCaseEscalated, TemplateCaseResolved, TemplateDigestDaily:
		return true
	}
	return false
}

// BatchResult summarizes the outcome of a multi-recipient notification job.
// A batch reports per-recipient counts instead of failing wholesale when a
// single recipient errors.
type BatchResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}
