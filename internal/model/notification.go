package model

import "time"

// NotificationType categorises a Notification.
type NotificationType string

const (
	NotificationApplicationAccepted NotificationType = "APPLICATION_ACCEPTED"
	NotificationApplicationRejected NotificationType = "APPLICATION_REJECTED"
	NotificationMatchEnded          NotificationType = "MATCH_ENDED"
)

// IsValid reports whether t is one of the known notification types.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationApplicationAccepted, NotificationApplicationRejected, NotificationMatchEnded:
		return true
	}
	return false
}

// Notification is an asynchronous event addressed to a user.
type Notification struct {
	ID        int64
	UserID    string
	Type      NotificationType
	Title     string
	Message   string
	RelatedID *int64
	IsRead    bool
	CreatedAt time.Time
}

// NewNotification is a request to create a Notification.
type NewNotification struct {
	UserID    string
	Type      NotificationType
	Title     string
	Message   string
	RelatedID *int64
}
