package model

// EventKind tags a direct account-state notification. Events are
// constructed and consumed within a single call; they have no
// independent lifecycle and are never persisted.
type EventKind string

const (
	EventUserBanned      EventKind = "user_banned"
	EventUserSuspended   EventKind = "user_suspended"
	EventPostApproved    EventKind = "post_approved"
	EventPostUnpublished EventKind = "post_unpublished"
	EventPostDeleted     EventKind = "post_deleted"
)

// RequiresPost reports whether the event kind renders post details.
func (k EventKind) RequiresPost() bool {
	switch k {
	case EventPostApproved, EventPostUnpublished, EventPostDeleted:
		return true
	}
	return false
}

// PostRef is the optional post snapshot carried by a notification
// event. Title is only trusted when the row is no longer resolvable
// (the post was deleted before the notification fired).
type PostRef struct {
	ID    int
	Title string
}
