// Package audit emits structured security events to the log sink. Emission
// is fire-and-forget: it never fails the operation that produced the event.
package audit

import "time"

// Action tags for security-relevant operations.
const (
	ActionLogin          = "login"
	ActionSignup         = "signup"
	ActionProfileView    = "profile_view"
	ActionAdminUsersList = "admin_users_list"
	ActionDBChange       = "db_change"
)

// Event is a single audit record. It is written once to the sink and not
// retained afterwards. Token and password-hash values never appear in events.
type Event struct {
	Timestamp time.Time
	Action    string
	UserID    *int64
	IP        string

	// Data carries the parsed payload of a db_change event.
	Data map[string]any
	// Raw carries the payload text when it could not be parsed.
	Raw string
}
