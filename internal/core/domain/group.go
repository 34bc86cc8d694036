package domain

// Group is a user-created group. The admin is the creator and is always a
// member; the invitation code is a unique 6-character string used to join.
type Group struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	InvitationCode string `json:"invitation_code"`
	AdminID        int    `json:"admin_id"`
}

// Health describes the current state of the server process.
type Health struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
