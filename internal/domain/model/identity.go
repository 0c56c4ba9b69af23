package model

// Role distinguishes staff accounts from shop clients.
type Role string

const (
	RoleStaff  Role = "staff"
	RoleClient Role = "client"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	Subject string
	Role    Role
}

// IsStaff reports whether the caller may run privileged commands.
func (p Principal) IsStaff() bool {
	return p.Role == RoleStaff
}

// Identity is the profile returned by the external identity provider.
type Identity struct {
	Subject    string
	GivenName  string
	FamilyName string
	Email      string
	Picture    string
}

// Asset is a binary attached to a command, uploaded before dispatch.
type Asset struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Notification is an e-mail addressed to a client.
type Notification struct {
	To      string
	Subject string
	HTML    string
}
