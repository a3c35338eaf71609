package session

// Role values issued by the API.
const (
	RoleAdmin      = "admin"
	RoleDepartment = "department"
)

// Profile is the user profile returned by the API at login and cached locally
// for the lifetime of the session.
type Profile struct {
	ID          string              `json:"id"`
	Email       string              `json:"email"`
	Role        string              `json:"role"`
	FirstName   string              `json:"first_name"`
	LastName    string              `json:"last_name"`
	FirstNameTH string              `json:"first_name_th,omitempty"`
	LastNameTH  string              `json:"last_name_th,omitempty"`
	Department  string              `json:"department,omitempty"`
	Position    string              `json:"position,omitempty"`
	Permissions map[string][]string `json:"permissions,omitempty"`
}

// Session pairs the bearer token with the profile it authorizes.
// Invariant: both are present or the session is absent - never one without
// the other. Stores sanitize partial state to absent on read.
type Session struct {
	Token string
	User  Profile
}

// Store is the persistence boundary for the local session. All methods are
// synchronous, and Read never fails: corrupted or partial storage content is
// treated as an absent session.
type Store interface {
	// Save writes both values. It is a silent no-op when persistent storage
	// is unavailable.
	Save(user Profile, token string)
	// Read returns the stored session, or nil when either value is missing
	// or the stored profile is malformed.
	Read() *Session
	// Clear removes token, profile, and the remember-me flag. Idempotent.
	Clear()
	// HasSession is a cheap presence check on the token only.
	HasSession() bool
	// SetRemember records the remember-me intent. Cleared by Clear.
	SetRemember(v bool)
	// Remembered reports the remember-me intent.
	Remembered() bool
}
