package domain

// User is the identity returned by the identity service at login.
type User struct {
	ID    string
	Email string
	Role  Role
}

// StaffProfile is the branch-scoped operational record fetched from the
// staff directory in phase two of the login handshake. It is absent for
// sessions established with the basic (single-phase) login variant.
type StaffProfile struct {
	StaffID     string
	Name        string
	Address     string
	Phone       string
	NationalID  string
	DateOfBirth string
	BranchID    string
}

// Session is the combined record of identity, tokens and optional staff
// profile that defines "who is signed in". It is either fully present or
// fully absent; no partial session is ever stored or exposed.
type Session struct {
	User         User
	AccessToken  string
	RefreshToken string
	Profile      *StaffProfile
}

// IsZero reports whether the session is the absent value.
func (s Session) IsZero() bool {
	return s.AccessToken == "" && s.RefreshToken == "" && s.User == (User{}) && s.Profile == nil
}
