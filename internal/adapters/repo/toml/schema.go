package toml

import "fmt"

const currentSchemaVersion = 1

// fileSchema is the durable form of the single session record.
type fileSchema struct {
	Version int            `toml:"version"`
	Session *sessionSchema `toml:"session,omitempty"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	User         userSchema     `toml:"user"`
	AccessToken  string         `toml:"access_token"`
	RefreshToken string         `toml:"refresh_token"`
	Profile      *profileSchema `toml:"profile,omitempty"`
}

type userSchema struct {
	ID    string `toml:"id"`
	Email string `toml:"email"`
	Role  string `toml:"role"`
}

type profileSchema struct {
	StaffID     string `toml:"staff_id"`
	Name        string `toml:"name"`
	Address     string `toml:"address"`
	Phone       string `toml:"phone"`
	NationalID  string `toml:"national_id"`
	DateOfBirth string `toml:"date_of_birth"`
	BranchID    string `toml:"branch_id"`
}
