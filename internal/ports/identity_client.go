package ports

import (
	"context"

	"github.com/lavanderia/laundries-cli/internal/domain"
)

type Credentials struct {
	Email    string
	Password string
}

// LoginResult is the phase-one payload: identity plus token pair, no
// staff profile yet.
type LoginResult struct {
	User         domain.User
	AccessToken  string
	RefreshToken string
}

// IdentityClient talks to the identity service.
type IdentityClient interface {
	Login(ctx context.Context, creds Credentials) (LoginResult, error)
	Register(ctx context.Context, accessToken string, creds Credentials, role domain.Role) error
}

// StaffDirectoryClient talks to the staff directory service.
type StaffDirectoryClient interface {
	FetchProfile(ctx context.Context, accessToken string, userID string) (domain.StaffProfile, error)
}
