package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lavanderia/laundries-cli/internal/domain"
	"github.com/lavanderia/laundries-cli/internal/ports"
)

const (
	// DefaultLoginTimeout bounds the credential exchange with the
	// identity service.
	DefaultLoginTimeout = 8 * time.Second
	// DefaultProfileTimeout bounds the staff-directory profile fetch.
	DefaultProfileTimeout = 8 * time.Second
)

// SessionService owns the process-wide session state and the login
// handshake. It is constructed once and handed to every consumer by
// reference; there is no ambient global.
//
// Lifecycle: the service starts initializing, a single Hydrate call
// settles it into authenticated or unauthenticated, Login moves it to
// authenticated in one commit, Logout back. No partial session is ever
// observable, in memory or on disk.
type SessionService struct {
	repo     ports.SessionRepository
	identity ports.IdentityClient
	staff    ports.StaffDirectoryClient

	loginTimeout   time.Duration
	profileTimeout time.Duration

	mu          sync.RWMutex
	session     domain.Session
	initialized bool
}

// Snapshot is a point-in-time read of the session state. IsAuthenticated
// is derived from the access token, never stored on its own.
type Snapshot struct {
	Session         domain.Session
	IsAuthenticated bool
	IsInitializing  bool
}

func NewSessionService(repo ports.SessionRepository, identity ports.IdentityClient, staff ports.StaffDirectoryClient) *SessionService {
	return &SessionService{
		repo:           repo,
		identity:       identity,
		staff:          staff,
		loginTimeout:   DefaultLoginTimeout,
		profileTimeout: DefaultProfileTimeout,
	}
}

// WithTimeouts overrides the per-phase handshake deadlines. Zero keeps
// the default for that phase.
func (s *SessionService) WithTimeouts(login, profile time.Duration) *SessionService {
	if login > 0 {
		s.loginTimeout = login
	}
	if profile > 0 {
		s.profileTimeout = profile
	}
	return s
}

// Hydrate reconstructs session state from the durable record. Absence
// and corruption both leave the state empty; corruption additionally
// deletes the record inside the repository. Either way the service ends
// initialized and no failure is surfaced.
func (s *SessionService) Hydrate(ctx context.Context) {
	session, err := s.repo.Get(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.session = domain.Session{}
	} else {
		s.session = session
	}
	s.initialized = true
}

// Snapshot returns a copy of the current state. The profile is cloned so
// callers cannot reach back into service-owned memory.
func (s *SessionService) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session := s.session
	if session.Profile != nil {
		profile := *session.Profile
		session.Profile = &profile
	}

	return Snapshot{
		Session:         session,
		IsAuthenticated: session.AccessToken != "",
		IsInitializing:  !s.initialized,
	}
}

// Login runs the full two-phase handshake: credential exchange, then
// profile fetch with the fresh token, each under its own deadline. The
// session is committed only after both phases succeed; every failure
// path leaves state and the durable record untouched.
func (s *SessionService) Login(ctx context.Context, creds ports.Credentials) (domain.Session, error) {
	result, err := s.exchangeCredentials(ctx, creds)
	if err != nil {
		return domain.Session{}, err
	}

	profile, err := s.fetchProfile(ctx, result.AccessToken, result.User.ID)
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.Session{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Profile:      &profile,
	}

	if err := s.commit(ctx, session); err != nil {
		return domain.Session{}, err
	}

	return session, nil
}

// LoginBasic is the single-phase variant: it commits right after the
// credential exchange and carries no staff profile, so branch and staff
// binding is deferred to whatever first needs it.
func (s *SessionService) LoginBasic(ctx context.Context, creds ports.Credentials) (domain.Session, error) {
	result, err := s.exchangeCredentials(ctx, creds)
	if err != nil {
		return domain.Session{}, err
	}

	session := domain.Session{
		User:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}

	if err := s.commit(ctx, session); err != nil {
		return domain.Session{}, err
	}

	return session, nil
}

// Logout clears the in-memory state and erases the durable record.
// Idempotent; clearing an absent session is not an error.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("clear durable session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.Session{}

	return nil
}

func (s *SessionService) exchangeCredentials(ctx context.Context, creds ports.Credentials) (ports.LoginResult, error) {
	phaseCtx, cancel := context.WithTimeout(ctx, s.loginTimeout)
	defer cancel()

	result, err := s.identity.Login(phaseCtx, creds)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return ports.LoginResult{}, domain.ErrLoginTimeout
		}
		return ports.LoginResult{}, err
	}

	return result, nil
}

func (s *SessionService) fetchProfile(ctx context.Context, accessToken string, userID string) (domain.StaffProfile, error) {
	phaseCtx, cancel := context.WithTimeout(ctx, s.profileTimeout)
	defer cancel()

	profile, err := s.staff.FetchProfile(phaseCtx, accessToken, userID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return domain.StaffProfile{}, domain.ErrProfileTimeout
		}
		return domain.StaffProfile{}, err
	}

	return profile, nil
}

// commit is the saga's single write point: durable record first, then
// the in-memory mirror.
func (s *SessionService) commit(ctx context.Context, session domain.Session) error {
	if err := s.repo.Save(ctx, session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session

	return nil
}

// AccessToken returns the current bearer token for authenticated API
// calls made on behalf of the session.
func (s *SessionService) AccessToken() (string, error) {
	snapshot := s.Snapshot()
	if snapshot.IsInitializing {
		return "", domain.ErrNotInitialized
	}
	if !snapshot.IsAuthenticated {
		return "", domain.ErrNoSession
	}
	return snapshot.Session.AccessToken, nil
}
