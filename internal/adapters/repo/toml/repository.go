package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lavanderia/laundries-cli/internal/domain"
	"github.com/lavanderia/laundries-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName        = "config"
	configType        = "toml"
	sessionPathKey    = "session.path"
	sessionFileMode   = 0o600
	sessionDirMode    = 0o700
	sessionConfigDir  = ".laundries"
	sessionConfigFile = "session.toml"
	tempFilePattern   = ".session-*.toml.tmp"
)

// Repository keeps the single durable session record in a TOML file.
// A record that fails to parse is deleted and reported as absent, never
// as an error: corruption means "no session".
type Repository struct {
	sessionPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.SessionRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, sessionConfigDir, sessionConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, sessionConfigDir))
	cfg.SetDefault(sessionPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	sessionPath := cfg.GetString(sessionPathKey)
	if sessionPath == "" {
		return nil, errors.New("session path is empty")
	}
	sessionPath, err = normalizeSessionPath(sessionPath)
	if err != nil {
		return nil, err
	}

	return &Repository{sessionPath: sessionPath, mu: lockForPath(sessionPath)}, nil
}

func (r *Repository) Get(ctx context.Context) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.sessionPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Session{}, domain.ErrNoSession
		}
		return domain.Session{}, fmt.Errorf("read session file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Session{}, r.discardCorrupt()
	}
	if err := file.validateVersion(); err != nil {
		return domain.Session{}, r.discardCorrupt()
	}
	file.applyDefaults()

	if file.Session == nil || file.Session.AccessToken == "" || file.Session.User.ID == "" {
		// A token without a user (or vice versa) must never round-trip.
		return domain.Session{}, r.discardCorrupt()
	}

	return fromSchema(*file.Session), nil
}

// discardCorrupt deletes the unreadable record and reports plain
// absence so hydration never fails on corruption.
func (r *Repository) discardCorrupt() error {
	if err := os.Remove(r.sessionPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove corrupt session file: %w", err)
	}
	return domain.ErrNoSession
}

func (r *Repository) Save(ctx context.Context, session domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	encoded := toSchema(session)
	file := fileSchema{Session: &encoded}
	file.applyDefaults()

	return r.writeSchema(file)
}

func (r *Repository) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := os.Remove(r.sessionPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete session file: %w", err)
	}

	return nil
}

func normalizeSessionPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve session path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	if err := os.MkdirAll(filepath.Dir(r.sessionPath), sessionDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.sessionPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}

	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, r.sessionPath); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.sessionPath, sessionFileMode); err != nil {
		return fmt.Errorf("chmod session file: %w", err)
	}

	return nil
}

func toSchema(session domain.Session) sessionSchema {
	encoded := sessionSchema{
		User: userSchema{
			ID:    session.User.ID,
			Email: session.User.Email,
			Role:  string(session.User.Role),
		},
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
	}

	if session.Profile != nil {
		encoded.Profile = &profileSchema{
			StaffID:     session.Profile.StaffID,
			Name:        session.Profile.Name,
			Address:     session.Profile.Address,
			Phone:       session.Profile.Phone,
			NationalID:  session.Profile.NationalID,
			DateOfBirth: session.Profile.DateOfBirth,
			BranchID:    session.Profile.BranchID,
		}
	}

	return encoded
}

func fromSchema(encoded sessionSchema) domain.Session {
	session := domain.Session{
		User: domain.User{
			ID:    encoded.User.ID,
			Email: encoded.User.Email,
			Role:  domain.Role(encoded.User.Role),
		},
		AccessToken:  encoded.AccessToken,
		RefreshToken: encoded.RefreshToken,
	}

	if encoded.Profile != nil {
		session.Profile = &domain.StaffProfile{
			StaffID:     encoded.Profile.StaffID,
			Name:        encoded.Profile.Name,
			Address:     encoded.Profile.Address,
			Phone:       encoded.Profile.Phone,
			NationalID:  encoded.Profile.NationalID,
			DateOfBirth: encoded.Profile.DateOfBirth,
			BranchID:    encoded.Profile.BranchID,
		}
	}

	return session
}
