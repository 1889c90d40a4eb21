package ports

import (
	"context"

	"github.com/lavanderia/laundries-cli/internal/domain"
)

// SessionRepository owns the single durable session record.
//
// Get returns domain.ErrNoSession when no record exists. A record that
// no longer parses is treated the same way: the implementation deletes
// it and reports absence rather than surfacing a failure.
type SessionRepository interface {
	Get(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
	Delete(ctx context.Context) error
}
