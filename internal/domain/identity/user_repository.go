package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by ID, returning nil when not found
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername finds a user by username, returning nil when not found
	FindByUsername(ctx context.Context, username string) (*User, error)

	// ExistsByUsername checks if a username is already taken
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Save persists a user (insert or full update)
	Save(ctx context.Context, user *User) error

	// SaveWithLock persists a user with optimistic concurrency control
	SaveWithLock(ctx context.Context, user *User) error
}
