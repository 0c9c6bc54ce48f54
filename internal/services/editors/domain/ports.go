// Package domain defines the editor roster contract
package domain

import (
	"context"

	"eipwatch/internal/core/actors"
)

// RosterPort resolves the current editor roster.
// Implementations may cache; callers treat the set as read only
type RosterPort interface {
	Editors(ctx context.Context) (actors.Set, error)
}
