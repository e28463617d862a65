package storage

import (
	"context"

	"github.com/arcadehub/arcade/internal/model"
)

// Storage defines the interface for the external persistence store:
// player stats and completed-session history. The live room table
// never touches storage; sessions are archived here exactly once,
// when they finish.
type Storage interface {
	// Player profile operations
	SaveProfile(ctx context.Context, profile *model.Profile) error
	GetProfile(ctx context.Context, id model.PlayerID) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]*model.Profile, error)

	// Completed-session history operations
	AppendSessionRecord(ctx context.Context, record *model.SessionRecord) error
	GetSessionRecord(ctx context.Context, id model.SessionID) (*model.SessionRecord, error)
	ListSessionRecords(ctx context.Context) ([]*model.SessionRecord, error)
}
