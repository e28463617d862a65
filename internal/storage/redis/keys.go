package redis

import (
	"fmt"

	"github.com/arcadehub/arcade/internal/model"
)

// Key prefix for all arcade data
const keyPrefix = "arcade"

// profileKey returns the Redis key for a player profile
func profileKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:profile:%s", keyPrefix, id)
}

// profileIndexKey returns the Redis key for the SET of known players
func profileIndexKey() string {
	return fmt.Sprintf("%s:idx:profiles", keyPrefix)
}

// recordKey returns the Redis key for an archived session
func recordKey(id model.SessionID) string {
	return fmt.Sprintf("%s:record:%s", keyPrefix, id)
}

// recordIndexKey returns the Redis key for the LIST of archived
// sessions in append order
func recordIndexKey() string {
	return fmt.Sprintf("%s:idx:records", keyPrefix)
}
