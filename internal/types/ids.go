package types

import (
	"time"

	"github.com/google/uuid"
)

// FolderID represents a UUIDv7 smart folder identifier.
// String alias enables type safety while maintaining JSON string serialization.
type FolderID string

// RuleID represents a UUIDv7 rule identifier.
// String alias enables type safety while maintaining JSON string serialization.
type RuleID string

// NewFolderID generates a UUIDv7 folder identifier.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewFolderID() FolderID {
	return FolderID(uuid.Must(uuid.NewV7()).String())
}

// NewRuleID generates a UUIDv7 rule identifier.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewRuleID() RuleID {
	return RuleID(uuid.Must(uuid.NewV7()).String())
}

// ParseFolderID validates and converts a string to FolderID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParseFolderID(s string) (FolderID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", err
	}
	return FolderID(s), nil
}

// ParseRuleID validates and converts a string to RuleID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParseRuleID(s string) (RuleID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return "", err
	}
	return RuleID(s), nil
}

// FolderIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func FolderIDTime(id FolderID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
