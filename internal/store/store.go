package store

import (
	"context"

	"github.com/nhle/inbox-pilot/internal/model"
)

// Preference keys.
const (
	KeyTone             = "tone"
	KeyFollowUpDuration = "follow_up_duration"
	KeySampleData       = "sample_data"
)

// Store defines the persistence interface for user preferences. Mail data,
// drafts and follow-ups are never persisted.
type Store interface {
	// LoadPreferences returns the stored preferences layered over defaults.
	LoadPreferences(ctx context.Context, defaults model.Preferences) (model.Preferences, error)

	// SavePreferences writes every preference field.
	SavePreferences(ctx context.Context, prefs model.Preferences) error

	// SetPreference writes a single key.
	SetPreference(ctx context.Context, key, value string) error
}
