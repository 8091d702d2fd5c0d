package model

import "time"

// Tone controls the register of AI-generated reply drafts.
type Tone string

const (
	ToneFormal       Tone = "formal"
	ToneProfessional Tone = "professional"
	ToneConcise      Tone = "concise"
)

// Tones lists the selectable tones in display order.
var Tones = []Tone{ToneFormal, ToneProfessional, ToneConcise}

// Label returns the name shown in the settings form.
func (t Tone) Label() string {
	switch t {
	case ToneFormal:
		return "Formal"
	case ToneConcise:
		return "Concise"
	default:
		return "Friendly-Professional"
	}
}

// PromptPhrase returns how the tone is described to the agent.
func (t Tone) PromptPhrase() string {
	switch t {
	case ToneFormal:
		return "formal"
	case ToneConcise:
		return "concise"
	default:
		return "friendly-professional"
	}
}

// FollowUpDuration is the default offset applied when pre-filling the
// follow-up scheduler.
type FollowUpDuration string

const (
	Duration1Hour  FollowUpDuration = "1hour"
	Duration4Hours FollowUpDuration = "4hours"
	Duration1Day   FollowUpDuration = "1day"
	Duration2Days  FollowUpDuration = "2days"
	Duration1Week  FollowUpDuration = "1week"
)

// FollowUpDurations lists the selectable durations in display order.
var FollowUpDurations = []FollowUpDuration{
	Duration1Hour, Duration4Hours, Duration1Day, Duration2Days, Duration1Week,
}

// Label returns the name shown in the settings form.
func (d FollowUpDuration) Label() string {
	switch d {
	case Duration1Hour:
		return "1 Hour"
	case Duration4Hours:
		return "4 Hours"
	case Duration2Days:
		return "2 Days"
	case Duration1Week:
		return "1 Week"
	default:
		return "1 Day"
	}
}

// Offset returns the duration as a time.Duration. Unknown values fall back
// to one day.
func (d FollowUpDuration) Offset() time.Duration {
	switch d {
	case Duration1Hour:
		return time.Hour
	case Duration4Hours:
		return 4 * time.Hour
	case Duration2Days:
		return 48 * time.Hour
	case Duration1Week:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Preferences are the user settings that survive a restart.
type Preferences struct {
	Tone             Tone             `json:"tone" db:"tone"`
	FollowUpDuration FollowUpDuration `json:"follow_up_duration" db:"follow_up_duration"`
	SampleData       bool             `json:"sample_data" db:"sample_data"`
}

// DefaultPreferences returns the settings a fresh install starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Tone:             ToneProfessional,
		FollowUpDuration: Duration1Day,
		SampleData:       false,
	}
}
