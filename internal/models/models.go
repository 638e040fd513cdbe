package models

import (
	"fmt"
	"strings"
)

const (
	// DefaultUserID identifies the single implicit user record
	DefaultUserID = "me"
	// MaxAvatarLength caps the inline base64 avatar, in characters
	MaxAvatarLength = 2_000_000
)

// TelemetryPoint is one sample along an activity path; T is epoch seconds
type TelemetryPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
	T   float64 `json:"t"`
}

// Activity represents one recorded ride or run
type Activity struct {
	ID           string           `json:"id"`
	Name         *string          `json:"name"`
	DistanceKm   float64          `json:"distance_km"`
	DurationSec  int              `json:"duration_sec"`
	AvgKmh       float64          `json:"avg_kmh"`
	StartTime    Timestamp        `json:"start_time"`
	Path         []TelemetryPoint `json:"path"`
	Notes        *string          `json:"notes"`
	Private      bool             `json:"private"`
	PointsEarned int              `json:"points_earned"`
	CreatedAt    Timestamp        `json:"created_at"`
	UpdatedAt    Timestamp        `json:"updated_at"`
}

// ActivityCreate is the request body for recording an activity
type ActivityCreate struct {
	Name        *string          `json:"name"`
	DistanceKm  *float64         `json:"distance_km"`
	DurationSec *int             `json:"duration_sec"`
	AvgKmh      *float64         `json:"avg_kmh"`
	StartTime   *Timestamp       `json:"start_time"`
	Path        []TelemetryPoint `json:"path"`
	Notes       *string          `json:"notes"`
	Private     bool             `json:"private"`
}

// Validate checks that every required field is present
func (in *ActivityCreate) Validate() error {
	var missing []string
	if in.DistanceKm == nil {
		missing = append(missing, "distance_km")
	}
	if in.DurationSec == nil {
		missing = append(missing, "duration_sec")
	}
	if in.AvgKmh == nil {
		missing = append(missing, "avg_kmh")
	}
	if in.StartTime == nil {
		missing = append(missing, "start_time")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// ActivityPage is one offset/limit slice of the activity list
type ActivityPage struct {
	Items  []*Activity `json:"items"`
	Total  int64       `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// Preferences holds the user's app settings
type Preferences struct {
	Privacy       bool   `json:"privacy"`
	Leaderboard   bool   `json:"leaderboard"`
	Theme         string `json:"theme"`
	Units         string `json:"units"`
	Notifications bool   `json:"notifications"`
}

// DefaultPreferences returns the settings a fresh user starts with
func DefaultPreferences() Preferences {
	return Preferences{
		Leaderboard: true,
		Theme:       "system",
		Units:       "km",
	}
}

// UserProfile represents the singleton user
type UserProfile struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	AvatarB64   *string     `json:"avatar_b64"`
	Preferences Preferences `json:"preferences"`
	CreatedAt   Timestamp   `json:"created_at"`
	UpdatedAt   Timestamp   `json:"updated_at"`
}

// UserProfileUpdate carries the profile fields to change; nil means untouched
type UserProfileUpdate struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	AvatarB64 *string `json:"avatar_b64"`
}

// IsEmpty reports whether no field was supplied
func (u *UserProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.AvatarB64 == nil
}

// UserSettingsUpdate is a partial Preferences. It marshals to a JSON patch
// containing only the supplied keys.
type UserSettingsUpdate struct {
	Privacy       *bool   `json:"privacy,omitempty"`
	Leaderboard   *bool   `json:"leaderboard,omitempty"`
	Theme         *string `json:"theme,omitempty"`
	Units         *string `json:"units,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
}

// IsEmpty reports whether no key was supplied
func (u *UserSettingsUpdate) IsEmpty() bool {
	return u.Privacy == nil && u.Leaderboard == nil && u.Theme == nil &&
		u.Units == nil && u.Notifications == nil
}

// ContactMessage is the contact form payload
type ContactMessage struct {
	Email   *string `json:"email"`
	Subject *string `json:"subject"`
	Message *string `json:"message"`
}

// Validate checks that every field is present
func (m *ContactMessage) Validate() error {
	var missing []string
	if m.Email == nil {
		missing = append(missing, "email")
	}
	if m.Subject == nil {
		missing = append(missing, "subject")
	}
	if m.Message == nil {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
