package models

import "time"

// Preferences holds the display settings of one client
type Preferences struct {
	ClientID  string    `json:"client_id"`
	Dark      bool      `json:"dark"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PreferencesUpdate is the request body for changing preferences
type PreferencesUpdate struct {
	Dark *bool `json:"dark,omitempty"`
}

// Theme names the display mode for a dark flag
func (p Preferences) Theme() string {
	if p.Dark {
		return "dark"
	}
	return "light"
}
