// Package entity contains the core business objects of the project.
package entity

import (
	"pushrelay/internal/domain/constants"
)

const (
	defaultAlertID      = "Influx Alert"
	defaultAlertMessage = "An alert was triggered."
	alertTitlePrefix    = "Influx Alert: "
	defaultSound        = "default"
)

// Alert is the webhook body a monitoring system posts when a check fires.
type Alert struct {
	ID      string             `json:"id,omitempty"`      // Alert ID or check name.
	Message string             `json:"message,omitempty"` // Human readable alert text.
	Time    string             `json:"time,omitempty"`    // Trigger time, usually RFC 3339.
	Tags    map[string]string  `json:"tags"`              // Must carry the user ID under "userId".
	Fields  map[string]float64 `json:"fields,omitempty"`  // Numeric readings, e.g. {"value": 78.5}.
}

// UserID returns the user the alert is addressed to, or "" when the tag is missing.
func (a *Alert) UserID() string {
	if a == nil {
		return ""
	}

	return a.Tags[constants.TagUserID]
}

// Notification derives the push content for this alert.
func (a *Alert) Notification() *Notification {
	alertID := a.ID
	if alertID == "" {
		alertID = defaultAlertID
	}

	body := a.Message
	if body == "" {
		body = defaultAlertMessage
	}

	// value stays null in the payload when the alert carries no such field
	var value *float64
	if v, ok := a.Fields["value"]; ok {
		value = &v
	}

	return &Notification{
		Title: alertTitlePrefix + alertID,
		Body:  body,
		Sound: defaultSound,
		Data: map[string]any{
			"value": value,
			"time":  a.Time,
		},
	}
}
