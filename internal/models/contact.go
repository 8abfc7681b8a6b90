// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ContactState is the lifecycle position of a stored contact. A removed
// contact has no row and therefore no state.
type ContactState string

const (
	ContactActive  ContactState = "active"
	ContactDeleted ContactState = "deleted"
)

// StateFromDeleted maps the persisted deleted flag to a ContactState.
func StateFromDeleted(deleted bool) ContactState {
	if deleted {
		return ContactDeleted
	}
	return ContactActive
}

// Deleted returns the value of the persisted flag for this state.
func (s ContactState) Deleted() bool {
	return s == ContactDeleted
}

// Label returns the lowercase adjective used in confirmation prompts.
func (s ContactState) Label() string {
	return string(s)
}

// SuggestedPlatforms lists the platforms offered by the contact form.
// Any other non-empty value is accepted as well.
var SuggestedPlatforms = []string{
	"Email", "Phone", "LinkedIn", "GitHub", "Website", "Twitter", "Facebook",
	"Instagram", "Discord", "Telegram", "WhatsApp", "YouTube", "Blog", "Other",
}

// Contact is a way to reach the portfolio owner.
type Contact struct {
	ID       int64        `json:"id"`
	Platform string       `json:"platform"`
	Link     string       `json:"link"`
	State    ContactState `json:"state"`
}

// IsActive returns true if the contact is visible on the public site.
func (c *Contact) IsActive() bool {
	return c.State == ContactActive
}
