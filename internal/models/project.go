// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Project is a portfolio entry shown on the public site. ImageURL and Link
// are nullable; CreatedAt is assigned by the database and drives the
// default newest-first ordering.
type Project struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Link        *string   `json:"link,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasImage returns true if the project references an uploaded image.
func (p *Project) HasImage() bool {
	return p.ImageURL != nil && *p.ImageURL != ""
}
