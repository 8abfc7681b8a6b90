package handlers

import (
	"unicode/utf8"
)

// Validation limits for form fields. Emptiness is checked by the services.
const (
	maxTitleLen       = 300
	maxDescriptionLen = 10_000
	maxLinkLen        = 2_000
	maxNameLen        = 200
	maxAboutLen       = 100_000
	maxPlatformLen    = 100
	maxUsernameLen    = 50
)

// validateProject checks project form inputs and returns the first error found.
func validateProject(title, description, link string) string {
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "Description is too long (max 10,000 characters)."
	}
	if utf8.RuneCountInString(link) > maxLinkLen {
		return "Link is too long (max 2,000 characters)."
	}
	return ""
}

// validateName checks a category or experience name.
func validateName(name string) string {
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	return ""
}

// validateAbout checks the About Me text.
func validateAbout(content string) string {
	if utf8.RuneCountInString(content) > maxAboutLen {
		return "About Me content is too long (max 100,000 characters)."
	}
	return ""
}

// validateContact checks contact form inputs.
func validateContact(platform, link string) string {
	if utf8.RuneCountInString(platform) > maxPlatformLen {
		return "Platform is too long (max 100 characters)."
	}
	if utf8.RuneCountInString(link) > maxLinkLen {
		return "Link is too long (max 2,000 characters)."
	}
	return ""
}
