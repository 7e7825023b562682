package handlers

import (
	"unicode/utf8"
)

// Validation limits for forum input fields. Emptiness and trimming rules
// live in the forum service; the HTTP layer only bounds sizes so oversized
// bodies are rejected before they reach a store.
const (
	maxNameLen        = 200
	maxTitleLen       = 300
	maxDescriptionLen = 1_000
	maxContentLen     = 50_000
)

// validateName checks a forum or category name and returns the first
// problem found, or "".
func validateName(name string) string {
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	return ""
}

// validateDescription checks an optional description field.
func validateDescription(desc *string) string {
	if desc != nil && utf8.RuneCountInString(*desc) > maxDescriptionLen {
		return "Description is too long (max 1,000 characters)."
	}
	return ""
}

// validateTitle checks a thread title.
func validateTitle(title string) string {
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	return ""
}

// validateContent checks thread or post body content.
func validateContent(content string) string {
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 50,000 characters)."
	}
	return ""
}
