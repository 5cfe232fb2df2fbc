package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Validation limits for blog and directory fields.
const (
	maxTitleLen    = 300
	maxContentLen  = 100_000
	maxExcerptLen  = 1_000
	maxEmailLen    = 254
	maxAgentName   = 200
	maxPageBlobLen = 200_000
)

// validateBlog checks manual blog creation inputs and returns the first
// error found.
func validateBlog(title, content, category string, known func(string) bool) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "Content is too long (max 100,000 characters)."
	}
	if !known(category) {
		return "Unknown category."
	}
	return ""
}

// validateEmail checks a newsletter signup address.
func validateEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return "Email is required."
	}
	if len(email) > maxEmailLen {
		return "Email is too long."
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "Email address is not valid."
	}
	return ""
}

// validateAgent checks directory entry inputs.
func validateAgent(name, url, pricing string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxAgentName {
		return "Name is too long (max 200 characters)."
	}
	if strings.TrimSpace(url) == "" {
		return "URL is required."
	}
	switch pricing {
	case "free", "freemium", "paid":
	default:
		return "Pricing must be one of: free, freemium, paid."
	}
	return ""
}

// validatePageBlob checks an editable page-content payload.
func validatePageBlob(content string) string {
	if strings.TrimSpace(content) == "" {
		return "Content is required."
	}
	if len(content) > maxPageBlobLen {
		return "Content is too long."
	}
	return ""
}
