// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

// UserSummary is the author display projection joined into thread and post
// responses. The row comes from the host product's users table; forum tables
// never own user records. A missing row leaves the summary nil.
type UserSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}
