// Package validation holds the boundary predicates for every external input.
// The same rules are enforced by any client surface for fast feedback, but the
// server-side checks here are authoritative and must never be skipped.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	maxIDLength       = 100
	minUsernameLength = 2
	maxUsernameLength = 50
	minQuestionLength = 5
	maxQuestionLength = 200
	minAnswerLength   = 1
	maxAnswerLength   = 500
)

var (
	userIDPattern    = regexp.MustCompile(`^user_[0-9a-z]+$`)
	messageIDPattern = regexp.MustCompile(`^msg_[0-9a-z]+$`)
	usernamePattern  = regexp.MustCompile(`^[A-Za-z0-9\s\-.']+$`)
)

// UserID reports whether id is a well-formed user identifier.
func UserID(id string) bool {
	return len(id) <= maxIDLength && userIDPattern.MatchString(id)
}

// MessageID reports whether id is a well-formed message identifier.
func MessageID(id string) bool {
	return len(id) <= maxIDLength && messageIDPattern.MatchString(id)
}

// Username reports whether name is a displayable profile name: 2-50
// characters after trimming, restricted to letters, digits, whitespace,
// hyphen, period and apostrophe.
func Username(name string) bool {
	trimmed := strings.TrimSpace(name)
	n := utf8.RuneCountInString(trimmed)
	return n >= minUsernameLength && n <= maxUsernameLength && usernamePattern.MatchString(trimmed)
}

// Question reports whether q is 5-200 characters of free text after trimming.
func Question(q string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(q))
	return n >= minQuestionLength && n <= maxQuestionLength
}

// Answer reports whether a is 1-500 characters of free text after trimming.
func Answer(a string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(a))
	return n >= minAnswerLength && n <= maxAnswerLength
}
