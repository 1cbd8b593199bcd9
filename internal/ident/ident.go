// Package ident mints the opaque identifiers used for users and messages.
// An id carries no meaning beyond being the capability to act on its record,
// so the random component must come from a cryptographically secure source.
package ident

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	userPrefix    = "user_"
	messagePrefix = "msg_"
	maxLength     = 50
)

// NewUserID returns a fresh user identifier matching ^user_[0-9a-z]+$.
func NewUserID() string {
	return newID(userPrefix)
}

// NewMessageID returns a fresh message identifier matching ^msg_[0-9a-z]+$.
func NewMessageID() string {
	return newID(messagePrefix)
}

// newID combines a base36 millisecond timestamp with UUIDv4 hex. Both parts
// stay within the [0-9a-z] id alphabet; the UUID library draws from
// crypto/rand, so ids are neither guessable nor plausibly colliding. A
// collision at the store is still treated as a creation failure by callers,
// never silently absorbed.
func newID(prefix string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	random := strings.ReplaceAll(uuid.NewString(), "-", "")
	id := prefix + ts + random
	if len(id) > maxLength {
		id = id[:maxLength]
	}
	return id
}
