package session

import "strings"

// ErrorKind buckets provider errors for the auth screen. The manager
// forwards raw errors; callers map kinds to user-facing text.
type ErrorKind string

const (
	KindInvalidCredentials ErrorKind = "invalid-credentials"
	KindAlreadyRegistered  ErrorKind = "already-registered"
	KindOther              ErrorKind = "other"
)

// Classify pattern-matches the two known provider messages and leaves
// everything else to pass through verbatim.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindOther
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid login credentials"):
		return KindInvalidCredentials
	case strings.Contains(msg, "already registered"):
		return KindAlreadyRegistered
	default:
		return KindOther
	}
}
