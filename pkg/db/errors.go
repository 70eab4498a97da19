package db

import "strings"

// IsUniqueViolation reports whether the provided error is a unique
// constraint violation. Postgres and sqlite word the failure differently,
// and the sqlite path matters when the local feature flag is on. When
// constraintName is provided, the helper looks for that constraint text.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
