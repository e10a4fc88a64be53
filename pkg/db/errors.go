package db

import "strings"

// IsUniqueViolation reports whether err looks like a unique-constraint
// violation from postgres or sqlite. When constraint names are supplied,
// at least one of them must appear in the driver message.
func IsUniqueViolation(err error, constraints ...string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") && !strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}

	named := false
	for _, constraint := range constraints {
		if constraint == "" {
			continue
		}
		named = true
		if strings.Contains(msg, constraint) {
			return true
		}
	}
	return !named
}
