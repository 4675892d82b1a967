package db

import (
	"strings"

	pkgerrors "github.com/angelmondragon/erp-records-backend/pkg/errors"
)

var uniqueViolationTexts = []string{"duplicate key value", "UNIQUE constraint failed"}

// IsUniqueViolation reports whether err is a unique constraint violation from
// Postgres or SQLite. Driver errors are inspected first; errors that were
// flattened to text fall back to the drivers' message wording. A non-empty
// constraintName must also appear in the constraint or message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	dump := pkgerrors.Dump(err)
	unique := dump.UniqueViolation
	if dump.DBDriver == "" {
		for _, text := range uniqueViolationTexts {
			if strings.Contains(dump.TopMessage, text) {
				unique = true
				break
			}
		}
		if !unique && constraintName != "" {
			unique = strings.Contains(dump.TopMessage, constraintName)
		}
	}
	if !unique {
		return false
	}
	if constraintName == "" {
		return true
	}
	return dump.DBConstraint == constraintName || strings.Contains(dump.TopMessage, constraintName)
}
