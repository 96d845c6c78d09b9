// Package normalize turns raw roster fields into comparable keys.
//
// Matching is exact string equality after trimming surrounding whitespace
// and lowercasing. No Unicode normalization or locale collation is applied,
// so "José" and "Jose" are different people.
package normalize

import (
	"strings"

	"github.com/agentstation/roster/pkg/records"
)

// missingSentinels are the text forms a missing value takes when an upstream
// exporter stringifies it.
var missingSentinels = map[string]struct{}{
	"nan":  {},
	"None": {},
	"NaN":  {},
	"<NA>": {},
	"NaT":  {},
}

// Normalized holds the derived keys of a record.
type Normalized struct {
	NameKey  string
	HasName  bool
	EmailKey string
	HasEmail bool
	HasID    bool
}

// Text trims and lowercases a value. Text(Text(s)) == Text(s).
func Text(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NameKey returns the full-name grouping key.
func NameKey(first, last string) string {
	return Text(first) + " " + Text(last)
}

// IsAbsent reports whether a value should be treated as missing: empty,
// whitespace only, or one of the stringified-missing sentinels.
func IsAbsent(s string) bool {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return true
	}
	_, ok := missingSentinels[trimmed]
	return ok
}

// EmailKey returns the email grouping key, or false when the email is absent.
func EmailKey(email string) (string, bool) {
	if IsAbsent(email) {
		return "", false
	}
	return Text(email), true
}

// HasIdentifier reports whether a member card ID is present.
func HasIdentifier(id string) bool {
	return !IsAbsent(id)
}

// HasName reports whether both name parts are present. A record missing
// either part has no usable name key.
func HasName(first, last string) bool {
	return !IsAbsent(first) && !IsAbsent(last)
}

// Normalize derives every key of a record. It never fails.
func Normalize(rec records.Record) Normalized {
	emailKey, hasEmail := EmailKey(rec.Email)
	return Normalized{
		NameKey:  NameKey(rec.FirstName, rec.LastName),
		HasName:  HasName(rec.FirstName, rec.LastName),
		EmailKey: emailKey,
		HasEmail: hasEmail,
		HasID:    HasIdentifier(rec.MemberID),
	}
}
