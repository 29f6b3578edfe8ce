package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	apperrors "studytime/internal/platform/errors"
)

const MaxNameLength = 64

type Subject struct {
	Name      string
	CreatedAt time.Time
}

// NormalizeName trims raw and checks it can be stored as a subject name.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", apperrors.Validation("subject name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", apperrors.Validation("subject name is longer than %d characters", MaxNameLength)
	}
	for _, r := range name {
		if r == ',' || unicode.IsControl(r) {
			return "", apperrors.Validation("subject name %q contains %q", name, r)
		}
	}
	return name, nil
}

// SameName compares names the way the registry enforces uniqueness.
func SameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func Find(subjects []Subject, name string) (Subject, bool) {
	if i := Index(subjects, name); i >= 0 {
		return subjects[i], true
	}
	return Subject{}, false
}

func Index(subjects []Subject, name string) int {
	for i, s := range subjects {
		if SameName(s.Name, name) {
			return i
		}
	}
	return -1
}
