package domain_test

import (
	"errors"
	"strings"
	"testing"

	"studytime/internal/modules/subject/domain"
	apperrors "studytime/internal/platform/errors"
)

func TestNormalizeName(t *testing.T) {
	t.Parallel()
	got, err := domain.NormalizeName("  Linear Algebra ")
	if err != nil || got != "Linear Algebra" {
		t.Fatalf("expected trimmed name, got %q err=%v", got, err)
	}
	for _, raw := range []string{"", "   ", "a,b", "tab\there", "line\nbreak", strings.Repeat("x", domain.MaxNameLength+1)} {
		if _, err := domain.NormalizeName(raw); !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("expected validation error for %q, got %v", raw, err)
		}
	}
	if _, err := domain.NormalizeName(strings.Repeat("é", domain.MaxNameLength)); err != nil {
		t.Fatalf("length counts runes, got %v", err)
	}
}

func TestFindIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	subjects := []domain.Subject{{Name: "Math"}, {Name: "Physics"}}
	s, ok := domain.Find(subjects, " physics")
	if !ok || s.Name != "Physics" {
		t.Fatalf("expected Physics, got %+v ok=%v", s, ok)
	}
	if domain.Index(subjects, "Chemistry") != -1 {
		t.Fatalf("expected no match")
	}
}
