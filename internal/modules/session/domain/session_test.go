package domain_test

import (
	"errors"
	"testing"
	"time"

	"studytime/internal/modules/session/domain"
	apperrors "studytime/internal/platform/errors"
)

func TestSessionValidate(t *testing.T) {
	t.Parallel()
	ok := domain.Session{ID: "a", Subject: "Math", Start: at(0), End: at(time.Hour), Duration: 50 * time.Minute}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid session rejected: %v", err)
	}
	bad := []domain.Session{
		{Subject: "Math", Start: at(0), End: at(time.Hour)},
		{ID: "a", Start: at(0), End: at(time.Hour)},
		{ID: "a", Subject: "Math", End: at(time.Hour)},
		{ID: "a", Subject: "Math", Start: at(time.Hour), End: at(0)},
		{ID: "a", Subject: "Math", Start: at(0), End: at(time.Hour), Duration: -time.Second},
		{ID: "a", Subject: "Math", Start: at(0), End: at(time.Hour), Duration: 2 * time.Hour},
	}
	for i, s := range bad {
		if err := s.Validate(); !errors.Is(err, apperrors.ErrValidation) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestPatchResetsDurationWhenBoundsMove(t *testing.T) {
	t.Parallel()
	s := domain.Session{ID: "a", Subject: "Math", Start: at(0), End: at(time.Hour), Duration: 40 * time.Minute}
	end := at(90 * time.Minute)
	got := domain.Patch{End: &end}.Apply(s)
	if got.Duration != 90*time.Minute {
		t.Fatalf("expected duration reset to span, got %s", got.Duration)
	}

	d := 30 * time.Minute
	got = domain.Patch{End: &end, Duration: &d}.Apply(s)
	if got.Duration != d {
		t.Fatalf("explicit duration must win, got %s", got.Duration)
	}

	subject := "  Physics "
	got = domain.Patch{Subject: &subject}.Apply(s)
	if got.Subject != "Physics" || got.Duration != s.Duration {
		t.Fatalf("subject-only patch must keep duration, got %+v", got)
	}
	if !(domain.Patch{}).Empty() {
		t.Fatalf("zero patch must be empty")
	}
}
