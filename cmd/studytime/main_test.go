package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "studytime/internal/platform/errors"
)

func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--data-dir", dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	out, err := run(t, dataDir, args...)
	if err != nil {
		t.Fatalf("studytime %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func TestRecordAndReport(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	mustRun(t, dir, "subject", "add", "Linear", "Algebra")
	mustRun(t, dir, "session", "add", "--subject", "linear algebra",
		"--start", "2026-03-02T09:00:00Z", "--end", "2026-03-02T10:30:00Z")

	out := mustRun(t, dir, "stats", "overall")
	if !strings.Contains(out, "total 1h 30m over 1 sessions") {
		t.Fatalf("unexpected overall output: %q", out)
	}

	out = mustRun(t, dir, "stats", "subjects")
	if !strings.Contains(out, "Linear Algebra") || !strings.Contains(out, "100.0%") {
		t.Fatalf("unexpected per-subject output: %q", out)
	}

	out = mustRun(t, dir, "session", "list", "--subject", "LINEAR ALGEBRA")
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("expected one listed session, got %q", out)
	}
}

func TestStopwatchAcrossInvocations(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	mustRun(t, dir, "subject", "add", "Physics")
	mustRun(t, dir, "session", "start", "Physics")

	out := mustRun(t, dir, "session", "status")
	if !strings.HasPrefix(out, "running subject=Physics") {
		t.Fatalf("status after start: %q", out)
	}

	_, err := run(t, dir, "session", "start", "Physics")
	if !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("second start: expected ErrActiveSessionExists, got %v", err)
	}

	mustRun(t, dir, "session", "pause")
	if out := mustRun(t, dir, "session", "status"); !strings.HasPrefix(out, "paused") {
		t.Fatalf("status after pause: %q", out)
	}
	mustRun(t, dir, "session", "stop")
	if out := mustRun(t, dir, "session", "status"); out != "idle\n" {
		t.Fatalf("status after stop: %q", out)
	}
	if out := mustRun(t, dir, "stats", "overall"); !strings.Contains(out, "over 1 sessions") {
		t.Fatalf("stopped session not recorded: %q", out)
	}
}

func TestSubjectDeleteNeedsCascade(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	mustRun(t, dir, "subject", "add", "Chemistry")
	mustRun(t, dir, "session", "add", "--subject", "Chemistry",
		"--start", "2026-03-02 09:00", "--end", "2026-03-02 09:45")

	_, err := run(t, dir, "subject", "delete", "Chemistry")
	if !errors.Is(err, apperrors.ErrSubjectInUse) {
		t.Fatalf("expected ErrSubjectInUse, got %v", err)
	}
	out := mustRun(t, dir, "subject", "delete", "--cascade", "Chemistry")
	if !strings.Contains(out, "1 sessions removed") {
		t.Fatalf("unexpected cascade output: %q", out)
	}
	if out := mustRun(t, dir, "subject", "list"); out != "no subjects\n" {
		t.Fatalf("subject still listed: %q", out)
	}
}

func TestParseTime(t *testing.T) {
	t.Parallel()
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	got, err := parseTime("2026-07-01 08:30", rome)
	if err != nil {
		t.Fatalf("parse local time: %v", err)
	}
	if want := time.Date(2026, 7, 1, 6, 30, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got, err = parseTime("2026-07-01T08:30:00Z", rome)
	if err != nil || got.Hour() != 8 {
		t.Fatalf("RFC 3339 input must keep its own offset, got %v (%v)", got, err)
	}

	if _, err := parseTime("yesterday", rome); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
