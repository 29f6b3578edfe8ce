package chart_test

import (
	"strings"
	"testing"

	"studytime/internal/ui/chart"
)

func TestPieCellsFollowShares(t *testing.T) {
	t.Parallel()
	cells := chart.PieCells([]chart.Slice{{Label: "A", Value: 3}, {Label: "B", Value: 1}}, 8)
	if len(cells) != 17 || len(cells[0]) != 33 {
		t.Fatalf("unexpected grid %dx%d", len(cells), len(cells[0]))
	}
	counts := map[int]int{}
	for _, row := range cells {
		for _, c := range row {
			counts[c]++
		}
	}
	inside := counts[0] + counts[1]
	share := float64(counts[0]) / float64(inside)
	if share < 0.68 || share > 0.82 {
		t.Fatalf("expected about 75%% of cells for A, got %.2f", share)
	}
	// twelve o'clock starts the first slice
	if cells[1][16] != 0 {
		t.Fatalf("expected slice 0 just below the top, got %d", cells[1][16])
	}
	if cells[0][0] != -1 {
		t.Fatalf("corner must be outside the circle")
	}
}

func TestPieSingleSliceFillsCircle(t *testing.T) {
	t.Parallel()
	for _, row := range chart.PieCells([]chart.Slice{{Label: "A", Value: 1}}, 4) {
		for _, c := range row {
			if c != -1 && c != 0 {
				t.Fatalf("unexpected slice %d", c)
			}
		}
	}
}

func TestPieWithoutDataSaysSo(t *testing.T) {
	t.Parallel()
	if out := chart.Pie(nil, 5); !strings.Contains(out, "no sessions") {
		t.Fatalf("expected placeholder, got %q", out)
	}
	out := chart.Pie([]chart.Slice{{Label: "Math", Value: 1, Caption: "1.0h"}}, 3)
	if !strings.Contains(out, "Math") || !strings.Contains(out, "100.0%") {
		t.Fatalf("expected legend with share, got %q", out)
	}
}

func TestBarHeights(t *testing.T) {
	t.Parallel()
	got := chart.BarHeights([]chart.Bar{{Value: 0}, {Value: 1}, {Value: 50}, {Value: 100}}, 10)
	want := []int{0, 1, 5, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bar %d: expected %d, got %d", i, want[i], got[i])
		}
	}
	for _, h := range chart.BarHeights([]chart.Bar{{Value: 0}, {Value: 0}}, 10) {
		if h != 0 {
			t.Fatalf("all-zero input must give empty bars")
		}
	}
}

func TestBarsRendersLabels(t *testing.T) {
	t.Parallel()
	out := chart.Bars([]chart.Bar{{Label: "Mon", Value: 1, Caption: "1.0h"}, {Label: "Tue", Value: 0, Caption: "0.0h"}}, 4)
	if !strings.Contains(out, "Mon") || !strings.Contains(out, "Tue") || !strings.Contains(out, "1.0h") {
		t.Fatalf("missing labels in %q", out)
	}
	if lines := strings.Count(out, "\n"); lines != 5 {
		t.Fatalf("expected 4 bar rows plus caption row, got %d newlines", lines)
	}
}
