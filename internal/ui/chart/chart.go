// Package chart draws the pie and bar charts with block characters.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"studytime/internal/ui/theme"
)

type Slice struct {
	Label   string
	Value   float64
	Caption string
}

type Bar struct {
	Label   string
	Value   float64
	Caption string
}

const (
	fullBlock  = "█"
	emptyBlock = "░"
	colWidth   = 8
)

// Pie renders slices as a filled circle of the given radius (in rows) with
// a legend listing each slice's caption and share.
func Pie(slices []Slice, radius int) string {
	total := 0.0
	for _, s := range slices {
		total += math.Max(s.Value, 0)
	}
	if total <= 0 || radius < 1 {
		return theme.Muted.Render("no sessions recorded")
	}

	var rows []string
	for _, cells := range PieCells(slices, radius) {
		var sb strings.Builder
		for start := 0; start < len(cells); {
			end := start
			for end < len(cells) && cells[end] == cells[start] {
				end++
			}
			run := end - start
			if cells[start] < 0 {
				sb.WriteString(strings.Repeat(" ", run))
			} else {
				style := lipgloss.NewStyle().Foreground(theme.SeriesColor(cells[start]))
				sb.WriteString(style.Render(strings.Repeat(fullBlock, run)))
			}
			start = end
		}
		rows = append(rows, sb.String())
	}

	legend := make([]string, 0, len(slices))
	for i, s := range slices {
		swatch := lipgloss.NewStyle().Foreground(theme.SeriesColor(i)).Render("■")
		legend = append(legend, fmt.Sprintf("%s %-16s %8s %6.1f%%", swatch, truncate(s.Label, 16), s.Caption, s.Value/total*100))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center,
		strings.Join(rows, "\n"),
		"   ",
		strings.Join(legend, "\n"),
	)
}

// PieCells maps each character cell of the pie to a slice index, or -1 for
// cells outside the circle. Cells are twice as tall as wide, so each row
// has 4*radius+1 columns. Angles run clockwise from twelve o'clock.
func PieCells(slices []Slice, radius int) [][]int {
	total := 0.0
	bounds := make([]float64, len(slices))
	for i, s := range slices {
		total += math.Max(s.Value, 0)
		bounds[i] = total
	}
	r := float64(radius)
	grid := make([][]int, 0, 2*radius+1)
	for y := -radius; y <= radius; y++ {
		row := make([]int, 0, 4*radius+1)
		for x := -2 * radius; x <= 2*radius; x++ {
			fx, fy := float64(x)/2, float64(y)
			if fx*fx+fy*fy > r*r+r*0.5 || total <= 0 {
				row = append(row, -1)
				continue
			}
			angle := math.Atan2(fx, -fy)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			at := angle / (2 * math.Pi) * total
			idx := len(slices) - 1
			for i, b := range bounds {
				if at < b {
					idx = i
					break
				}
			}
			row = append(row, idx)
		}
		grid = append(grid, row)
	}
	return grid
}

// Bars renders vertical bars scaled to height rows, with captions and
// labels under each column.
func Bars(bars []Bar, height int) string {
	if len(bars) == 0 || height < 1 {
		return theme.Muted.Render("no days to show")
	}
	heights := BarHeights(bars, height)
	fill := lipgloss.NewStyle().Foreground(theme.Primary)
	pad := strings.Repeat(" ", (colWidth-3)/2)

	var sb strings.Builder
	for row := height; row >= 1; row-- {
		for _, h := range heights {
			sb.WriteString(pad)
			if h >= row {
				sb.WriteString(fill.Render(strings.Repeat(fullBlock, 3)))
			} else {
				sb.WriteString(theme.Muted.Render(strings.Repeat(emptyBlock, 3)))
			}
			sb.WriteString(strings.Repeat(" ", colWidth-3-len(pad)))
		}
		sb.WriteString("\n")
	}
	for _, b := range bars {
		sb.WriteString(center(b.Caption, colWidth))
	}
	sb.WriteString("\n")
	for _, b := range bars {
		sb.WriteString(theme.Muted.Render(center(b.Label, colWidth)))
	}
	return sb.String()
}

// BarHeights scales values to whole rows. Any positive value gets at least
// one row so short days stay visible.
func BarHeights(bars []Bar, height int) []int {
	peak := 0.0
	for _, b := range bars {
		peak = math.Max(peak, b.Value)
	}
	out := make([]int, len(bars))
	if peak <= 0 {
		return out
	}
	for i, b := range bars {
		if b.Value <= 0 {
			continue
		}
		out[i] = max(1, int(math.Round(b.Value/peak*float64(height))))
	}
	return out
}

func center(s string, width int) string {
	s = truncate(s, width)
	left := (width - lipgloss.Width(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-left-lipgloss.Width(s))
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
