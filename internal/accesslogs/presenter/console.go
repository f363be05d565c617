package presenter

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/acgithubb/final-react-apacelogs-analyse/internal/accesslogs/entity"
)

const DefaultConsoleWidth = 40

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorFailure = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#374151")

	stylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess)
	styleFailure = lipgloss.NewStyle().Foreground(colorFailure)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
	styleInfo    = lipgloss.NewStyle().Foreground(colorInfo)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
)

// codeStyle colors a status code by its class.
func codeStyle(code entity.StatusCode) lipgloss.Style {
	if code == "" {
		return styleMuted
	}
	switch code[0] {
	case '2':
		return styleSuccess
	case '3':
		return styleInfo
	case '4':
		return styleWarning
	case '5':
		return styleFailure
	default:
		return styleMuted
	}
}

// Console prints a terminal view of each snapshot.
type Console struct {
	out   io.Writer
	width int
	mu    sync.Mutex
}

func NewConsole(out io.Writer, width int) *Console {
	if width <= 0 {
		width = DefaultConsoleWidth
	}
	return &Console{out: out, width: width}
}

func (c *Console) Render(ctx context.Context, snap entity.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := fmt.Fprintln(c.out, c.view(snap))
	return err
}

func (c *Console) view(snap entity.Snapshot) string {
	res := snap.Result
	footer := styleMuted.Render(fmt.Sprintf("%d lines, %d matched, %d skipped", res.TotalLines, res.Matched, res.Skipped))

	freq := res.Frequencies
	if freq.Len() == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			styleHeader.Render(barTitle),
			stylePane.Render(styleMuted.Render("no status codes found")),
			footer,
		)
	}

	labels := freq.Labels()
	values := freq.Values()
	total := freq.Total()

	peak, labelWidth := 0, 0
	for i, label := range labels {
		peak = max(peak, values[i])
		labelWidth = max(labelWidth, len(label))
	}

	rows := make([]string, len(labels))
	for i, label := range labels {
		n := max(1, values[i]*c.width/peak)
		bar := codeStyle(label).Render(strings.Repeat("█", n))
		share := float64(values[i]) * 100 / float64(total)
		rows[i] = fmt.Sprintf("%-*s %s %d (%.1f%%)", labelWidth, label, bar, values[i], share)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styleHeader.Render(barTitle),
		stylePane.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
		footer,
	)
}
