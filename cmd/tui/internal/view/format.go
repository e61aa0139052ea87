package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const dbTimeout = 5 * time.Second

var (
	activeColor = lipgloss.Color("205")
	faintColor  = lipgloss.Color("240")
)

func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatEstimation renders minutes as hours and minutes.
func FormatEstimation(minutes int) string {
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(activeColor).Bold(true).Render(s)
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(faintColor).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func framed(header string, t table.Model, status string) string {
	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(faintColor).
		Render(t.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
