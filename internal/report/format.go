package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableFormatter renders a table for the console.
type TableFormatter interface {
	Format(t Table) string
}

// BoxFormatter draws bordered tables with right-aligned numeric columns.
type BoxFormatter struct{}

// Format implements TableFormatter.
func (BoxFormatter) Format(t Table) string {
	cell := lipgloss.NewStyle().Padding(0, 1)
	num := cell.Align(lipgloss.Right)
	head := cell.Bold(true)
	tb := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Header...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return head
			case col > 0:
				return num
			default:
				return cell
			}
		})
	return tb.String()
}
