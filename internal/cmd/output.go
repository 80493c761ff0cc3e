package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/theme"
)

var timeNow = time.Now

// renderTable draws rows with the theme's header and border styles
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.BorderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.HeaderStyle
			}
			return theme.CellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		String()
}

// printRecords prints a table in its column order
func printRecords(t *domain.Table) {
	if t.Len() == 0 {
		fmt.Println(theme.MutedStyle.Render(fmt.Sprintf("No rows in %s.", t.Name)))
		return
	}

	rows := make([][]string, 0, len(t.Records))
	for _, rec := range t.Records {
		row := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			row[i] = rec[col]
		}
		rows = append(rows, row)
	}
	fmt.Println(renderTable(t.Columns, rows))
}

// printWarnings prints coercion warnings collected while loading a table
func printWarnings(t *domain.Table) {
	for _, w := range t.Warnings {
		fmt.Println(theme.WarningStyle.Render(fmt.Sprintf("warning: %s: %s", t.Name, w)))
	}
}

func success(format string, args ...any) {
	fmt.Println(theme.SuccessStyle.Render(fmt.Sprintf(format, args...)))
}
