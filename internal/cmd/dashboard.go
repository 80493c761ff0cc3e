package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tilpconnect/tilp/internal/theme"
)

// DashboardCmd shows progress totals for one child
type DashboardCmd struct {
	Child string `arg:"" optional:"" help:"Child name (defaults to the selected child)"`
}

// Run executes the dashboard command
func (d *DashboardCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	dash, err := cli.Container.DashboardService.ChildDashboard(ctx, session, d.Child)
	if err != nil {
		return err
	}

	fmt.Println(theme.TitleStyle.Render(dash.ChildName))
	fmt.Printf("%s %d\n\n", theme.LabelStyle.Render("Progress notes:"), dash.Total)

	if len(dash.Disciplines) > 0 {
		rows := make([][]string, 0, len(dash.Disciplines))
		for _, c := range dash.Disciplines {
			rows = append(rows, []string{c.Discipline, strconv.Itoa(c.Count)})
		}
		fmt.Println(renderTable([]string{"discipline", "notes"}, rows))
	}

	fmt.Println(theme.LabelStyle.Render("Recent"))
	printProgress(dash.Recent)
	return nil
}
