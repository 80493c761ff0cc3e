package cmd

import (
	"context"
	"fmt"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/theme"
)

// ProgressCmd manages progress notes
type ProgressCmd struct {
	Add  ProgressAddCmd  `cmd:"add" help:"Record a progress note"`
	List ProgressListCmd `cmd:"list" help:"List progress notes, newest first" default:"1"`
}

// ProgressAddCmd records a progress note
type ProgressAddCmd struct {
	Child      string `arg:"" help:"Child name"`
	Date       string `help:"Date of the observation (YYYY-MM-DD)" default:"today"`
	Discipline string `help:"Discipline" short:"D"`
	GoalArea   string `help:"Goal area" short:"g"`
	Media      string `help:"Path to a photo or video of the session"`
	Notes      string `help:"Notes" short:"n"`
	Status     string `help:"Goal status" enum:"Met Goal,Working Towards,Not Observed" default:"Working Towards"`
}

// Run executes the add command
func (p *ProgressAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	date, err := parseDateFlag("date", p.Date)
	if err != nil {
		return err
	}

	entry, err := cli.Container.RecordService.AddProgress(ctx, session, domain.ProgressEntry{
		ChildName:  p.Child,
		Date:       date,
		Discipline: p.Discipline,
		GoalArea:   p.GoalArea,
		MediaPath:  p.Media,
		Notes:      p.Notes,
		Status:     domain.ProgressStatus(p.Status),
	})
	if err != nil {
		return err
	}
	success("Saved progress note %d for %s.", entry.ID, entry.ChildName)
	return nil
}

// ProgressListCmd lists progress notes
type ProgressListCmd struct {
	Child string `arg:"" optional:"" help:"Only this child (defaults to the current filter)"`
}

// Run executes the list command
func (p *ProgressListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	entries, err := cli.Container.RecordService.ListProgress(ctx, session, p.Child)
	if err != nil {
		return err
	}
	printProgress(entries)
	return nil
}

func printProgress(entries []domain.ProgressEntry) {
	if len(entries) == 0 {
		fmt.Println(theme.MutedStyle.Render("No progress notes."))
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			domain.FormatID(e.ID),
			e.Date.String(),
			e.ChildName,
			e.Discipline,
			e.GoalArea,
			string(e.Status),
			e.Notes,
		})
	}
	fmt.Println(renderTable([]string{"id", "date", "child", "discipline", "goal area", "status", "notes"}, rows))
}
