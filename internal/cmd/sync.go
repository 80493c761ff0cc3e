package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/theme"
)

// SyncCmd pushes table files and reports on past pushes
type SyncCmd struct {
	Push   SyncPushCmd   `cmd:"push" help:"Push every table file to the remote repository" default:"1"`
	Status SyncStatusCmd `cmd:"status" help:"Show what was last pushed"`
}

// SyncPushCmd pushes every table file
type SyncPushCmd struct{}

// Run executes the push command
func (s *SyncPushCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	report, err := cli.Container.SyncService.SyncAll(ctx, session)
	if report != nil {
		printSyncReport(report)
	}
	return err
}

func printSyncReport(report *domain.SyncReport) {
	rows := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		detail := res.Marker
		if res.Err != nil {
			detail = res.Err.Error()
		}
		rows = append(rows, []string{
			res.File,
			theme.OutcomeStyle(res.Outcome).Render(string(res.Outcome)),
			res.RemotePath,
			detail,
		})
	}
	fmt.Println(renderTable([]string{"file", "outcome", "remote path", "marker / error"}, rows))
	fmt.Println(theme.MutedStyle.Render(fmt.Sprintf("run %s took %s",
		report.RunID, report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))))
}

// SyncStatusCmd shows the sync ledger
type SyncStatusCmd struct{}

// Run executes the status command
func (s *SyncStatusCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	status, err := cli.Container.SyncService.Status(ctx, session)
	if err != nil {
		return err
	}

	remote := status.Remote
	if !status.Configured {
		remote = theme.WarningStyle.Render("not configured (set TILP_GITHUB_REPO and TILP_GITHUB_TOKEN)")
	}
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Local:"), status.LocalDir)
	fmt.Printf("%s %s\n", theme.LabelStyle.Render("Remote:"), remote)

	if status.LastRun != nil {
		run := status.LastRun
		fmt.Printf("%s %s by %s, %d succeeded, %d failed\n",
			theme.LabelStyle.Render("Last run:"),
			humanize.Time(run.FinishedAt), run.Username, run.Succeeded, run.Failed)
	} else {
		fmt.Printf("%s %s\n", theme.LabelStyle.Render("Last run:"), theme.MutedStyle.Render("never"))
	}

	if len(status.Markers) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(status.Markers))
	for _, m := range status.Markers {
		rows = append(rows, []string{m.Path, m.Marker, humanize.Bytes(uint64(m.Size)), humanize.Time(m.SyncedAt)})
	}
	fmt.Println(renderTable([]string{"path", "marker", "size", "synced"}, rows))
	return nil
}
