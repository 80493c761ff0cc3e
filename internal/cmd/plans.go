package cmd

import (
	"context"
	"fmt"

	"github.com/tilpconnect/tilp/internal/domain"
	"github.com/tilpconnect/tilp/internal/theme"
)

// PlansCmd manages daily session plans
type PlansCmd struct {
	Add  PlansAddCmd  `cmd:"add" help:"Record a session plan"`
	List PlansListCmd `cmd:"list" help:"List session plans, newest first" default:"1"`
}

// PlansAddCmd records a session plan
type PlansAddCmd struct {
	ClosingRoutine  string `help:"Closing routine"`
	Date            string `help:"Date of the session (YYYY-MM-DD)" default:"today"`
	InternalNotes   string `help:"Notes for staff only"`
	LeadStaff       string `help:"Lead staff member" short:"l"`
	LearningBlock   string `help:"Learning block"`
	MaterialsNeeded string `help:"Materials needed"`
	RegulationBreak string `help:"Regulation break"`
	SocialPlay      string `help:"Social play"`
	SupportStaff    string `help:"Support staff"`
	WarmUp          string `help:"Warm-up activity"`
}

// Run executes the add command
func (p *PlansAddCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	date, err := parseDateFlag("date", p.Date)
	if err != nil {
		return err
	}

	plan, err := cli.Container.RecordService.AddSessionPlan(ctx, session, domain.SessionPlan{
		ClosingRoutine:  p.ClosingRoutine,
		Date:            date,
		InternalNotes:   p.InternalNotes,
		LeadStaff:       p.LeadStaff,
		LearningBlock:   p.LearningBlock,
		MaterialsNeeded: p.MaterialsNeeded,
		RegulationBreak: p.RegulationBreak,
		SocialPlay:      p.SocialPlay,
		SupportStaff:    p.SupportStaff,
		WarmUp:          p.WarmUp,
	})
	if err != nil {
		return err
	}
	success("Saved session plan %d for %s.", plan.ID, plan.Date)
	return nil
}

// PlansListCmd lists session plans
type PlansListCmd struct{}

// Run executes the list command
func (p *PlansListCmd) Run(cli *CLI) error {
	ctx := context.Background()
	session, err := cli.session(ctx)
	if err != nil {
		return err
	}

	plans, err := cli.Container.RecordService.ListSessionPlans(ctx, session)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		fmt.Println(theme.MutedStyle.Render("No session plans."))
		return nil
	}

	rows := make([][]string, 0, len(plans))
	for _, plan := range plans {
		rows = append(rows, []string{
			domain.FormatID(plan.ID),
			plan.Date.String(),
			plan.LeadStaff,
			plan.SupportStaff,
			plan.WarmUp,
			plan.LearningBlock,
			plan.RegulationBreak,
			plan.SocialPlay,
			plan.ClosingRoutine,
		})
	}
	fmt.Println(renderTable([]string{"id", "date", "lead", "support", "warm-up", "learning", "regulation", "social play", "closing"}, rows))
	return nil
}
