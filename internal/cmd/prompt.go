package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/tilpconnect/tilp/internal/domain"
)

// readPassword returns TILP_PASSWORD when set, otherwise prompts without echo
func readPassword(title string) (string, error) {
	if pw, ok := os.LookupEnv("TILP_PASSWORD"); ok && pw != "" {
		return pw, nil
	}

	var password string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("password must not be empty")
					}
					return nil
				}),
		),
	).Run()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// confirm asks a yes/no question, defaulting to no
func confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// parseDateFlag parses a date flag, treating "" and "today" as today
func parseDateFlag(name, value string) (domain.Date, error) {
	if value == "" || value == "today" {
		return domain.NewDate(timeNow()), nil
	}
	d := domain.ParseDate(value)
	if !d.Valid {
		return domain.Date{}, fmt.Errorf("%w: --%s %q is not a date (use YYYY-MM-DD)", domain.ErrInvalidInput, name, value)
	}
	return d, nil
}
