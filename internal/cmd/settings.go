package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tilpconnect/tilp/internal/config"
	"github.com/tilpconnect/tilp/internal/theme"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and available options" default:"1"`
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsPath()
	example := config.GetSettingsExample()

	if s.Format == "json" {
		output := map[string]any{
			"settings_file": settingsFile,
			"format":        example,
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s %s\n\n", theme.LabelStyle.Render("Settings file:"), settingsFile)

	keys := make([]string, 0, len(example))
	for key := range example {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		data, _ := json.Marshal(example[key])
		rows = append(rows, []string{key, string(data)})
	}
	fmt.Println(renderTable([]string{"key", "example"}, rows))

	fmt.Println(theme.MutedStyle.Render("All settings are optional. Flags and TILP_* environment variables take precedence."))
	return nil
}
