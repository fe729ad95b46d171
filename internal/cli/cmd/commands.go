package cmd

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/berrythewa/marker/internal/commands"
	"github.com/berrythewa/marker/internal/host"
)

func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the commands a host exposes",
		Long: `List every command name a host registers. plugin:opener commands are
only available while the editor window is open.`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			skipConfigLoad: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			names := host.CommandNames()
			if useJSON {
				return json.NewEncoder(os.Stdout).Encode(names)
			}

			items := make([]pterm.BulletListItem, 0, len(names))
			for _, name := range names {
				style := pterm.NewStyle(pterm.FgLightCyan)
				if strings.HasPrefix(name, commands.PluginPrefix) {
					style = pterm.NewStyle(pterm.FgGray)
				}
				items = append(items, pterm.BulletListItem{Level: 0, Text: name, TextStyle: style})
			}
			return pterm.DefaultBulletList.WithItems(items).Render()
		},
	}
}
