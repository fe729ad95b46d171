package cmd

import (
	"encoding/json"
	"os"
	"runtime"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			skipConfigLoad: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if useJSON {
				return json.NewEncoder(os.Stdout).Encode(map[string]string{
					"version":    version,
					"build_time": buildTime,
					"commit":     commit,
					"go":         runtime.Version(),
				})
			}
			pterm.Println(pterm.Bold.Sprint("Marker"))
			pterm.Printfln("Version:    %s", version)
			pterm.Printfln("Build Time: %s", buildTime)
			pterm.Printfln("Commit:     %s", commit)
			pterm.Printfln("Go:         %s", runtime.Version())
			return nil
		},
	}
}
