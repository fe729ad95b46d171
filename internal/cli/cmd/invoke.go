package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/berrythewa/marker/internal/bridge"
	"github.com/berrythewa/marker/internal/host"
)

func newInvokeCmd() *cobra.Command {
	var (
		pairs      []string
		rawArgs    string
		socketPath string
	)

	cmd := &cobra.Command{
		Use:   "invoke <command>",
		Short: "Call a command on a running host",
		Long: `Call a command on a running host over its IPC socket and print the result.

Arguments are named. Pass them as --arg key=value (values are strings) or as
a JSON object with --args.`,
		Example: `  marker invoke greet --arg name=Alice
  marker invoke read_file --arg path=/tmp/notes.md
  marker invoke write_file --args '{"path":"/tmp/notes.md","content":"# Hi"}'
  marker invoke "plugin:recent|list" --args '{"limit":5}'`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return host.CommandNames(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := parseInvokeArgs(pairs, rawArgs)
			if err != nil {
				return err
			}
			if socketPath == "" {
				socketPath = cfg.SocketPath()
			}

			var result json.RawMessage
			if err := bridge.NewRemote(socketPath).Invoke(cmd.Context(), args[0], payload, &result); err != nil {
				return err
			}

			if useJSON {
				if len(result) == 0 {
					result = json.RawMessage("null")
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(result))
				return nil
			}
			if out := formatResult(result); out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			} else {
				pterm.Success.Printfln("%s succeeded", args[0])
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&pairs, "arg", "a", nil, "named argument as key=value (repeatable)")
	cmd.Flags().StringVar(&rawArgs, "args", "", "arguments as a JSON object")
	cmd.Flags().StringVar(&socketPath, "socket", "", "host socket (default from config)")
	return cmd
}

// parseInvokeArgs merges --args and --arg pairs into one JSON object. Pairs
// win over keys from --args.
func parseInvokeArgs(pairs []string, raw string) (json.RawMessage, error) {
	args := map[string]any{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return nil, fmt.Errorf("--args must be a JSON object: %w", err)
		}
	}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --arg %q, want key=value", pair)
		}
		args[key] = value
	}
	return json.Marshal(args)
}

// formatResult renders a command result for a terminal: strings verbatim,
// anything else as indented JSON. Empty and null results render as "".
func formatResult(result json.RawMessage) string {
	if len(result) == 0 || string(result) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(result, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, result, "", "  "); err != nil {
		return string(result)
	}
	return buf.String()
}
