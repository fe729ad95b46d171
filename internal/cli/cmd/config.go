package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/berrythewa/marker/internal/config"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage Marker configuration",
		Long: `Manage Marker configuration:
  • Initialize configuration for first-time setup
  • Show the effective configuration
  • Print the configuration file path`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			skipConfigLoad: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := cfg.SystemPaths.ConfigFile

			if _, err := os.Stat(configPath); err == nil && !force {
				return fmt.Errorf("configuration already exists at %s\nUse --force to overwrite or 'marker config show' to view current config", configPath)
			}

			defaults := config.DefaultConfig()
			logger.Info("Initializing configuration", zap.String("config_path", configPath))
			if err := defaults.Save(configPath); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			pterm.Success.Printfln("Configuration initialized at: %s", configPath)
			pterm.Printfln("Data directory: %s", cfg.SystemPaths.DataDir)
			pterm.Printfln("Socket:         %s", cfg.SocketPath())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "force overwrite existing configuration")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if useJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		Annotations: map[string]string{
			skipConfigLoad: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), cfg.SystemPaths.ConfigFile)
			return nil
		},
	}
}
