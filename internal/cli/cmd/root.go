package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/berrythewa/marker/internal/common"
	"github.com/berrythewa/marker/internal/config"
)

// skipConfigLoad marks commands that must not create a config file as a side
// effect of running.
const skipConfigLoad = "skip-config-load"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "marker [file]",
	Short: "A markdown editor with a scriptable command host",
	Long: `Marker is a desktop markdown editor. Its backend exposes a small set of
named commands that the editor window and external tools invoke:
  • greet, read_file and write_file
  • plugin commands such as plugin:recent|list

Run without arguments to open the editor. Use "marker serve" to run the
command host without a window and "marker invoke" to call it.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runEditor,
}

// Execute adds all child commands to the root command and runs it until an
// interrupt or termination signal.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		pterm.Error.Println(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.config/marker/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "minimize output")
	rootCmd.PersistentFlags().BoolVar(&useJSON, "json", false, "output in JSON format")

	rootCmd.AddCommand(
		newRunCmd(),
		newServeCmd(),
		newStatusCmd(),
		newInvokeCmd(),
		newCommandsCmd(),
		newRecentCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
}

// setup loads the configuration and builds the logger shared by every
// command.
func setup(cmd *cobra.Command, args []string) error {
	if quiet {
		pterm.DisableOutput()
	}

	if cmd.Annotations[skipConfigLoad] == "true" {
		cfg = config.DefaultConfig()
		paths, err := config.GetConfigPaths()
		if err != nil {
			return err
		}
		cfg.SystemPaths = *paths
		if configFile != "" {
			cfg.SystemPaths.ConfigFile = configFile
		}
	} else {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	l, err := common.NewLogger(cfg, common.LoggerOptions{Verbose: verbose, Quiet: quiet})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	logger.Debug("Configuration loaded", zap.String("config_file", cfg.SystemPaths.ConfigFile))
	return nil
}
