package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/berrythewa/marker/internal/bridge"
	"github.com/berrythewa/marker/internal/commands"
	"github.com/berrythewa/marker/internal/plugins/recent"
	"github.com/berrythewa/marker/internal/storage"
	"github.com/berrythewa/marker/pkg/format"
)

func newRecentCmd() *cobra.Command {
	var (
		limit    int
		clearAll bool
		remove   string
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Show or clear recently opened documents",
		Long: `Show or clear the recent documents list.

When a host is running the list is read through it; otherwise the database
is opened directly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			inv, closeFn, err := recentInvoker(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			switch {
			case clearAll:
				if err := bridge.ClearRecentDocuments(ctx, inv); err != nil {
					return err
				}
				pterm.Success.Println("Recent documents cleared")
				return nil
			case remove != "":
				if err := bridge.RemoveRecentDocument(ctx, inv, remove); err != nil {
					return err
				}
				pterm.Success.Printfln("Removed %s", remove)
				return nil
			}

			docs, err := bridge.RecentDocuments(ctx, inv, limit)
			if err != nil {
				return err
			}
			if useJSON {
				return json.NewEncoder(os.Stdout).Encode(docs)
			}
			return renderRecent(docs)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of documents to show (0 for all)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "clear the list")
	cmd.Flags().StringVar(&remove, "remove", "", "remove one path from the list")
	cmd.MarkFlagsMutuallyExclusive("clear", "remove")
	return cmd
}

// recentInvoker returns an invoker that can run plugin:recent commands:
// the running host if there is one, else a private registry over the
// database.
func recentInvoker(ctx context.Context) (bridge.Invoker, func(), error) {
	remote := bridge.NewRemote(cfg.SocketPath())
	if remote.Available(ctx) {
		return remote, func() {}, nil
	}

	store, err := storage.NewRecentStore(storage.StorageConfig{
		DBPath:     cfg.DBPath(),
		MaxEntries: cfg.Storage.MaxRecent,
		Logger:     logger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open recent documents: %w", err)
	}
	registry, err := commands.Build(logger, recent.New(store, logger))
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return bridge.NewLocal(registry), func() { store.Close() }, nil
}

func renderRecent(docs []bridge.RecentDocument) error {
	if len(docs) == 0 {
		pterm.Info.Println("No recent documents")
		return nil
	}
	return pterm.DefaultTable.
		WithHasHeader().
		WithData(recentTable(docs)).
		Render()
}

func recentTable(docs []bridge.RecentDocument) pterm.TableData {
	data := pterm.TableData{{"Path", "Last used", "Opens"}}
	for _, d := range docs {
		data = append(data, []string{
			format.TruncatePath(d.Path, 60),
			format.FormatRelativeTime(d.OpenedAt),
			fmt.Sprint(d.Count),
		})
	}
	return data
}
