package cli

import (
        "context"
        "strings"

        "quotemark-cli/internal/store"

        "github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
        var limit int

        cmd := &cobra.Command{
                Use:   "history [posting]",
                Short: "Show saved-label history (oldest first)",
                Args:  cobra.MaximumNArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        s, err := openStore(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        name := ""
                        if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
                                name, err = store.NormalizePostingName(args[0])
                                if err != nil {
                                        return writeErr(cmd, err)
                                }
                        }
                        ctx := cmd.Context()
                        if ctx == nil {
                                ctx = context.Background()
                        }
                        events, err := s.ReadLabelEvents(ctx, name, limit)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{
                                "data": events,
                                "meta": map[string]any{"count": len(events), "limit": limit},
                        })
                },
        }
        cmd.Flags().IntVar(&limit, "limit", 50, "Max events to show, newest kept (0 = all)")
        return cmd
}
