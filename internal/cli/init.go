package cli

import (
        "path/filepath"

        "quotemark-cli/internal/store"

        "github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
        var noUse bool

        cmd := &cobra.Command{
                Use:   "init [dir]",
                Short: "Create a workspace (postings/, extracted_labels/) and make it current",
                Args:  cobra.MaximumNArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        if len(args) == 1 {
                                app.Dir = args[0]
                        }
                        s, err := openStore(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        abs, err := filepath.Abs(s.Dir)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        s.Dir = abs
                        if err := s.Ensure(); err != nil {
                                return writeErr(cmd, err)
                        }
                        if !noUse {
                                if err := store.UseWorkspace(abs); err != nil {
                                        return writeErr(cmd, err)
                                }
                        }
                        return writeOut(cmd, app, map[string]any{
                                "data": map[string]any{
                                        "dir":         abs,
                                        "postingsDir": filepath.Join(abs, "postings"),
                                        "labelsDir":   filepath.Join(abs, "extracted_labels"),
                                        "current":     !noUse,
                                },
                        })
                },
        }
        cmd.Flags().BoolVar(&noUse, "no-use", false, "Do not make this the current workspace")
        return cmd
}
