package cli

import (
        "github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:   "tui [posting]",
                Short: "Label postings in the terminal",
                Long: `Label postings in the terminal.

Drag over the posting with the mouse to copy the selection into the active
field. Run "quotemark docs keys" for the key bindings.`,
                Args: cobra.MaximumNArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        posting := ""
                        if len(args) == 1 {
                                posting = args[0]
                        }
                        return runTUI(cmd, app, posting)
                },
        }
}
