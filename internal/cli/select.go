package cli

import (
        "quotemark-cli/internal/logger"
        "quotemark-cli/internal/model"
        "quotemark-cli/internal/selsync"
        "quotemark-cli/internal/store"

        "github.com/spf13/cobra"
)

func newSelectCmd(app *App) *cobra.Command {
        var dryRun bool

        cmd := &cobra.Command{
                Use:   "select <posting> <field> <selection>",
                Short: "Apply a selection to a field as if it was made in the UI",
                Long: `Apply a selection to a field as if it was made in the UI.

The selection is trimmed and written into the field's quote (replacing it, or
appended on a new line with --mode append), then the posting is re-highlighted
with the selection. A blank selection changes nothing.`,
                Args: cobra.ExactArgs(3),
                RunE: func(cmd *cobra.Command, args []string) error {
                        s, err := openStore(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        name, err := store.NormalizePostingName(args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        field, err := model.ParseField(args[1])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        mode, err := writeMode(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        text, err := s.ReadPosting(name)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        ex, err := s.LoadLabels(name)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        cur := ex.Get(field)

                        view := selsync.NewTextView(text)
                        input := selsync.NewTextField(cur.SubstringQuote)
                        sync := selsync.New(view, selsync.Options{Mode: mode, Logf: logger.Debug})
                        sync.SetActiveField(input)

                        written := sync.OnSelectionEnd(args[2])
                        if written && !dryRun {
                                cur.SubstringQuote = input.Value()
                                if _, err := saveFact(cmd.Context(), app, s, name, field, cur, model.SourceCLI); err != nil {
                                        return writeErr(cmd, err)
                                }
                        }
                        return writeOut(cmd, app, map[string]any{
                                "data": map[string]any{
                                        "posting": name,
                                        "field":   field,
                                        "mode":    mode.String(),
                                        "written": written,
                                        "saved":   written && !dryRun,
                                        "quote":   input.Value(),
                                        "state":   sync.State(),
                                },
                        })
                },
        }
        cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the result without saving")
        return cmd
}
