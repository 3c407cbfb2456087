package cli

import (
        "context"

        "quotemark-cli/internal/model"
        "quotemark-cli/internal/store"

        "github.com/spf13/cobra"
        "github.com/spf13/pflag"
)

func newLabelsCmd(app *App) *cobra.Command {
        cmd := &cobra.Command{
                Use:   "labels",
                Short: "Read and write extracted labels",
        }
        cmd.AddCommand(newLabelsShowCmd(app))
        cmd.AddCommand(newLabelsSetCmd(app))
        cmd.AddCommand(newLabelsFieldsCmd(app))
        return cmd
}

func newLabelsShowCmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:   "show <posting>",
                Short: "Show the labels saved for a posting",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        s, err := openStore(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        name, err := store.NormalizePostingName(args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        ex, err := s.LoadLabels(name)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{
                                "data": ex,
                                "meta": map[string]any{"posting": name, "labeled": ex.Labeled(), "fields": len(model.Fields())},
                        })
                },
        }
}

func newLabelsSetCmd(app *App) *cobra.Command {
        var fact, quote string
        cmd := &cobra.Command{
                Use:   "set <posting> <field>",
                Short: "Set the fact and/or quote of one field",
                Long:  "Set the fact and/or quote of one field. Flags that are not given keep their saved value.",
                Args:  cobra.ExactArgs(2),
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
                        ex, err := s.LoadLabels(name)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        cur := ex.Get(field)
                        cur.Fact = changedOr(cmd.Flags(), "fact", fact, cur.Fact)
                        cur.SubstringQuote = changedOr(cmd.Flags(), "quote", quote, cur.SubstringQuote)

                        saved, err := saveFact(cmd.Context(), app, s, name, field, cur, model.SourceCLI)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        next, ok := model.NextField(field)
                        meta := map[string]any{"posting": name, "field": field}
                        if ok {
                                meta["nextField"] = next
                        }
                        return writeOut(cmd, app, map[string]any{"data": saved.Get(field), "meta": meta})
                },
        }
        cmd.Flags().StringVar(&fact, "fact", "", "Normalized fact value")
        cmd.Flags().StringVar(&quote, "quote", "", "Substring quote from the posting")
        return cmd
}

func newLabelsFieldsCmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:   "fields",
                Short: "List the extraction fields in labeling order",
                Args:  cobra.NoArgs,
                RunE: func(cmd *cobra.Command, args []string) error {
                        return writeOut(cmd, app, map[string]any{"data": model.Fields()})
                },
        }
}

// changedOr returns v when the flag was given on the command line, else cur.
func changedOr(fs *pflag.FlagSet, name, v, cur string) string {
        if fs.Changed(name) {
                return v
        }
        return cur
}

// saveFact writes the labels file and appends a history event. History
// failures don't undo the save.
func saveFact(ctx context.Context, app *App, s store.Store, name string, field model.FieldName, fact model.Fact, src model.LabelSource) (*model.Extraction, error) {
        if ctx == nil {
                ctx = context.Background()
        }
        ex, err := s.SaveFact(name, field, fact)
        if err != nil {
                return nil, err
        }
        if _, err := s.AppendLabelEvent(ctx, model.LabelEvent{
                Posting: name,
                Field:   field,
                Fact:    fact.Fact,
                Quote:   fact.SubstringQuote,
                Source:  src,
                Actor:   actorID(app),
        }); err != nil {
                return ex, err
        }
        return ex, nil
}
