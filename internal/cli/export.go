package cli

import (
        "errors"
        "strings"

        "quotemark-cli/internal/publish"
        "quotemark-cli/internal/store"

        "github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
        var (
                to               string
                overwrite        bool
                includeUnlabeled bool
        )

        cmd := &cobra.Command{
                Use:   "export [posting]",
                Short: "Export labels as markdown reviews and a JSONL dataset",
                Long: `Export labels for review or training.

With a posting, writes <to>/postings/<posting>.md. Without one, writes a
markdown file per labeled posting, <to>/index.md and <to>/labels.jsonl (one
record per posting with the labels and the byte span of each quote).`,
                Args: cobra.MaximumNArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        if strings.TrimSpace(to) == "" {
                                return writeErr(cmd, errors.New("missing --to"))
                        }
                        s, err := openStore(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        opt := publish.WriteOptions{Overwrite: overwrite, IncludeUnlabeled: includeUnlabeled}

                        var res publish.WriteResult
                        if len(args) == 1 {
                                name, err := store.NormalizePostingName(args[0])
                                if err != nil {
                                        return writeErr(cmd, err)
                                }
                                res, err = publish.WritePosting(s, name, to, opt)
                                if err != nil {
                                        return writeErr(cmd, err)
                                }
                        } else {
                                res, err = publish.WriteWorkspace(s, to, opt)
                                if err != nil {
                                        return writeErr(cmd, err)
                                }
                        }
                        return writeOut(cmd, app, map[string]any{
                                "data": res,
                                "meta": map[string]any{"dir": s.Dir, "to": to},
                        })
                },
        }

        cmd.Flags().StringVar(&to, "to", "", "Output directory")
        cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
        cmd.Flags().BoolVar(&includeUnlabeled, "include-unlabeled", false, "Also export postings without labels")
        return cmd
}
