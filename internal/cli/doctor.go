package cli

import (
        "quotemark-cli/internal/store"

        "github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
        var fail bool

        cmd := &cobra.Command{
                Use:   "doctor",
                Short: "Check labels files against their postings",
                Long: `Check every labels file in the workspace.

Reports files that do not parse, labels without a posting, fields outside the
schema, quotes that do not occur verbatim in the posting, and facts without a
quote.`,
                RunE: func(cmd *cobra.Command, args []string) error {
                        s, err := openStore(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }

                        report := s.Doctor()

                        meta := map[string]any{
                                "dir":       s.Dir,
                                "issues":    len(report.Issues),
                                "hasErrors": report.HasErrors(),
                        }
                        if err := writeOut(cmd, app, map[string]any{
                                "data": report,
                                "meta": meta,
                        }); err != nil {
                                return err
                        }

                        if fail && report.HasErrors() {
                                return store.ErrDoctorIssuesFound
                        }
                        return nil
                },
        }

        cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
        return cmd
}
