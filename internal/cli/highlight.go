package cli

import (
        "fmt"

        "quotemark-cli/internal/highlight"
        "quotemark-cli/internal/selsync"
        "quotemark-cli/internal/store"

        "github.com/charmbracelet/lipgloss"
        "github.com/muesli/termenv"
        "github.com/spf13/cobra"
)

func newHighlightCmd(app *App) *cobra.Command {
        var asHTML, asANSI bool

        cmd := &cobra.Command{
                Use:   "highlight <posting> <text>",
                Short: "Render a posting with the first occurrence of text marked",
                Long: `Render a posting with the first occurrence of text marked.

Matching is literal and case-sensitive. Without --html/--ansi the result is
printed as a JSON envelope with the highlight state and <mark> markup.`,
                Args: cobra.ExactArgs(2),
                RunE: func(cmd *cobra.Command, args []string) error {
                        s, err := openStore(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        name, err := store.NormalizePostingName(args[0])
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        text, err := s.ReadPosting(name)
                        if err != nil {
                                return writeErr(cmd, err)
                        }

                        view := selsync.NewTextView(text)
                        state := selsync.New(view, selsync.Options{}).ReHighlight(args[1])
                        doc := view.Rendered()

                        switch {
                        case asHTML:
                                _, err = fmt.Fprintln(cmd.OutOrStdout(), doc.HTML())
                                return err
                        case asANSI:
                                _, err = fmt.Fprintln(cmd.OutOrStdout(), renderANSI(doc))
                                return err
                        }
                        return writeOut(cmd, app, map[string]any{
                                "data": map[string]any{
                                        "posting": name,
                                        "state":   state,
                                        "markup":  doc.Markup(highlight.MarkOpen, highlight.MarkClose),
                                },
                        })
                },
        }
        cmd.Flags().BoolVar(&asHTML, "html", false, "Print escaped HTML with a <mark> element")
        cmd.Flags().BoolVar(&asANSI, "ansi", false, "Print with terminal colors")
        return cmd
}

// renderANSI forces a color profile so output piped to a pager keeps colors.
func renderANSI(doc highlight.Document) string {
        r := lipgloss.NewRenderer(nil)
        r.SetColorProfile(termenv.ANSI256)
        mark := r.NewStyle().
                Foreground(lipgloss.Color("16")).
                Background(lipgloss.Color("220"))
        return doc.Styled(r.NewStyle(), mark)
}
