package cli

import (
        "fmt"
        "os"

        "quotemark-cli/internal/docs"

        "github.com/charmbracelet/glamour"
        "github.com/charmbracelet/x/term"
        "github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
        var raw, render bool

        cmd := &cobra.Command{
                Use:   "docs [topic]",
                Short: "Show on-demand documentation",
                Args:  cobra.MaximumNArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        if len(args) == 0 {
                                return writeOut(cmd, app, map[string]any{"data": map[string]any{"topics": docs.Topics()}})
                        }

                        topic := args[0]
                        body, ok := docs.Get(topic)
                        if !ok {
                                return writeErr(cmd, fmt.Errorf("unknown docs topic: %q (run `quotemark docs` to list topics)", topic))
                        }

                        switch {
                        case raw:
                                _, err := fmt.Fprint(cmd.OutOrStdout(), body)
                                return err
                        case render:
                                out, err := renderMarkdown(body)
                                if err != nil {
                                        return writeErr(cmd, err)
                                }
                                _, err = fmt.Fprint(cmd.OutOrStdout(), out)
                                return err
                        }
                        return writeOut(cmd, app, map[string]any{"data": map[string]any{"topic": topic, "markdown": body}})
                },
        }

        cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")
        cmd.Flags().BoolVar(&render, "render", false, "Render markdown for the terminal")

        return cmd
}

func renderMarkdown(body string) (string, error) {
        width := 80
        if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 20 {
                width = min(w, 100)
        }
        r, err := glamour.NewTermRenderer(
                glamour.WithAutoStyle(),
                glamour.WithWordWrap(width-4),
        )
        if err != nil {
                return "", err
        }
        return r.Render(body)
}
