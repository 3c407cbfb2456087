package cli

import (
        "fmt"

        "quotemark-cli/internal/store"

        "github.com/spf13/cobra"
)

func newPostingsCmd(app *App) *cobra.Command {
        cmd := &cobra.Command{
                Use:   "postings",
                Short: "List, show and import job postings",
        }
        cmd.AddCommand(newPostingsListCmd(app))
        cmd.AddCommand(newPostingsShowCmd(app))
        cmd.AddCommand(newPostingsImportCmd(app))
        return cmd
}

func newPostingsListCmd(app *App) *cobra.Command {
        return &cobra.Command{
                Use:   "list",
                Short: "List postings in the workspace",
                Args:  cobra.NoArgs,
                RunE: func(cmd *cobra.Command, args []string) error {
                        s, err := openStore(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        postings, err := s.ListPostings()
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{
                                "data": postings,
                                "meta": map[string]any{"dir": s.Dir, "count": len(postings)},
                        })
                },
        }
}

func newPostingsShowCmd(app *App) *cobra.Command {
        var raw bool
        cmd := &cobra.Command{
                Use:   "show <posting>",
                Short: "Show a posting and its labels",
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
                        text, err := s.ReadPosting(name)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        if raw {
                                _, err := fmt.Fprint(cmd.OutOrStdout(), text)
                                return err
                        }
                        ex, err := s.LoadLabels(name)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{
                                "data": map[string]any{
                                        "name":   name,
                                        "text":   text,
                                        "labels": ex,
                                },
                        })
                },
        }
        cmd.Flags().BoolVar(&raw, "raw", false, "Print the posting text only")
        return cmd
}

func newPostingsImportCmd(app *App) *cobra.Command {
        var name string
        cmd := &cobra.Command{
                Use:   "import <file>",
                Short: "Copy a text file into the workspace's postings/",
                Args:  cobra.ExactArgs(1),
                RunE: func(cmd *cobra.Command, args []string) error {
                        s, err := openStore(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        got, err := s.ImportPosting(args[0], name)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        return writeOut(cmd, app, map[string]any{
                                "data": map[string]any{"name": got, "path": s.PostingPath(got)},
                        })
                },
        }
        cmd.Flags().StringVar(&name, "name", "", "Posting name (default: source file name without .txt)")
        return cmd
}
