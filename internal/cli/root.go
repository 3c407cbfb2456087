package cli

import (
        "fmt"
        "os"
        "os/user"
        "path/filepath"
        "strings"

        "quotemark-cli/internal/format"
        "quotemark-cli/internal/logger"
        "quotemark-cli/internal/selsync"
        "quotemark-cli/internal/store"
        "quotemark-cli/internal/tui"

        "github.com/spf13/cobra"
)

type App struct {
        Dir        string
        ActorID    string
        PrettyJSON bool
        Format     string
        Verbose    bool
        Mode       string

        cfg *store.GlobalConfig
}

func NewRootCmd() *cobra.Command {
        app := &App{}

        cmd := &cobra.Command{
                Use:          "quotemark",
                Short:        "Label job postings with supporting quotes (CLI + TUI + web)",
                SilenceUsage: true,
                Example: strings.TrimSpace(`
  # Start the interactive TUI in the current workspace
  quotemark

  # Create a workspace and import a posting
  quotemark init ./labels
  quotemark postings import ~/Downloads/backend-engineer.txt

  # Copy a selection into a field without the UI
  quotemark select backend-engineer company "Acme Corp"

  # Serve the browser UI
  quotemark web --addr 127.0.0.1:5001
`),
                RunE: func(cmd *cobra.Command, args []string) error {
                        // No subcommand => interactive TUI.
                        if len(args) == 0 {
                                return runTUI(cmd, app, "")
                        }
                        return cmd.Help()
                },
        }

        cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
                if app.Verbose || envBool("QUOTEMARK_VERBOSE") {
                        logger.SetVerbose(true)
                }
                cfg, err := store.LoadConfig()
                if err != nil {
                        logger.Warn("ignoring unreadable config: %v", err)
                        cfg = &store.GlobalConfig{}
                }
                app.cfg = cfg
                return nil
        }

        pf := cmd.PersistentFlags()
        pf.StringVar(&app.Dir, "dir", envOr("QUOTEMARK_DIR", ""), "Workspace dir (default: current workspace from config, else the current directory)")
        pf.StringVar(&app.ActorID, "actor", envOr("QUOTEMARK_ACTOR", ""), "Name recorded in label history (default: config actor, else $USER)")
        pf.BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
        pf.StringVar(&app.Format, "format", envOr("QUOTEMARK_FORMAT", "json"), "Output format (json|edn)")
        pf.BoolVarP(&app.Verbose, "verbose", "v", false, "Print debug logs to stderr")
        pf.StringVar(&app.Mode, "mode", envOr("QUOTEMARK_MODE", ""), "How selections are written into the field (replace|append)")

        cmd.AddCommand(newInitCmd(app))
        cmd.AddCommand(newPostingsCmd(app))
        cmd.AddCommand(newLabelsCmd(app))
        cmd.AddCommand(newHighlightCmd(app))
        cmd.AddCommand(newSelectCmd(app))
        cmd.AddCommand(newHistoryCmd(app))
        cmd.AddCommand(newDoctorCmd(app))
        cmd.AddCommand(newExportCmd(app))
        cmd.AddCommand(newDocsCmd(app))
        cmd.AddCommand(newTUICmd(app))
        cmd.AddCommand(newWebCmd(app))
        cmd.AddCommand(newVersionCmd())

        return cmd
}

func (app *App) config() *store.GlobalConfig {
        if app.cfg == nil {
                return &store.GlobalConfig{}
        }
        return app.cfg
}

// resolveDir picks the workspace: --dir, then config currentWorkspace, then cwd.
func resolveDir(app *App) (string, error) {
        if d := strings.TrimSpace(app.Dir); d != "" {
                return filepath.Clean(d), nil
        }
        if d := strings.TrimSpace(app.config().CurrentWorkspace); d != "" {
                app.Dir = d
                return d, nil
        }
        cwd, err := os.Getwd()
        if err != nil {
                return "", err
        }
        app.Dir = cwd
        return cwd, nil
}

func openStore(app *App) (store.Store, error) {
        dir, err := resolveDir(app)
        if err != nil {
                return store.Store{}, err
        }
        logger.Debug("workspace: %s", dir)
        return store.Store{Dir: dir}, nil
}

func writeMode(app *App) (selsync.WriteMode, error) {
        m := strings.TrimSpace(app.Mode)
        if m == "" {
                m = app.config().WriteMode
        }
        return selsync.ParseWriteMode(m)
}

func actorID(app *App) string {
        if a := strings.TrimSpace(app.ActorID); a != "" {
                return a
        }
        if a := strings.TrimSpace(app.config().Actor); a != "" {
                return a
        }
        if u, err := user.Current(); err == nil && u.Username != "" {
                return u.Username
        }
        return os.Getenv("USER")
}

func runTUI(cmd *cobra.Command, app *App, posting string) error {
        st, err := openStore(app)
        if err != nil {
                return writeErr(cmd, err)
        }
        mode, err := writeMode(app)
        if err != nil {
                return writeErr(cmd, err)
        }
        return tui.Run(tui.Options{
                Store:   st,
                Posting: posting,
                Mode:    mode,
                Actor:   actorID(app),
                Config:  app.config().TUI,
        })
}

func envOr(k, d string) string {
        if v := os.Getenv(k); v != "" {
                return v
        }
        return d
}

func envBool(k string) bool {
        switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
        case "1", "true", "yes", "on":
                return true
        }
        return false
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
        return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
        fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
        return err
}
