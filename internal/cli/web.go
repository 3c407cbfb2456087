package cli

import (
        "errors"
        "fmt"
        "net"
        "net/http"
        "os/exec"
        "runtime"
        "strings"
        "time"

        "quotemark-cli/internal/logger"
        "quotemark-cli/internal/web"

        "github.com/spf13/cobra"
)

func newWebCmd(app *App) *cobra.Command {
        var addr string
        var open bool

        cmd := &cobra.Command{
                Use:   "web",
                Short: "Serve the labeling UI in the browser",
                Long: strings.TrimSpace(`
Serve the labeling UI from a local HTTP server.

Pages are server-rendered; selections and quote edits are sent to the server
and the highlighted posting is patched back over server-sent events.
`),
                Example: strings.TrimSpace(`
# Serve the current workspace on localhost
quotemark web

# Serve a specific workspace on another port, without opening a browser
quotemark --dir ./labels web --addr :5050 --open=false
`),
                RunE: func(cmd *cobra.Command, args []string) error {
                        dir, err := resolveDir(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }
                        mode, err := writeMode(app)
                        if err != nil {
                                return writeErr(cmd, err)
                        }

                        listenAddr := strings.TrimSpace(addr)
                        if listenAddr == "" {
                                return writeErr(cmd, errors.New("web: missing --addr"))
                        }

                        srv, err := web.NewServer(web.ServerConfig{
                                Dir:   dir,
                                Mode:  mode,
                                Actor: actorID(app),
                        })
                        if err != nil {
                                return writeErr(cmd, err)
                        }

                        ln, err := net.Listen("tcp", listenAddr)
                        if err != nil {
                                return writeErr(cmd, err)
                        }

                        actualAddr := ln.Addr().String()
                        url := "http://" + actualAddr + "/"

                        opened := false
                        openErr := ""
                        if open {
                                if err := openPath(url); err != nil {
                                        openErr = err.Error()
                                } else {
                                        opened = true
                                }
                        }

                        hints := []string{}
                        if !opened {
                                hints = append(hints, "open "+url)
                        }

                        _ = writeOut(cmd, app, map[string]any{
                                "data": map[string]any{
                                        "addr":      actualAddr,
                                        "url":       url,
                                        "dir":       dir,
                                        "mode":      mode.String(),
                                        "opened":    opened,
                                        "openError": openErr,
                                        "startedAt": time.Now().UTC().Format(time.RFC3339Nano),
                                },
                                "_hints": hints,
                        })

                        fmt.Fprintf(cmd.ErrOrStderr(), "quotemark web running at %s (dir=%s)\n", url, dir)
                        if openErr != "" {
                                logger.Warn("failed to open browser: %s", openErr)
                        }

                        return http.Serve(ln, srv.Handler())
                },
        }

        cmd.Flags().StringVar(&addr, "addr", envOr("QUOTEMARK_ADDR", "127.0.0.1:5001"), "Bind address (host:port or :port)")
        cmd.Flags().BoolVar(&open, "open", true, "Open the UI in your default browser")
        return cmd
}

func openPath(path string) error {
        path = strings.TrimSpace(path)
        if path == "" {
                return errors.New("empty path")
        }
        switch runtime.GOOS {
        case "darwin":
                return exec.Command("open", path).Run()
        case "windows":
                return exec.Command("cmd", "/c", "start", "", path).Run()
        default:
                return exec.Command("xdg-open", path).Run()
        }
}
