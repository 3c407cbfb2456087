package cli

import (
        "fmt"
        "runtime/debug"

        "github.com/spf13/cobra"
)

// version is set with -ldflags "-X quotemark-cli/internal/cli.version=...".
var version = ""

func buildVersion() string {
        if version != "" {
                return version
        }
        if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
                return bi.Main.Version
        }
        return "dev"
}

func newVersionCmd() *cobra.Command {
        return &cobra.Command{
                Use:   "version",
                Short: "Print the quotemark version",
                Args:  cobra.NoArgs,
                RunE: func(cmd *cobra.Command, args []string) error {
                        _, err := fmt.Fprintln(cmd.OutOrStdout(), "quotemark "+buildVersion())
                        return err
                },
        }
}
