package main

import (
        "os"
        "strings"

        "quotemark-cli/internal/cli"
)

func isPostingFile(s string) bool {
        s = strings.TrimSpace(s)
        return strings.HasSuffix(s, ".txt") && len(s) > len(".txt")
}

func rewriteDirectPostingArgs(argv []string) []string {
        // Convenience: `quotemark postings/<name>.txt` works like `quotemark tui <name>`.
        //
        // Cobra treats the first non-flag token as a subcommand, so argv is rewritten before
        // parsing. Persistent flags may come first (`quotemark --dir ws job.txt`), so look for
        // the first positional token rather than argv[1].
        if len(argv) < 2 {
                return argv
        }

        valueFlags := map[string]bool{
                "--dir":    true,
                "--actor":  true,
                "--format": true,
                "--mode":   true,
        }
        boolFlags := map[string]bool{
                "--pretty":  true,
                "--verbose": true,
                "-v":        true,
        }

        insertTUI := func(at int) []string {
                out := make([]string, 0, len(argv)+1)
                out = append(out, argv[:at]...)
                out = append(out, "tui")
                return append(out, argv[at:]...)
        }

        for i := 1; i < len(argv); i++ {
                a := strings.TrimSpace(argv[i])
                if a == "" {
                        continue
                }
                if a == "--" {
                        if i+1 < len(argv) && isPostingFile(argv[i+1]) {
                                return insertTUI(i + 1)
                        }
                        return argv
                }
                if strings.HasPrefix(a, "-") {
                        if strings.Contains(a, "=") || boolFlags[a] {
                                continue
                        }
                        if valueFlags[a] {
                                i++
                        }
                        continue
                }
                if isPostingFile(a) {
                        return insertTUI(i)
                }
                return argv
        }
        return argv
}

func main() {
        os.Args = rewriteDirectPostingArgs(os.Args)

        cmd := cli.NewRootCmd()
        if err := cmd.Execute(); err != nil {
                os.Exit(1)
        }
}
