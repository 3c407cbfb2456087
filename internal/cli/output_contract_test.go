package cli

import (
        "encoding/json"
        "os"
        "path/filepath"
        "testing"
)

func TestOutputContract_JSONEnvelope_DefaultSuite(t *testing.T) {
        dir := newWorkspace(t)

        mustEnv := func(args ...string) map[string]any {
                t.Helper()
                stdout, stderr, err := runCLI(t, args)
                if err != nil {
                        t.Fatalf("command failed: quotemark %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
                }
                var env map[string]any
                if err := json.Unmarshal(stdout, &env); err != nil {
                        t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
                }
                if _, ok := env["data"]; !ok {
                        t.Fatalf("expected JSON envelope to contain data key; got: %v\nstdout:\n%s", env, string(stdout))
                }
                if meta, ok := env["meta"]; ok && meta != nil {
                        if _, ok := meta.(map[string]any); !ok {
                                t.Fatalf("expected meta to be object; got %T", meta)
                        }
                }
                return env
        }

        mustEnv("--dir", dir, "postings", "list")
        mustEnv("--dir", dir, "postings", "show", "go-engineer")
        mustEnv("--dir", dir, "labels", "fields")
        mustEnv("--dir", dir, "labels", "show", "go-engineer")
        mustEnv("--dir", dir, "labels", "set", "go-engineer", "location", "--fact", "Oslo", "--quote", "Oslo")
        mustEnv("--dir", dir, "select", "go-engineer", "company", "Acme Corp", "--dry-run")
        mustEnv("--dir", dir, "highlight", "go-engineer", "Oslo")
        mustEnv("--dir", dir, "history", "go-engineer")
        mustEnv("--dir", dir, "doctor")
        mustEnv("docs")

        // --pretty changes layout, not the envelope.
        env := mustEnv("--dir", dir, "--pretty", "labels", "fields")
        if _, ok := env["data"].([]any); !ok {
                t.Fatalf("expected fields list, got %T", env["data"])
        }
}

func TestDirFlagOverridesEnvAndConfig(t *testing.T) {
        cfgDir := t.TempDir()
        t.Setenv("QUOTEMARK_CONFIG_DIR", cfgDir)
        t.Setenv("QUOTEMARK_MODE", "")

        fromConfig := t.TempDir()
        fromEnv := t.TempDir()
        fromFlag := t.TempDir()
        for _, d := range []string{fromConfig, fromEnv, fromFlag} {
                if err := os.MkdirAll(filepath.Join(d, "postings"), 0o755); err != nil {
                        t.Fatalf("mkdir: %v", err)
                }
        }
        if err := os.WriteFile(filepath.Join(fromFlag, "postings", "only-in-flag.txt"), []byte("x"), 0o644); err != nil {
                t.Fatalf("write: %v", err)
        }
        if err := os.WriteFile(filepath.Join(fromEnv, "postings", "only-in-env.txt"), []byte("x"), 0o644); err != nil {
                t.Fatalf("write: %v", err)
        }
        if err := os.WriteFile(filepath.Join(fromConfig, "postings", "only-in-config.txt"), []byte("x"), 0o644); err != nil {
                t.Fatalf("write: %v", err)
        }

        t.Setenv("QUOTEMARK_DIR", "")
        mustRunJSON(t, "init", fromConfig)

        firstName := func(env map[string]any) string {
                t.Helper()
                list, _ := env["data"].([]any)
                if len(list) != 1 {
                        t.Fatalf("expected one posting, got %v", env["data"])
                }
                p, _ := list[0].(map[string]any)
                name, _ := p["name"].(string)
                return name
        }

        if got := firstName(mustRunJSON(t, "postings", "list")); got != "only-in-config" {
                t.Fatalf("config workspace: got %q", got)
        }

        t.Setenv("QUOTEMARK_DIR", fromEnv)
        if got := firstName(mustRunJSON(t, "postings", "list")); got != "only-in-env" {
                t.Fatalf("env workspace: got %q", got)
        }
        if got := firstName(mustRunJSON(t, "--dir", fromFlag, "postings", "list")); got != "only-in-flag" {
                t.Fatalf("flag workspace: got %q", got)
        }
}
