package store

import (
        "errors"
        "io"
        "os"
        "path/filepath"
)

// CopyFile copies src to dest, creating dest's parent dirs. The copy goes
// through a temp file so a half-written posting is never visible.
func CopyFile(src string, dest string) error {
        src = filepath.Clean(src)
        dest = filepath.Clean(dest)
        if src == "" || dest == "" || src == "." || dest == "." {
                return errors.New("copy file: missing src/dest")
        }
        in, err := os.Open(src)
        if err != nil {
                return err
        }
        defer in.Close()

        dir := filepath.Dir(dest)
        if err := os.MkdirAll(dir, 0o755); err != nil {
                return err
        }
        out, err := os.CreateTemp(dir, filepath.Base(dest)+".*.tmp")
        if err != nil {
                return err
        }
        tmp := out.Name()
        defer func() { _ = os.Remove(tmp) }()

        if _, err := io.Copy(out, in); err != nil {
                _ = out.Close()
                return err
        }
        if err := out.Close(); err != nil {
                return err
        }
        _ = os.Chmod(tmp, 0o644)
        return os.Rename(tmp, dest)
}
