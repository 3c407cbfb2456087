package format

import (
        "encoding/json"
        "fmt"
        "io"
        "strings"
)

// Write writes v in the requested format.
//
// Supported formats:
// - json (default)
// - edn
func Write(w io.Writer, v any, format string, pretty bool) error {
        switch strings.ToLower(strings.TrimSpace(format)) {
        case "", "json":
                return WriteJSON(w, v, pretty)
        case "edn":
                return WriteEDN(w, v, pretty)
        default:
                return fmt.Errorf("unknown format: %s (expected json|edn)", format)
        }
}

// WriteJSON writes strict JSON followed by a newline. Quotes copied from
// postings often hold <, > and &, so HTML escaping is off.
func WriteJSON(w io.Writer, v any, pretty bool) error {
        enc := json.NewEncoder(w)
        enc.SetEscapeHTML(false)
        if pretty {
                enc.SetIndent("", "  ")
        }
        return enc.Encode(v)
}
